package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ridoystarlord/crudforge/logs"
	"github.com/ridoystarlord/crudforge/tool"
)

// Stdio serves the tools as an MCP server over newline-delimited JSON-RPC
// (initialize, tools/list, tools/call).
type Stdio struct {
	mcp *server.MCPServer
}

// NewStdio registers every tool of caller on a new MCP server.
func NewStdio(caller Caller) (*Stdio, error) {
	s := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, d := range caller.Tools() {
		schema, err := json.Marshal(d.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("encoding input schema of %s: %w", d.Name, err)
		}
		s.AddTool(mcp.NewToolWithRawSchema(d.Name, d.Description, schema), callHandler(caller, d.Name))
	}
	return &Stdio{mcp: s}, nil
}

// callHandler forwards a tools/call to the adapter. Tool failures travel in
// the result, never as a JSON-RPC error.
func callHandler(caller Caller, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logs.Debug("tools/call", zap.String("tool", name))
		return toCallToolResult(caller.Call(ctx, name, req.GetArguments())), nil
	}
}

func toCallToolResult(r *tool.Result) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(r.Content))
	for _, c := range r.Content {
		content = append(content, mcp.NewTextContent(c.Text))
	}
	return &mcp.CallToolResult{Content: content, IsError: r.IsError}
}

// Serve reads requests from in and writes one response per line to out
// until in is exhausted or ctx is cancelled.
func (s *Stdio) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(logs.L()))
	return stdio.Listen(ctx, in, out)
}
