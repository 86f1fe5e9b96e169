// Package transport drives a tool adapter as an MCP server on stdio or over HTTP.
package transport

import (
	"context"

	"github.com/ridoystarlord/crudforge/tool"
)

// Caller is the subset of *tool.Adapter the transports use.
type Caller interface {
	Call(ctx context.Context, name string, args map[string]any) *tool.Result
	Tools() []tool.Descriptor
}

const (
	ServerName    = "crudforge"
	ServerVersion = "0.1.0"
)
