package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/crudforge/tool"
)

type fakeCaller struct {
	calls []string
	args  []map[string]any
}

func (f *fakeCaller) Call(_ context.Context, name string, args map[string]any) *tool.Result {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	if name != "list_tables" {
		return &tool.Result{Content: []tool.Content{{Type: "text", Text: "Error: tableName is required"}}, IsError: true}
	}
	return &tool.Result{Content: []tool.Content{{Type: "text", Text: "Tables in schema public:\n"}}}
}

func (f *fakeCaller) Tools() []tool.Descriptor {
	return []tool.Descriptor{
		{Name: "list_tables", Description: "List tables", InputSchema: map[string]any{"type": "object"}},
		{Name: "describe_table", Description: "Describe a table", InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{"tableName": map[string]any{"type": "string"}},
			"required":   []string{"tableName"},
		}},
	}
}

func serveLines(t *testing.T, caller Caller, lines ...string) []map[string]any {
	t.Helper()
	stdio, err := NewStdio(caller)
	require.NoError(t, err)

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, stdio.Serve(context.Background(), in, &out))

	var responses []map[string]any
	dec := json.NewDecoder(&out)
	for dec.More() {
		var r map[string]any
		require.NoError(t, dec.Decode(&r))
		responses = append(responses, r)
	}
	return responses
}

func TestStdioInitializeAndList(t *testing.T) {
	responses := serveLines(t, &fakeCaller{},
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	)
	require.Len(t, responses, 2)

	assert.Equal(t, float64(1), responses[0]["id"])
	result := responses[0]["result"].(map[string]any)
	assert.Equal(t, "2024-11-05", result["protocolVersion"])
	assert.Equal(t, ServerName, result["serverInfo"].(map[string]any)["name"])
	assert.Equal(t, ServerVersion, result["serverInfo"].(map[string]any)["version"])

	assert.Equal(t, float64(2), responses[1]["id"])
	tools := responses[1]["result"].(map[string]any)["tools"].([]any)
	require.Len(t, tools, 2)
	names := []any{tools[0].(map[string]any)["name"], tools[1].(map[string]any)["name"]}
	assert.ElementsMatch(t, []any{"list_tables", "describe_table"}, names)
	for _, raw := range tools {
		d := raw.(map[string]any)
		if d["name"] == "describe_table" {
			assert.Equal(t, []any{"tableName"}, d["inputSchema"].(map[string]any)["required"])
		}
	}
}

func TestStdioToolsCall(t *testing.T) {
	caller := &fakeCaller{}
	responses := serveLines(t, caller,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"list_tables","arguments":{"schema":"x"}}}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"describe_table"}}`,
	)
	require.Len(t, responses, 2)
	assert.Equal(t, []string{"list_tables", "describe_table"}, caller.calls)
	assert.Equal(t, "x", caller.args[0]["schema"])

	ok := responses[0]["result"].(map[string]any)
	assert.Nil(t, ok["isError"])
	assert.Equal(t, "Tables in schema public:\n", ok["content"].([]any)[0].(map[string]any)["text"])

	failed := responses[1]["result"].(map[string]any)
	assert.Equal(t, true, failed["isError"])
	assert.Equal(t, "Error: tableName is required", failed["content"].([]any)[0].(map[string]any)["text"])
}

func TestStdioProtocolErrors(t *testing.T) {
	caller := &fakeCaller{}
	responses := serveLines(t, caller,
		`{not json`,
		`{"jsonrpc":"2.0","id":5,"method":"resources/unknown"}`,
		`{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"generate_entity"}}`,
	)
	require.Len(t, responses, 3)

	assert.Equal(t, float64(-32700), responses[0]["error"].(map[string]any)["code"])
	assert.Equal(t, float64(5), responses[1]["id"])
	assert.Equal(t, float64(-32601), responses[1]["error"].(map[string]any)["code"])
	assert.Equal(t, float64(6), responses[2]["id"])
	assert.NotNil(t, responses[2]["error"])
	assert.Empty(t, caller.calls)
}

func TestHTTPTools(t *testing.T) {
	gin.SetMode(gin.TestMode)
	caller := &fakeCaller{}
	s := NewHTTPServer(":0", caller)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tools", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"list_tables"`)

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tools/list_tables", strings.NewReader(`{"tableName":"jobs"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var result tool.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.IsError)
	assert.Equal(t, "jobs", caller.args[0]["tableName"])
}

func TestHTTPEmptyBodyAndErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	caller := &fakeCaller{}
	s := NewHTTPServer(":0", caller)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tools/setup_api_infrastructure", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isError":true`)
	assert.Equal(t, []string{"setup_api_infrastructure"}, caller.calls)

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tools/list_tables", strings.NewReader(`{oops`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, caller.calls, 1)

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
