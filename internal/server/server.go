package server

import (
	"context"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pumpline/pumpline/internal/tools"
)

// New builds an MCP server advertising every tool in reg. All invocations go
// through reg.Invoke, so validation and error containment live in one place.
func New(name, version string, reg *tools.Registry) *server.MCPServer {
	s := server.NewMCPServer(name, version)
	for _, spec := range reg.Specs() {
		s.AddTool(mcpTool(spec), invokeHandler(reg, spec.Name))
	}
	return s
}

// ServeStdio runs the server on stdin/stdout until EOF or a fatal transport
// error.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func invokeHandler(reg *tools.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := reg.Invoke(ctx, name, req.GetArguments())
		if res.IsError {
			return mcp.NewToolResultError(res.Text()), nil
		}
		return mcp.NewToolResultText(res.Text()), nil
	}
}

// mcpTool converts a registry spec into the wire-level tool declaration.
func mcpTool(spec tools.Spec) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(spec.Description),
		mcp.WithReadOnlyHintAnnotation(spec.Hints.ReadOnly),
		mcp.WithDestructiveHintAnnotation(spec.Hints.Destructive),
		mcp.WithIdempotentHintAnnotation(spec.Hints.Idempotent),
		mcp.WithOpenWorldHintAnnotation(spec.Hints.OpenWorld),
	}

	names := make([]string, 0, len(spec.Params))
	for name := range spec.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := spec.Params[name]
		var props []mcp.PropertyOption
		if p.Description != "" {
			props = append(props, mcp.Description(p.Description))
		}
		if p.Required {
			props = append(props, mcp.Required())
		}
		switch p.Type {
		case tools.TypeNumber:
			if d, ok := p.Default.(float64); ok {
				props = append(props, mcp.DefaultNumber(d))
			}
			opts = append(opts, mcp.WithNumber(name, props...))
		default:
			if d, ok := p.Default.(string); ok {
				props = append(props, mcp.DefaultString(d))
			}
			opts = append(opts, mcp.WithString(name, props...))
		}
	}
	return mcp.NewTool(spec.Name, opts...)
}
