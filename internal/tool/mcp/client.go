// Package mcp discovers tools from a Model Context Protocol server and
// makes them callable through the tool registry.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/Cyclone1070/sqlagent/internal/tool"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	clientName    = "sqlagent"
	clientVersion = "0.1.0"
)

// Client is a connected MCP client session.
type Client struct {
	session *sdk.ClientSession
}

// Connect initializes a session over the given transport.
func Connect(ctx context.Context, transport sdk.Transport) (*Client, error) {
	c := sdk.NewClient(&sdk.Implementation{Name: clientName, Version: clientVersion}, nil)
	session, err := c.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mcp server: %w", err)
	}
	return &Client{session: session}, nil
}

// ConnectCommand launches command as a subprocess and talks to it over
// stdin/stdout.
func ConnectCommand(ctx context.Context, command string, args []string) (*Client, error) {
	slog.Info("starting mcp server", "command", command, "args", args)
	transport := &sdk.CommandTransport{Command: exec.Command(command, args...)}
	return Connect(ctx, transport)
}

// Tools lists every tool the server offers.
func (c *Client) Tools(ctx context.Context) ([]tool.Spec, error) {
	if c == nil || c.session == nil {
		return nil, ErrNotConnected
	}

	var specs []tool.Spec
	for t, err := range c.session.Tools(ctx, nil) {
		if err != nil {
			return nil, fmt.Errorf("failed to list tools: %w", err)
		}
		schema, err := json.Marshal(t.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("tool %s: invalid input schema: %w", t.Name, err)
		}
		specs = append(specs, tool.Spec{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schema,
		})
	}
	return specs, nil
}

// CallTool invokes a tool on the server and returns its text content.
// A result flagged as an error becomes a *ToolCallError.
func (c *Client) CallTool(ctx context.Context, name string, input map[string]any) (string, error) {
	if c == nil || c.session == nil {
		return "", ErrNotConnected
	}

	res, err := c.session.CallTool(ctx, &sdk.CallToolParams{Name: name, Arguments: input})
	if err != nil {
		return "", fmt.Errorf("call %s: %w", name, err)
	}

	text := contentText(res.Content)
	if res.IsError {
		return "", &ToolCallError{Tool: name, Message: text}
	}
	return text, nil
}

// Func returns a tool.Func forwarding to CallTool under the dispatched name.
func (c *Client) Func() tool.Func {
	return func(ctx context.Context, name string, input map[string]any) (any, error) {
		return c.CallTool(ctx, name, input)
	}
}

// RegisterAll lists the server's tools and registers each one, all backed
// by CallTool. It returns how many were registered.
func (c *Client) RegisterAll(ctx context.Context, r *tool.Registry) (int, error) {
	specs, err := c.Tools(ctx)
	if err != nil {
		return 0, err
	}
	fn := c.Func()
	for _, s := range specs {
		r.Register(s.Name, fn, s.Description, s.InputSchema)
		slog.Debug("registered mcp tool", "tool", s.Name)
	}
	slog.Info("registered mcp tools", "count", len(specs))
	return len(specs), nil
}

// Close ends the session. For command transports this also stops the
// subprocess.
func (c *Client) Close() error {
	if c == nil || c.session == nil {
		return nil
	}
	return c.session.Close()
}

func contentText(content []sdk.Content) string {
	parts := make([]string, 0, len(content))
	for _, item := range content {
		switch v := item.(type) {
		case *sdk.TextContent:
			parts = append(parts, v.Text)
		default:
			b, err := json.Marshal(v)
			if err == nil {
				parts = append(parts, string(b))
			}
		}
	}
	return strings.Join(parts, "\n")
}
