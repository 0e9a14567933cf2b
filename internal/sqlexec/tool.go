package sqlexec

import (
	"context"
	"errors"
	"strings"

	"github.com/Cyclone1070/sqlagent/internal/tool"
)

// QueryToolName is the registry name of the executor's own tool.
const QueryToolName = "execute_sql"

// QueryRequest is the input of the execute_sql tool.
type QueryRequest struct {
	Query  string `mapstructure:"query"`
	Commit bool   `mapstructure:"commit"`
}

// Validate rejects an empty statement.
func (r QueryRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return errors.New("query must not be empty")
	}
	return nil
}

// QueryTool exposes the executor as a typed registry tool.
func QueryTool(e *Executor) tool.Func {
	return tool.Typed(func(ctx context.Context, req QueryRequest) (string, error) {
		return e.Execute(ctx, req.Query, req.Commit), nil
	})
}

// QueryToolSchema describes QueryRequest.
func QueryToolSchema() *tool.Schema {
	return &tool.Schema{
		Type: tool.TypeObject,
		Properties: map[string]*tool.Schema{
			"query": {
				Type:        tool.TypeString,
				Description: "The SQL statement to run",
			},
			"commit": {
				Type:        tool.TypeBoolean,
				Description: "Run in a transaction and commit (for INSERT, UPDATE and DELETE)",
			},
		},
		Required: []string{"query"},
	}
}

// RegisterQueryTool adds execute_sql to r.
func RegisterQueryTool(r *tool.Registry, e *Executor) {
	r.Register(QueryToolName, QueryTool(e),
		"Run a SQL statement against the local SQLite database and return the result as text",
		QueryToolSchema().Raw())
}
