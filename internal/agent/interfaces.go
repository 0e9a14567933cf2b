package agent

import "context"

// sqlExecutor runs a classified statement.
// This is a consumer-defined interface; sqlexec.Executor satisfies it.
type sqlExecutor interface {
	Execute(ctx context.Context, query string, commit bool) string
}
