// Package sqlexec runs single SQL statements against a SQLite database
// file and renders the outcome as display text.
package sqlexec

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// CommittedMessage is returned after a successful write.
	CommittedMessage = "Query executed successfully and changes committed."
	// NoResultsMessage is returned for a read that matched no rows.
	NoResultsMessage = "No results found."
	// driverName is the database/sql name registered by modernc.org/sqlite.
	driverName = "sqlite"
)

// Executor runs statements against one database file. A connection is
// opened for each call and closed before it returns.
type Executor struct {
	dbPath string
}

// New creates an executor for the SQLite file at dbPath.
func New(dbPath string) *Executor {
	slog.Debug("sql executor configured", "db_path", dbPath)
	return &Executor{dbPath: dbPath}
}

// Path returns the database file the executor targets.
func (e *Executor) Path() string {
	return e.dbPath
}

// Execute runs query. With commit set, the statement runs in a transaction
// that is committed before the acknowledgment is returned. Otherwise the
// rows are rendered as a table. Database failures are reported in the
// returned text, never as a Go error.
func (e *Executor) Execute(ctx context.Context, query string, commit bool) string {
	out, err := e.execute(ctx, query, commit)
	if err != nil {
		slog.Debug("sql statement failed", "error", err)
		return formatError(err)
	}
	return out
}

func (e *Executor) execute(ctx context.Context, query string, commit bool) (string, error) {
	db, err := sql.Open(driverName, e.dbPath)
	if err != nil {
		return "", err
	}
	defer db.Close()

	if commit {
		return CommittedMessage, e.write(ctx, db, query)
	}
	return e.read(ctx, db, query)
}

func (e *Executor) write(ctx context.Context, db *sql.DB, query string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (e *Executor) read(ctx context.Context, db *sql.DB, query string) (string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return "", err
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return "", err
	}

	var data [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return "", err
		}
		for i, v := range values {
			if t, ok := v.(time.Time); ok {
				values[i] = formatTime(t, types[i].DatabaseTypeName() == "DATE")
			}
		}
		data = append(data, values)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	if len(data) == 0 {
		return NoResultsMessage, nil
	}
	return FormatResults(columns, data), nil
}
