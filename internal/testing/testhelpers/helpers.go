// Package testhelpers provides shared fixtures for integration testing
package testhelpers

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// NewSQLiteDB creates a database file in a per-test temp dir, applies the
// given statements in order and returns the file path. The handle used for
// seeding is closed before returning so the code under test opens the file
// fresh.
func NewSQLiteDB(t *testing.T, statements ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	for _, stmt := range statements {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err, "seed statement %q", stmt)
	}
	return path
}

// QueryStrings runs a single-column query and returns the values as strings.
func QueryStrings(t *testing.T, path, query string) []string {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.QueryContext(context.Background(), query)
	require.NoError(t, err)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v sql.NullString
		require.NoError(t, rows.Scan(&v))
		out = append(out, v.String)
	}
	require.NoError(t, rows.Err())
	return out
}
