package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Cyclone1070/sqlagent/internal/config"
	"github.com/Cyclone1070/sqlagent/internal/provider"
	"github.com/Cyclone1070/sqlagent/internal/provider/models"
	"github.com/Cyclone1070/sqlagent/internal/sqlexec"
	"github.com/Cyclone1070/sqlagent/internal/testing/mocks"
	"github.com/Cyclone1070/sqlagent/internal/testing/testhelpers"
	"github.com/Cyclone1070/sqlagent/internal/tool"
	"github.com/Cyclone1070/sqlagent/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToolSource struct {
	registerErr error
	closed      bool
}

func (f *fakeToolSource) RegisterAll(ctx context.Context, r *tool.Registry) (int, error) {
	if f.registerErr != nil {
		return 0, f.registerErr
	}
	r.Register("list_tables", func(ctx context.Context, name string, input map[string]any) (any, error) {
		return "users", nil
	}, "List all tables in the database", nil)
	return 1, nil
}

func (f *fakeToolSource) Close() error {
	f.closed = true
	return nil
}

func testDeps(t *testing.T, p provider.Provider, lines ...string) (Dependencies, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Database.Path = testhelpers.NewSQLiteDB(t, "CREATE TABLE notes (body TEXT)")
	cfg.MCP.Enabled = false
	cfg.UI.ShowSpinner = false
	cfg.UI.RenderMarkdown = false

	var out bytes.Buffer
	return Dependencies{
		Config: cfg,
		Out:    &out,
		ProviderFactory: func(context.Context) (provider.Provider, error) {
			return p, nil
		},
		LineReaderFactory: func() (ui.LineReader, error) {
			return mocks.NewMockLineReader(lines...), nil
		},
	}, &out
}

func TestRun_EndToEnd(t *testing.T) {
	p := mocks.NewMockProvider().
		WithTextResponse("```sql\nINSERT INTO notes (body) VALUES ('hello');\n```").
		WithTextResponse("SELECT body FROM notes")
	deps, out := testDeps(t, p, "save hello", "show notes", "quit")

	err := run(context.Background(), deps)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Available tools:")
	assert.Contains(t, out.String(), sqlexec.QueryToolName)
	assert.Contains(t, out.String(), sqlexec.CommittedMessage)
	assert.Contains(t, out.String(), "| body |\n|------|\n| hello |")
	assert.Equal(t, []string{"hello"}, testhelpers.QueryStrings(t, deps.Config.Database.Path, "SELECT body FROM notes"))
}

func TestRun_ToolSourceRegisteredAndClosed(t *testing.T) {
	deps, out := testDeps(t, mocks.NewMockProvider(), "q")
	source := &fakeToolSource{}
	deps.ToolSourceFactory = func(context.Context) (toolSource, error) { return source, nil }

	err := run(context.Background(), deps)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "list_tables: List all tables in the database")
	assert.True(t, source.closed)
}

func TestRun_ProviderFailureIsFatal(t *testing.T) {
	deps, _ := testDeps(t, nil)
	deps.ProviderFactory = func(context.Context) (provider.Provider, error) {
		return nil, models.ErrMissingAPIKey
	}

	err := run(context.Background(), deps)

	assert.ErrorIs(t, err, models.ErrMissingAPIKey)
}

func TestRun_ToolListingFailureClosesSource(t *testing.T) {
	deps, _ := testDeps(t, mocks.NewMockProvider())
	source := &fakeToolSource{registerErr: errors.New("server crashed")}
	deps.ToolSourceFactory = func(context.Context) (toolSource, error) { return source, nil }

	err := run(context.Background(), deps)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list tools")
	assert.True(t, source.closed)
}

func TestCreateTools_LocalToolFirst(t *testing.T) {
	deps, _ := testDeps(t, nil)
	deps.ToolSourceFactory = func(context.Context) (toolSource, error) { return &fakeToolSource{}, nil }

	registry, cleanup, err := createTools(context.Background(), deps, sqlexec.New(deps.Config.Database.Path))
	require.NoError(t, err)
	defer cleanup()

	specs := registry.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, sqlexec.QueryToolName, specs[0].Name)
	assert.Equal(t, "list_tables", specs[1].Name)
}

func TestCreateRealProviderFactory_MissingKeys(t *testing.T) {
	for _, name := range []string{config.ProviderGemini, config.ProviderOpenAI, config.ProviderAnthropic} {
		t.Run(name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Provider.Name = name

			p, err := createRealProviderFactory(cfg)(context.Background())

			assert.Nil(t, p)
			assert.ErrorIs(t, err, models.ErrMissingAPIKey)
		})
	}
}

func TestCreateRealProviderFactory_WithKeys(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider.Name = config.ProviderOpenAI
	cfg.Provider.OpenAIAPIKey = "sk-test"
	cfg.Provider.Model = "gpt-4o"

	p, err := createRealProviderFactory(cfg)(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.GetModel())
}

func TestCreateRealToolSourceFactory_DisabledIsNil(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MCP.Enabled = false

	assert.Nil(t, createRealToolSourceFactory(cfg))
}
