// Package main runs sqlagent, an interactive prompt that turns questions
// into SQL through a hosted language model and runs them on a local
// SQLite database.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Cyclone1070/sqlagent/internal/agent"
	"github.com/Cyclone1070/sqlagent/internal/config"
	"github.com/Cyclone1070/sqlagent/internal/provider"
	"github.com/Cyclone1070/sqlagent/internal/provider/anthropic"
	"github.com/Cyclone1070/sqlagent/internal/provider/gemini"
	"github.com/Cyclone1070/sqlagent/internal/provider/openai"
	"github.com/Cyclone1070/sqlagent/internal/sqlexec"
	"github.com/Cyclone1070/sqlagent/internal/tool"
	"github.com/Cyclone1070/sqlagent/internal/tool/mcp"
	"github.com/Cyclone1070/sqlagent/internal/ui"
	uiservices "github.com/Cyclone1070/sqlagent/internal/ui/services"
	"golang.org/x/term"
)

// toolSource registers externally discovered tools.
type toolSource interface {
	RegisterAll(ctx context.Context, r *tool.Registry) (int, error)
	Close() error
}

// Dependencies holds the components required to run the application.
type Dependencies struct {
	Config            *config.Config
	Out               io.Writer
	ProviderFactory   func(context.Context) (provider.Provider, error)
	ToolSourceFactory func(context.Context) (toolSource, error)
	LineReaderFactory func() (ui.LineReader, error)
}

func createRealProviderFactory(cfg *config.Config) func(context.Context) (provider.Provider, error) {
	return func(ctx context.Context) (provider.Provider, error) {
		p := cfg.Provider
		switch p.Name {
		case config.ProviderGemini:
			g, err := gemini.NewFromAPIKey(ctx, p.GeminiAPIKey, p.Model, p.MaxOutputTokens)
			if err != nil {
				return nil, err
			}
			return g, nil
		case config.ProviderOpenAI:
			o, err := openai.New(p.OpenAIAPIKey, p.OpenAIBaseURL, p.Model, p.MaxOutputTokens)
			if err != nil {
				return nil, err
			}
			return o, nil
		case config.ProviderAnthropic:
			a, err := anthropic.New(p.AnthropicAPIKey, p.Model, p.MaxOutputTokens)
			if err != nil {
				return nil, err
			}
			return a, nil
		default:
			return nil, fmt.Errorf("unknown provider %q", p.Name)
		}
	}
}

func createRealToolSourceFactory(cfg *config.Config) func(context.Context) (toolSource, error) {
	if !cfg.MCP.Enabled {
		return nil
	}
	return func(ctx context.Context) (toolSource, error) {
		client, err := mcp.ConnectCommand(ctx, cfg.MCP.Command, cfg.ServerArgs())
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func createRealLineReaderFactory(cfg *config.Config) func() (ui.LineReader, error) {
	return func() (ui.LineReader, error) {
		rl, err := ui.NewReadlineReader(cfg.UI.HistoryFile)
		if err != nil {
			return nil, err
		}
		return rl, nil
	}
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// createTools builds the registry: the local execute_sql tool first, then
// everything the tool source offers. The returned cleanup closes the
// source.
func createTools(ctx context.Context, deps Dependencies, executor *sqlexec.Executor) (*tool.Registry, func(), error) {
	registry := tool.NewRegistry()
	sqlexec.RegisterQueryTool(registry, executor)

	if deps.ToolSourceFactory == nil {
		return registry, func() {}, nil
	}

	source, err := deps.ToolSourceFactory(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start tool server: %w", err)
	}
	cleanup := func() {
		if err := source.Close(); err != nil {
			slog.Warn("failed to close tool server", "error", err)
		}
	}

	if _, err := source.RegisterAll(ctx, registry); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return registry, cleanup, nil
}

func run(ctx context.Context, deps Dependencies) error {
	cfg := deps.Config
	slog.Debug("starting", "db_path", cfg.Database.Path, "provider", cfg.Provider.Name)

	p, err := deps.ProviderFactory(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize provider: %w", err)
	}

	executor := sqlexec.New(cfg.Database.Path)

	registry, cleanup, err := createTools(ctx, deps, executor)
	if err != nil {
		return err
	}
	defer cleanup()

	reader, err := deps.LineReaderFactory()
	if err != nil {
		return err
	}
	defer reader.Close()

	var opts []ui.Option
	if cfg.UI.RenderMarkdown {
		opts = append(opts, ui.WithRenderer(uiservices.NewGlamourRenderer(cfg.UI.MarkdownStyle), terminalWidth()))
	}
	if cfg.UI.ShowSpinner {
		opts = append(opts, ui.WithSpinner(ui.PtermSpinner(deps.Out)))
	}

	driver := ui.NewDriver(reader, deps.Out, agent.New(p, executor), opts...)
	driver.ShowTools(registry.Specs())
	return driver.Run(ctx)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, _ := cfg.Log.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := Dependencies{
		Config:            cfg,
		Out:               os.Stdout,
		ProviderFactory:   createRealProviderFactory(cfg),
		ToolSourceFactory: createRealToolSourceFactory(cfg),
		LineReaderFactory: createRealLineReaderFactory(cfg),
	}

	if err := run(ctx, deps); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
