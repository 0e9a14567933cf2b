package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour/styles"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Provider validation
	switch c.Provider.Name {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		errs = append(errs, fmt.Sprintf("provider.name must be one of %s, %s, %s (got %q)",
			ProviderGemini, ProviderOpenAI, ProviderAnthropic, c.Provider.Name))
	}
	if strings.TrimSpace(c.Provider.Model) == "" {
		errs = append(errs, "provider.model must not be empty")
	}
	if c.Provider.MaxOutputTokens < 1 {
		errs = append(errs, "provider.max_output_tokens must be >= 1")
	}

	// Database validation
	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, "database.path must not be empty")
	}

	// MCP validation
	if c.MCP.Enabled && strings.TrimSpace(c.MCP.Command) == "" {
		errs = append(errs, "mcp.command must not be empty when mcp.enabled is true")
	}

	// UI validation
	if _, ok := styles.DefaultStyles[c.UI.MarkdownStyle]; !ok && c.UI.MarkdownStyle != styles.AutoStyle {
		errs = append(errs, fmt.Sprintf("ui.markdown_style: unknown glamour style %q", c.UI.MarkdownStyle))
	}

	// Log validation
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, fmt.Sprintf("log.level: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}
	return nil
}

// SlogLevel parses the configured log level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelWarn, err
	}
	return level, nil
}
