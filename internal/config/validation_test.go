package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AllDefaults_Pass(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_Provider(t *testing.T) {
	t.Run("Unknown Provider Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider.Name = "llama"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "provider.name")
	})

	t.Run("Empty Model Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider.Model = "  "
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "provider.model")
	})

	t.Run("Zero Output Tokens Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider.MaxOutputTokens = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "max_output_tokens")
	})

	t.Run("Missing API Key Passes", func(t *testing.T) {
		// Keys are checked when the provider is constructed.
		cfg := DefaultConfig()
		cfg.Provider.GeminiAPIKey = ""
		assert.NoError(t, cfg.Validate())
	})
}

func TestValidate_Database(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Path = ""
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database.path")
}

func TestValidate_MCP(t *testing.T) {
	t.Run("Empty Command Fails When Enabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MCP.Command = ""
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "mcp.command")
	})

	t.Run("Empty Command Passes When Disabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MCP.Enabled = false
		cfg.MCP.Command = ""
		assert.NoError(t, cfg.Validate())
	})
}

func TestValidate_MarkdownStyle(t *testing.T) {
	tests := []struct {
		style     string
		wantError bool
	}{
		{"auto", false},
		{"dark", false},
		{"tokyo-night", false},
		{"neon", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.UI.MarkdownStyle = tt.style
			err := cfg.Validate()
			if tt.wantError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "ui.markdown_style")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_LogLevel(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		want      slog.Level
		wantError bool
	}{
		{"Debug", "debug", slog.LevelDebug, false},
		{"Upper_Info", "INFO", slog.LevelInfo, false},
		{"Warn", "warn", slog.LevelWarn, false},
		{"Error", "error", slog.LevelError, false},
		{"Garbage", "loud", slog.LevelWarn, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Log.Level = tt.level

			level, err := cfg.Log.SlogLevel()
			if tt.wantError {
				assert.Error(t, err)
				assert.Error(t, cfg.Validate())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, level)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestValidate_MultipleErrors_ReportsAll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider.Name = ""
	cfg.Database.Path = ""
	cfg.Provider.MaxOutputTokens = -1

	err := cfg.Validate()

	assert.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "provider.name")
	assert.Contains(t, msg, "database.path")
	assert.Contains(t, msg, "max_output_tokens")
}
