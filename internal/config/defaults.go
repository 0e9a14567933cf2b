package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden by a config.env file
// or by the process environment. Environment values win over file values.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Database DatabaseConfig `mapstructure:"database"`
	MCP      MCPConfig      `mapstructure:"mcp"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

type ProviderConfig struct {
	// Name selects the model backend: gemini, openai or anthropic.
	Name string `mapstructure:"name"` // Default: gemini

	GeminiAPIKey    string `mapstructure:"gemini_api_key"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	OpenAIBaseURL   string `mapstructure:"openai_base_url"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`

	Model           string `mapstructure:"model"`             // Default: gemini-pro
	MaxOutputTokens int    `mapstructure:"max_output_tokens"` // Default: 4096
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"` // Default: test.db
}

type MCPConfig struct {
	Enabled bool   `mapstructure:"enabled"` // Default: true
	Command string `mapstructure:"command"` // Default: uvx
	// Args defaults to mcp-server-sqlite --db-path <database.path> when empty.
	Args []string `mapstructure:"args"`
}

type UIConfig struct {
	ShowSpinner    bool   `mapstructure:"show_spinner"`    // Default: true
	RenderMarkdown bool   `mapstructure:"render_markdown"` // Default: true
	MarkdownStyle  string `mapstructure:"markdown_style"`  // Default: auto
	HistoryFile    string `mapstructure:"history_file"`
}

type LogConfig struct {
	Level string `mapstructure:"level"` // Default: warn
}

// Provider names accepted by provider.name.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Name:            ProviderGemini,
			Model:           "gemini-pro",
			MaxOutputTokens: 4096,
		},
		Database: DatabaseConfig{
			Path: "test.db",
		},
		MCP: MCPConfig{
			Enabled: true,
			Command: "uvx",
		},
		UI: UIConfig{
			ShowSpinner:    true,
			RenderMarkdown: true,
			MarkdownStyle:  "auto",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ServerArgs returns the tool server arguments, falling back to the
// mcp-server-sqlite invocation for the configured database.
func (c *Config) ServerArgs() []string {
	if len(c.MCP.Args) > 0 {
		return c.MCP.Args
	}
	return []string{"mcp-server-sqlite", "--db-path", c.Database.Path}
}
