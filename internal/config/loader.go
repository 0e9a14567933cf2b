package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "sqlagent"
	// ConfigFile is the dotenv file name, looked up in the working directory first.
	ConfigFile = "config.env"
)

// envBindings maps config keys to the environment variable names the
// application has always used.
var envBindings = map[string]string{
	"provider.name":              "LLM_PROVIDER",
	"provider.gemini_api_key":    "GEMINI_API_KEY",
	"provider.openai_api_key":    "OPENAI_API_KEY",
	"provider.openai_base_url":   "OPENAI_BASE_URL",
	"provider.anthropic_api_key": "ANTHROPIC_API_KEY",
	"provider.model":             "MODEL_NAME",
	"provider.max_output_tokens": "MAX_OUTPUT_TOKENS",
	"database.path":              "DB_PATH",
	"mcp.enabled":                "MCP_ENABLED",
	"mcp.command":                "MCP_COMMAND",
	"mcp.args":                   "MCP_ARGS",
	"ui.show_spinner":            "SHOW_SPINNER",
	"ui.render_markdown":         "RENDER_MARKDOWN",
	"ui.markdown_style":           "MARKDOWN_STYLE",
	"ui.history_file":            "HISTORY_FILE",
	"log.level":                  "LOG_LEVEL",
}

// FileSystem abstracts file operations for testability
type FileSystem interface {
	Getwd() (string, error)
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) Getwd() (string, error) {
	return os.Getwd()
}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs     FileSystem
	getenv func(string) (string, bool)
}

// NewLoader creates a production Loader using the real filesystem and environment
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}, getenv: os.LookupEnv}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing).
// The process environment is still consulted.
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs, getenv: os.LookupEnv}
}

// WithLookupEnv replaces the environment lookup (for testing).
func (l *Loader) WithLookupEnv(lookup func(string) (string, bool)) *Loader {
	l.getenv = lookup
	return l
}

// Load builds the configuration from defaults, the first config.env found
// (./config.env, then ~/.config/sqlagent/config.env) and the environment.
// A missing file is not an error. Parse errors, permission issues and
// validation failures are.
func (l *Loader) Load() (*Config, error) {
	defaults := DefaultConfig()

	v := viper.New()
	setDefaults(v, defaults)

	fileValues, err := l.readDotenv()
	if err != nil {
		return nil, err
	}

	for key, env := range envBindings {
		if fileValues != nil && fileValues.IsSet(strings.ToLower(env)) {
			v.SetDefault(key, fileValues.Get(strings.ToLower(env)))
		}
		if val, ok := l.getenv(env); ok {
			v.Set(key, val)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.MCP.Args = trimArgs(cfg.MCP.Args)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// readDotenv returns the parsed config.env, or nil if none exists.
func (l *Loader) readDotenv() (*viper.Viper, error) {
	for _, path := range l.candidatePaths() {
		data, err := l.fs.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err // Return error for permission issues
		}

		f := viper.New()
		f.SetConfigType("env")
		if err := f.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", path, err)
		}
		return f, nil
	}
	return nil, nil
}

func (l *Loader) candidatePaths() []string {
	var paths []string
	if wd, err := l.fs.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, ConfigFile))
	}
	if home, err := l.fs.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", ConfigDir, ConfigFile))
	}
	return paths
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("provider.name", d.Provider.Name)
	v.SetDefault("provider.gemini_api_key", d.Provider.GeminiAPIKey)
	v.SetDefault("provider.openai_api_key", d.Provider.OpenAIAPIKey)
	v.SetDefault("provider.openai_base_url", d.Provider.OpenAIBaseURL)
	v.SetDefault("provider.anthropic_api_key", d.Provider.AnthropicAPIKey)
	v.SetDefault("provider.model", d.Provider.Model)
	v.SetDefault("provider.max_output_tokens", d.Provider.MaxOutputTokens)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("mcp.enabled", d.MCP.Enabled)
	v.SetDefault("mcp.command", d.MCP.Command)
	v.SetDefault("mcp.args", d.MCP.Args)
	v.SetDefault("ui.show_spinner", d.UI.ShowSpinner)
	v.SetDefault("ui.render_markdown", d.UI.RenderMarkdown)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("ui.history_file", d.UI.HistoryFile)
	v.SetDefault("log.level", d.Log.Level)
}

func trimArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
