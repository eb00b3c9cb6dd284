package agentgraph

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/agentgraph/logging"
)

// Config contains application level settings loaded from a YAML file.
type Config struct {
	// Graph contains settings for the embedded graph store.
	Graph GraphConfig `json:"graph" yaml:"graph"`

	// LLM contains settings for the model provider.
	LLM LLMConfig `json:"llm" yaml:"llm"`

	// Logging contains settings for structured logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// GraphConfig configures the embedded graph store.
type GraphConfig struct {
	// PersistDir is the directory holding the database file.
	PersistDir string `json:"persist_dir" yaml:"persist_dir"`
}

// LLMConfig configures the model provider used by agents.
type LLMConfig struct {
	// Provider identifies the backend: "anthropic", "openai", "mock", or "" for disabled.
	Provider string `json:"provider" yaml:"provider"`

	// APIKey is the API key for the provider. Supports ${VAR} syntax for env vars.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model is the model identifier, provider specific.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// Timeout is the maximum duration to wait for model responses.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// RedactedAPIKey returns the API key with most characters masked.
// Shows first 4 and last 4 characters, e.g. "sk-a...xyz9".
// Returns "" for empty keys and "(set)" for keys shorter than 12 chars.
func (c LLMConfig) RedactedAPIKey() string {
	if c.APIKey == "" {
		return ""
	}
	if len(c.APIKey) < 12 {
		return "(set)"
	}
	return c.APIKey[:4] + "..." + c.APIKey[len(c.APIKey)-4:]
}

// String implements fmt.Stringer to prevent accidental API key logging.
func (c LLMConfig) String() string {
	return fmt.Sprintf("LLMConfig{Provider:%s, Model:%s, APIKey:%s}",
		c.Provider, c.Model, c.RedactedAPIKey())
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level sets the log verbosity: "debug", "info" (default), "warn" or "error".
	Level string `json:"level" yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			PersistDir: DefaultPersistDir,
		},
		LLM: LLMConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file, applying defaults for
// unset fields. The API key supports ${VAR} expansion from the environment.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	config.LLM.APIKey = os.ExpandEnv(config.LLM.APIKey)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// NewLogger builds a structured logger honoring the configured level.
// Options allow overriding format or output, e.g. for tests.
func (c *Config) NewLogger(optFns ...func(o *logging.LoggerConfig)) logging.Logger {
	cfg := logging.DefaultLoggerConfig()
	cfg.Level = logging.ParseLogLevel(c.Logging.Level)

	for _, fn := range optFns {
		fn(cfg)
	}

	return logging.NewLogger(cfg)
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Graph.PersistDir == "" {
		return fmt.Errorf("graph persist_dir must not be empty")
	}

	if c.LLM.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %v", c.LLM.Timeout)
	}

	validProviders := map[string]bool{"": true, "anthropic": true, "openai": true, "mock": true}
	if !validProviders[c.LLM.Provider] {
		return fmt.Errorf("invalid provider: %s (valid: anthropic, openai, mock, or empty)", c.LLM.Provider)
	}

	validLevels := map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error, or empty for default)", c.Logging.Level)
	}

	return nil
}
