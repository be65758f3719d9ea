package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/adaptiq/internal/llm"
)

// EnvPath names the variable that points at a config file.
const EnvPath = "ADAPTIQ_CONFIG"

// Config is the on-disk configuration of the app.
type Config struct {
	Learner  LearnerConfig  `yaml:"learner"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Session  SessionConfig  `yaml:"session"`
	LLM      LLMConfig      `yaml:"llm"`

	// path is where the config was loaded from and where Save writes.
	path string
}

type LearnerConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type DatabaseConfig struct {
	// Path of the SQLite file. Empty means the XDG data default.
	Path string `yaml:"path"`
}

type LogConfig struct {
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
	// Path receives log output. The TUI owns the terminal, so an empty
	// path discards logs while it runs.
	Path string `yaml:"path"`
}

type SessionConfig struct {
	QuestionsPerSection int `yaml:"questions_per_section"`
	// TimerMode overrides the timer of every mode. Empty keeps each
	// mode's own default.
	TimerMode string `yaml:"timer_mode,omitempty"`
}

// LLMConfig selects an optional question provider.
type LLMConfig struct {
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model,omitempty"`
	APIKey   string        `yaml:"api_key,omitempty"`
	BaseURL  string        `yaml:"base_url,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Learner: LearnerConfig{ID: "default"},
		Log:     LogConfig{Mode: "production", Level: "info"},
		Session: SessionConfig{QuestionsPerSection: 5},
	}
}

// DefaultPath resolves the config file location: ADAPTIQ_CONFIG, then
// $XDG_CONFIG_HOME/adaptiq/config.yaml, then ~/.config/adaptiq/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "adaptiq", "config.yaml"), nil
}

// Load reads the config at path (DefaultPath when empty) and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

// Save writes the config back to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no path")
	}
	return c.SaveTo(c.path)
}

// SaveTo writes the config to path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	c.path = path
	return nil
}

// Path returns the file the config is bound to.
func (c *Config) Path() string { return c.path }

func (c *Config) applyEnv() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Database.Path, "ADAPTIQ_DB")
	set(&c.Learner.ID, "ADAPTIQ_USER")
	set(&c.Log.Level, "ADAPTIQ_LOG_LEVEL")
	set(&c.Log.Path, "ADAPTIQ_LOG_FILE")
	set(&c.LLM.Provider, "ADAPTIQ_LLM_PROVIDER")
}

func (c *Config) fillDefaults() {
	d := Default()
	if strings.TrimSpace(c.Learner.ID) == "" {
		c.Learner.ID = d.Learner.ID
	}
	if c.Log.Mode == "" {
		c.Log.Mode = d.Log.Mode
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Session.QuestionsPerSection <= 0 {
		c.Session.QuestionsPerSection = d.Session.QuestionsPerSection
	}
}

// ProviderConfig converts the llm section into a provider configuration.
// File values are applied to the selected provider and then the
// provider-specific environment variables win.
func (c LLMConfig) ProviderConfig() llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = c.Provider
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}

	override := func(key, model, baseURL *string) {
		if c.APIKey != "" {
			*key = c.APIKey
		}
		if c.Model != "" {
			*model = c.Model
		}
		if baseURL != nil && c.BaseURL != "" {
			*baseURL = c.BaseURL
		}
	}
	switch c.Provider {
	case llm.ProviderAnthropic:
		override(&cfg.Anthropic.APIKey, &cfg.Anthropic.Model, nil)
	case llm.ProviderOpenAI:
		override(&cfg.OpenAI.APIKey, &cfg.OpenAI.Model, &cfg.OpenAI.BaseURL)
	case llm.ProviderGemini:
		override(&cfg.Gemini.APIKey, &cfg.Gemini.Model, nil)
	case llm.ProviderOpenRouter:
		override(&cfg.OpenRouter.APIKey, &cfg.OpenRouter.Model, &cfg.OpenRouter.BaseURL)
	}

	llm.ApplyEnv(&cfg)
	return cfg
}
