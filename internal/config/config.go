// Package config loads fitplan settings from an optional YAML file and FITPLAN_* environment variables.
// Environment variables win over the file.
package config

import (
	"fmt"
	"os"

	"github.com/myrjola/fitplan/internal/envstruct"
	"github.com/myrjola/fitplan/internal/i18n"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreDir    = "dir"
	StoreSQLite = "sqlite"
)

// Config holds the fitplan settings.
type Config struct {
	// Store selects the document backend, StoreDir or StoreSQLite.
	Store string `yaml:"store"`
	// DataDir holds one JSON file per document when Store is StoreDir.
	DataDir string `yaml:"data_dir"`
	// SQLiteURL is the database file or ":memory:" when Store is StoreSQLite.
	SQLiteURL string `yaml:"sqlite_url"`
	// Language of titles and rendered plans.
	Language string `yaml:"language"`
	LogLevel string `yaml:"log_level"`
	// OpenAIAPIKey enables generated exercise descriptions during import.
	OpenAIAPIKey string `yaml:"openai_api_key"`
	OpenAIModel  string `yaml:"openai_model"`
	// TraceDir enables the flight recorder. A failing command leaves an execution trace there.
	TraceDir string `yaml:"trace_dir"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Store:        StoreDir,
		DataDir:      "data",
		SQLiteURL:    "fitplan.sqlite3",
		Language:     string(i18n.English),
		LogLevel:     "info",
		OpenAIAPIKey: "",
		OpenAIModel:  "gpt-4o-mini",
		TraceDir:     "",
	}
}

// envOverrides lists the recognised environment variables. Empty values leave the setting unchanged.
type envOverrides struct {
	ConfigFile   string `env:"FITPLAN_CONFIG" envDefault:""`
	Store        string `env:"FITPLAN_STORE" envDefault:""`
	DataDir      string `env:"FITPLAN_DATA_DIR" envDefault:""`
	SQLiteURL    string `env:"FITPLAN_SQLITE_URL" envDefault:""`
	Language     string `env:"FITPLAN_LANGUAGE" envDefault:""`
	LogLevel     string `env:"FITPLAN_LOG_LEVEL" envDefault:""`
	OpenAIAPIKey string `env:"FITPLAN_OPENAI_API_KEY" envDefault:""`
	OpenAIModel  string `env:"FITPLAN_OPENAI_MODEL" envDefault:""`
	TraceDir     string `env:"FITPLAN_TRACE_DIR" envDefault:""`
}

// Load builds the configuration. path names the YAML file; when empty FITPLAN_CONFIG is consulted and, if
// that is unset too, only defaults and environment variables apply. lookupEnv has the signature of
// [os.LookupEnv].
func Load(path string, lookupEnv func(string) (string, bool)) (Config, error) {
	var env envOverrides
	if err := envstruct.Populate(&env, lookupEnv); err != nil {
		return Config{}, fmt.Errorf("populate env: %w", err)
	}

	cfg := Default()
	if path == "" {
		path = env.ConfigFile
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg, env)

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config, env envOverrides) {
	for _, o := range []struct {
		dst *string
		v   string
	}{
		{&cfg.Store, env.Store},
		{&cfg.DataDir, env.DataDir},
		{&cfg.SQLiteURL, env.SQLiteURL},
		{&cfg.Language, env.Language},
		{&cfg.LogLevel, env.LogLevel},
		{&cfg.OpenAIAPIKey, env.OpenAIAPIKey},
		{&cfg.OpenAIModel, env.OpenAIModel},
		{&cfg.TraceDir, env.TraceDir},
	} {
		if o.v != "" {
			*o.dst = o.v
		}
	}
}

func (c Config) validate() error {
	switch c.Store {
	case StoreDir:
		if c.DataDir == "" {
			return fmt.Errorf("data_dir is required for store %q", c.Store)
		}
	case StoreSQLite:
		if c.SQLiteURL == "" {
			return fmt.Errorf("sqlite_url is required for store %q", c.Store)
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if !i18n.IsSupported(i18n.Language(c.Language)) {
		return fmt.Errorf("unsupported language %q", c.Language)
	}
	return nil
}
