package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"

	"github.com/tmc/punchsheet/internal/punchclock"
)

// Config is the resolved configuration of a run.
type Config struct {
	BaseURL     string
	Timezone    string
	SessionFile string
	Timeout     time.Duration
	NoColor     bool
	LogLevel    string
}

// fileConfig is the on-disk shape. Zero values leave the defaults alone.
type fileConfig struct {
	BaseURL     string `json:"baseURL"`
	Timezone    string `json:"timezone"`
	SessionFile string `json:"sessionFile"`
	Timeout     string `json:"timeout"`
	NoColor     bool   `json:"noColor"`
	LogLevel    string `json:"logLevel"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL:     punchclock.DefaultBaseURL,
		Timezone:    punchclock.DefaultTimezone,
		SessionFile: DefaultSessionPath(),
		Timeout:     30 * time.Second,
		LogLevel:    "WARN",
	}
}

// DotEnvFile is read from the working directory.
const DotEnvFile = ".env"

// Load resolves configuration from, in increasing priority: defaults, the
// JSONC file at path (DefaultConfigPath when empty), a .env file in the
// working directory and PUNCHSHEET_* environment variables. Missing files
// are fine; unreadable or malformed ones are errors.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath()
	}
	if err := loadFile(fs, path, cfg); err != nil {
		return nil, err
	}
	if err := loadDotEnv(fs, DotEnvFile); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv exports the variables of path that are not already set in the
// environment.
func loadDotEnv(fs afero.Fs, path string) error {
	f, err := fs.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for key, value := range vars {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

func loadFile(fs afero.Fs, path string, cfg *Config) error {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.Timezone != "" {
		cfg.Timezone = fc.Timezone
	}
	if fc.SessionFile != "" {
		cfg.SessionFile = expandHome(fc.SessionFile)
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("parsing %s: timeout: %w", path, err)
		}
		cfg.Timeout = d
	}
	if fc.NoColor {
		cfg.NoColor = true
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PUNCHSHEET_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("PUNCHSHEET_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("PUNCHSHEET_SESSION_FILE"); v != "" {
		cfg.SessionFile = expandHome(v)
	}
	if v := os.Getenv("PUNCHSHEET_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PUNCHSHEET_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
	if v := os.Getenv("PUNCHSHEET_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
