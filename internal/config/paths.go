// Package config provides configuration loading and path management.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// ConfigHome returns the XDG config directory, ~/.config by default.
func ConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the path of the optional config file.
func DefaultConfigPath() string {
	return filepath.Join(ConfigHome(), "punchsheet", "config.jsonc")
}

// DefaultSessionPath returns where the dashboard session cookies are kept.
func DefaultSessionPath() string {
	return filepath.Join(ConfigHome(), "connectteam.json")
}
