package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "writer"

// Dir returns the OS-appropriate configuration directory for writer
func Dir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// File returns the default config file path
func File() string {
	return filepath.Join(Dir(), "config.toml")
}

// EnsureDir creates the directory holding configFile if it doesn't exist
func EnsureDir(configFile string) error {
	return os.MkdirAll(filepath.Dir(configFile), 0755)
}
