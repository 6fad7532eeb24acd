package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPath returns the config file location: $MEMELAB_CONFIG, or
// config.toml inside DataDir.
func ConfigPath() string {
	if path := os.Getenv("MEMELAB_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(DataDir(), "config.toml")
}

// DataDir returns the path to the memelab data directory.
// - Windows: %APPDATA%\memelab
// - Other OS: ~/.memelab
func DataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "memelab")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".memelab"
	}
	return filepath.Join(home, ".memelab")
}

// DBPath returns the default path of the usage database.
func DBPath() string {
	return filepath.Join(DataDir(), "usage.db")
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0700)
}
