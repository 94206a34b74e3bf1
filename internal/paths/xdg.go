// Package paths provides XDG-compliant path resolution.
//
// Resolution order:
// 1. PLAYCORE_HOME (portable root) → $PLAYCORE_HOME/{config,data}
// 2. XDG env vars → $XDG_*_HOME/playcore
// 3. Platform defaults → ~/.config/playcore, ~/.local/share/playcore
package paths

import (
	"os"
	"path/filepath"
)

const appName = "playcore"

func getConfigHome() string {
	if home := os.Getenv("PLAYCORE_HOME"); home != "" {
		return filepath.Join(home, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

func getDataHome() string {
	if home := os.Getenv("PLAYCORE_HOME"); home != "" {
		return filepath.Join(home, "data")
	}
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return xdgDataHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "share")
	}
	return ""
}

// ConfigDir returns the configuration directory (config.toml lives here).
func ConfigDir() string {
	if os.Getenv("PLAYCORE_HOME") != "" {
		return getConfigHome()
	}
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// DataDir returns the data directory. The persisted session lives here.
func DataDir() string {
	if os.Getenv("PLAYCORE_HOME") != "" {
		return getDataHome()
	}
	base := getDataHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}
