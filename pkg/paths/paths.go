// Package paths resolves the XDG locations failsafe uses for its
// config file, persisted state and logs. Environment overrides take
// precedence so tests and scripts can relocate everything.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppDirName is the directory name used under each XDG base dir
	AppDirName = "failsafe"

	// EnvConfigDir overrides the config directory
	EnvConfigDir = "FAILSAFE_CONFIG_DIR"

	// EnvDataDir overrides the data directory
	EnvDataDir = "FAILSAFE_DATA_DIR"
)

// ConfigDir returns the directory holding failsafe.toml
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// DataDir returns the directory holding persisted rules and overrides
func DataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.DataHome, AppDirName)
}

// ConfigFile returns the path of the user config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "failsafe.toml")
}

// StateFile returns the path of the persisted rule and override state
func StateFile() string {
	return filepath.Join(DataDir(), "state.json")
}
