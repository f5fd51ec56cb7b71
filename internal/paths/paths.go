// Package paths resolves configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
)

// DefaultConfigDirName is the CWD-relative configuration directory.
const DefaultConfigDirName = ".shelfmark"

// DBFileName is the SQLite database file kept inside the data directory.
// The name matches what earlier versions of the tool produced, so existing
// library.db files keep working.
const DBFileName = "library.db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "SHELFMARK_CONFIG_DIR"
	EnvDataDir   = "SHELFMARK_DATA_DIR"
)

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > SHELFMARK_CONFIG_DIR env > $(CWD)/.shelfmark.
//
// If flag is non-empty it wins. Otherwise the SHELFMARK_CONFIG_DIR
// environment variable is checked. If neither is set, the CWD-relative
// default is returned.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > SHELFMARK_DATA_DIR env > $(CWD).
//
// The CWD default keeps the database file at ./library.db, the location
// users of earlier versions expect.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return os.Getwd()
}

// DBFilePath returns the full path of the SQLite database file inside the
// given data directory.
func DBFilePath(dataDir string) string {
	return filepath.Join(dataDir, DBFileName)
}
