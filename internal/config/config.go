// Package config resolves where the id file lives and loads global settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// EnvDataPath overrides the id file location. The value is used verbatim.
	EnvDataPath = "RETRVID_DATA"
	// AppDir is the directory name under the platform data directory.
	AppDir = "retrvid"
	// DataFile is the id file name inside AppDir.
	DataFile = "ids.toml"
)

// ErrNoDataDir is returned when no data directory can be determined and no
// override is set.
var ErrNoDataDir = errors.New("unable to retrieve data directory path")

// ResolveStoragePath returns the id file path. A non-empty override wins;
// otherwise dataDir is consulted and joined with AppDir/DataFile.
func ResolveStoragePath(override string, dataDir func() (string, error)) (string, error) {
	if override != "" {
		return override, nil
	}
	if dataDir == nil {
		return "", ErrNoDataDir
	}

	dir, err := dataDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDataDir, err)
	}
	if dir == "" {
		return "", ErrNoDataDir
	}

	return filepath.Join(dir, AppDir, DataFile), nil
}

// DataPath resolves the id file path for this process.
// Precedence: RETRVID_DATA, data_path from the global config, platform data dir.
func DataPath() (string, error) {
	if p := os.Getenv(EnvDataPath); p != "" {
		return p, nil
	}
	return ResolveStoragePath(GetDataPath(), DataDir)
}

// DataDir returns the per-user data directory for the running platform.
func DataDir() (string, error) {
	return platformDataDir(runtime.GOOS, os.Getenv, os.UserHomeDir)
}

func platformDataDir(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	switch goos {
	case "windows":
		if dir := getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return "", ErrNoDataDir
	case "darwin", "ios":
		h, err := home()
		if err != nil || h == "" {
			return "", ErrNoDataDir
		}
		return filepath.Join(h, "Library", "Application Support"), nil
	case "plan9", "js", "wasip1":
		return "", ErrNoDataDir
	default:
		// XDG says relative values must be ignored
		if dir := getenv("XDG_DATA_HOME"); dir != "" && filepath.IsAbs(dir) {
			return dir, nil
		}
		h, err := home()
		if err != nil || h == "" {
			return "", ErrNoDataDir
		}
		return filepath.Join(h, ".local", "share"), nil
	}
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
