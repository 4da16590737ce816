package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bunchhieng/arx/internal/config"
	"github.com/bunchhieng/arx/internal/storage"
)

// ErrNoProjectDirs indicates the platform gives no place to keep config or data.
var ErrNoProjectDirs = errors.New("project directories not found")

const appDirName = "arx"

// Dirs holds the default file locations, resolved once at startup.
type Dirs struct {
	ConfigPath string
	DataPath   string
}

// ResolveDirs determines the default config and data paths.
// Config lives under the platform config directory, data under XDG_DATA_HOME
// (or ~/.local/share).
func ResolveDirs() (Dirs, error) {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		return Dirs{}, ErrNoProjectDirs
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return Dirs{}, ErrNoProjectDirs
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return Dirs{
		ConfigPath: filepath.Join(configDir, appDirName, "config.yml"),
		DataPath:   filepath.Join(dataHome, appDirName, config.DataFileName),
	}, nil
}

// Env is everything a command needs: the loaded config and bookmark store.
type Env struct {
	ConfigPath string
	Config     *config.Config
	Store      *storage.Store
}

// Open loads the config at configPath (or the default) and the store it points to.
func Open(dirs Dirs, configPath string) (*Env, error) {
	if configPath == "" {
		configPath = dirs.ConfigPath
	}
	cfg, err := config.Load(configPath, dirs.DataPath)
	if err != nil {
		return nil, err
	}
	store, err := storage.Load(cfg.SaveLocation)
	if err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}
	return &Env{ConfigPath: configPath, Config: cfg, Store: store}, nil
}
