// Package dusettings loads and saves the optional user settings file.
package dusettings

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/filetug/dutug/pkg/fsutils"
	"github.com/filetug/dutug/pkg/sizetree"
)

const (
	appDirName       = "dutug"
	settingsFileName = "settings.json"
)

var configHome = func() string {
	return xdg.ConfigHome
}

type Settings struct {
	FollowSymlinks bool   `json:"follow_symlinks,omitempty"`
	Workers        int    `json:"workers,omitempty"`
	Sort           string `json:"sort,omitempty"`
	LogFile        string `json:"log_file,omitempty"`
	LogLevel       string `json:"log_level,omitempty"`
	LogFormat      string `json:"log_format,omitempty"`
}

// SortMode parses Sort; empty means size.
func (s Settings) SortMode() (sizetree.SortMode, error) {
	return sizetree.ParseSortMode(s.Sort)
}

// FilePath is $XDG_CONFIG_HOME/dutug/settings.json.
func FilePath() string {
	return filepath.Join(configHome(), appDirName, settingsFileName)
}

// Load returns zero Settings when the file does not exist.
func Load() (Settings, error) {
	var settings Settings
	filePath := FilePath()
	if err := fsutils.ReadJSONFile(filePath, false, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	settings.LogFile = fsutils.ExpandHome(settings.LogFile)
	return settings, nil
}

func Save(settings Settings) error {
	if err := fsutils.WriteJSONFile(FilePath(), settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
