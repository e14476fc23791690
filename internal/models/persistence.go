package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// SaveDir is where game state documents live. Overridable via config.
var SaveDir = ".saves"

// Save writes the game state as a single JSON document under SaveDir.
// Only persistent fields carry JSON tags, so transient flags (like an
// in-flight turn) never reach disk.
func (s *GameState) Save(name string) error {
	if err := os.MkdirAll(SaveDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(SaveDir, name+".json"), data, 0644)
}

// LoadState reads a previously saved game state document.
func LoadState(name string) (*GameState, error) {
	data, err := os.ReadFile(filepath.Join(SaveDir, name+".json"))
	if err != nil {
		return nil, err
	}

	var state GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// ListSaves returns the names of saved runs, without the .json suffix.
func ListSaves() ([]string, error) {
	if _, err := os.Stat(SaveDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(SaveDir)
	if err != nil {
		return nil, err
	}

	var saves []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		saves = append(saves, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return saves, nil
}
