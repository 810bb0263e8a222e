package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/drake/armory/loadout"
)

// ClassDefaults are the saved per-class preferences: the parameters a fresh
// loadout starts from and the user's stat priority order (including stats
// they have disabled, which plain parameters can't represent).
type ClassDefaults struct {
	Parameters loadout.Parameters `json:"parameters"`
	StatOrder  []loadout.Hash     `json:"statOrder,omitempty"`
}

// Character is one saved character context. The tool has no account source
// to enumerate characters from, so the roster lives in settings.
type Character struct {
	ID    string        `json:"id"`
	Class loadout.Class `json:"class"`
}

// Settings is the on-disk tool configuration. Unknown keys in the file are
// preserved across saves so newer and older builds can share one file.
type Settings struct {
	ClassDefaults map[string]ClassDefaults `json:"classDefaults,omitempty"`
	Characters    []Character              `json:"characters,omitempty"`
	ManifestPath  string                   `json:"manifestPath,omitempty"`
}

// ParametersFor returns the saved default parameters for a class.
func (s *Settings) ParametersFor(class loadout.Class) (loadout.Parameters, bool) {
	if s == nil || s.ClassDefaults == nil {
		return loadout.Parameters{}, false
	}
	cd, ok := s.ClassDefaults[class.String()]
	if !ok {
		return loadout.Parameters{}, false
	}
	return cd.Parameters.Clone(), true
}

// StatOrderFor returns the saved stat order for a class, or the hard default
// when none is saved.
func (s *Settings) StatOrderFor(class loadout.Class) []loadout.Hash {
	if s != nil && s.ClassDefaults != nil {
		if cd, ok := s.ClassDefaults[class.String()]; ok && len(cd.StatOrder) > 0 {
			return append([]loadout.Hash(nil), cd.StatOrder...)
		}
	}
	return loadout.DefaultStatOrder()
}

// SetClassDefaults records preferences for a class.
func (s *Settings) SetClassDefaults(class loadout.Class, cd ClassDefaults) {
	if s.ClassDefaults == nil {
		s.ClassDefaults = make(map[string]ClassDefaults)
	}
	s.ClassDefaults[class.String()] = cd
}

// LoadSettings reads the settings file. A missing file is not an error; it
// yields empty settings. A corrupt file is reported, also with empty
// settings, so a bad edit never bricks the tool.
func LoadSettings(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Settings{}, nil
	}
	if err != nil {
		return &Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return &Settings{}, fmt.Errorf("settings file is not valid JSON")
	}
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return &Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return &s, nil
}

// SaveSettings writes s to path, creating the directory if needed. Keys the
// current build doesn't know about are left untouched in the file.
func SaveSettings(path string, s *Settings) error {
	raw, err := os.ReadFile(path)
	if err != nil || !gjson.ValidBytes(raw) {
		raw = []byte("{}")
	}

	raw, err = sjson.SetBytes(raw, "classDefaults", s.ClassDefaults)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if len(s.Characters) > 0 {
		raw, err = sjson.SetBytes(raw, "characters", s.Characters)
	} else {
		raw, err = sjson.DeleteBytes(raw, "characters")
	}
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if s.ManifestPath != "" {
		raw, err = sjson.SetBytes(raw, "manifestPath", s.ManifestPath)
	} else {
		raw, err = sjson.DeleteBytes(raw, "manifestPath")
	}
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
