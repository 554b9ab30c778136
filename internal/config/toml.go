package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/slotlog/internal/duration"
	apperrors "github.com/verte-zerg/slotlog/internal/errors"
	"github.com/verte-zerg/slotlog/internal/model"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
	Display  DisplayConfig  `toml:"display"`
	Template TemplateConfig `toml:"template"`
}

// StorageConfig selects where history is persisted.
type StorageConfig struct {
	Backend *string `toml:"backend"`
	Path    *string `toml:"path"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Debug *bool   `toml:"debug"`
	Level *string `toml:"level"`
}

// DisplayConfig maps rendering settings.
type DisplayConfig struct {
	Color    *bool `toml:"color"`
	BarWidth *int  `toml:"bar-width"`
}

// TemplateConfig seeds the slot template on first run.
type TemplateConfig struct {
	Slots []TemplateSlot `toml:"slots"`
}

// TemplateSlot is one seeded slot; Target uses HH:MM:SS.
type TemplateSlot struct {
	Label  string `toml:"label"`
	Target string `toml:"target"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// SeedTemplate returns the configured template, or the built-in default
// when none is configured. Slot ids are assigned in file order from 1.
func (c FileConfig) SeedTemplate() (model.DaySet, error) {
	if len(c.Template.Slots) == 0 {
		return model.DefaultTemplate(), nil
	}
	slots := make([]model.Slot, 0, len(c.Template.Slots))
	for i, ts := range c.Template.Slots {
		if strings.TrimSpace(ts.Label) == "" {
			return model.DaySet{}, fmt.Errorf("template slot %d: %w", i+1, apperrors.NewValidation("slot label is required"))
		}
		target := model.DefaultTargetSeconds
		if ts.Target != "" {
			v, err := duration.ParseClock(ts.Target)
			if err != nil {
				return model.DaySet{}, fmt.Errorf("template slot %d: %w", i+1, err)
			}
			target = v
		}
		slots = append(slots, model.Slot{ID: int64(i + 1), Label: ts.Label, TargetSeconds: target})
	}
	return model.NewDaySet(slots)
}
