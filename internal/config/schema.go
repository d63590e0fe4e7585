package config

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/shelfscribe/internal/editor"
	"github.com/blackwell-systems/shelfscribe/internal/grid"
	"github.com/blackwell-systems/shelfscribe/internal/storage"
)

// Config is the top-level shelfscribe configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Grid    GridConfig    `mapstructure:"grid" yaml:"grid"`
	Flash   FlashConfig   `mapstructure:"flash" yaml:"flash"`
	Editor  EditorConfig  `mapstructure:"editor" yaml:"editor"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// StorageConfig selects where shelf data lives.
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"` // diskv, sqlite or bolt
	Dir     string `mapstructure:"dir" yaml:"dir"`
}

// GridConfig describes the physical shelf.
type GridConfig struct {
	Columns      int    `mapstructure:"columns" yaml:"columns"`
	Rows         int    `mapstructure:"rows" yaml:"rows"`
	ShortColumns string `mapstructure:"short_columns" yaml:"short_columns"` // e.g. "8:1,3-7:4"
	ShowAll      bool   `mapstructure:"show_all" yaml:"show_all"`
}

// FlashConfig holds how long cell highlights last.
type FlashConfig struct {
	Updated time.Duration `mapstructure:"updated" yaml:"updated"`
	Deleted time.Duration `mapstructure:"deleted" yaml:"deleted"`
}

// EditorConfig controls the cell editor.
type EditorConfig struct {
	CloseBehavior string `mapstructure:"close_behavior" yaml:"close_behavior"` // commit or discard
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Layout returns the grid layout described by the config.
func (c *Config) Layout() (grid.Layout, error) {
	short, err := grid.ParseOverrides(c.Grid.ShortColumns)
	if err != nil {
		return grid.Layout{}, err
	}
	l := grid.Layout{Columns: c.Grid.Columns, Rows: c.Grid.Rows, Short: short}
	if err := l.Validate(); err != nil {
		return grid.Layout{}, err
	}
	return l, nil
}

// CloseBehavior returns the parsed editor close policy.
func (c *Config) CloseBehavior() (editor.CloseBehavior, error) {
	return editor.ParseCloseBehavior(c.Editor.CloseBehavior)
}

// Validate checks every field that has a fixed set of values.
func (c *Config) Validate() error {
	if _, err := c.Layout(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if _, err := c.CloseBehavior(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	known := false
	for _, k := range storage.Kinds() {
		if c.Storage.Backend == k {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("storage: unknown backend %q", c.Storage.Backend)
	}
	if c.Flash.Updated < 0 {
		return fmt.Errorf("flash: updated must not be negative")
	}
	return nil
}
