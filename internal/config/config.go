package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/shelfscribe/internal/util"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "shelfscribe", "config.yml")
}

// Path resolves the config file to use: the explicit path if given, then
// SHELFSCRIBE_CONFIG, then DefaultPath.
func Path(explicit string) string {
	if explicit != "" {
		return util.ExpandHome(explicit)
	}
	if p := os.Getenv("SHELFSCRIBE_CONFIG"); p != "" {
		return util.ExpandHome(p)
	}
	return DefaultPath()
}

// Load reads the config from disk and the environment. A missing file is not
// an error; every key has a default.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("storage.backend", "diskv")
	v.SetDefault("storage.dir", defaultDataDir())
	v.SetDefault("grid.columns", 15)
	v.SetDefault("grid.rows", 5)
	v.SetDefault("grid.short_columns", "8:1,3-7:4")
	v.SetDefault("grid.show_all", false)
	v.SetDefault("flash.updated", "1500ms")
	v.SetDefault("flash.deleted", "300ms")
	v.SetDefault("editor.close_behavior", "commit")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(defaultDataDir(), "shelfscribe.log"))

	v.SetEnvPrefix("SHELFSCRIBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(Path(path))

	if err := v.ReadInConfig(); err != nil {
		// Running without a config file is the normal case.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Storage.Dir = util.ExpandHome(cfg.Storage.Dir)
	cfg.Log.File = util.ExpandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Encode(f, cfg)
}

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "shelfscribe")
}
