package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mkessler/graphlens/pkg/cache"
	"github.com/mkessler/graphlens/pkg/errors"
	"github.com/mkessler/graphlens/pkg/layout"
	"github.com/mkessler/graphlens/pkg/source/mongo"
)

// Config is the optional graphlens.toml configuration file. Flags override
// config values; config values override defaults.
type Config struct {
	// Source is the data provider base URL.
	Source string `toml:"source"`

	// Layout overrides individual force-simulation parameters.
	Layout layout.Config `toml:"layout"`

	Cache CacheConfig `toml:"cache"`
	Serve ServeConfig `toml:"serve"`
	Mongo mongo.Config `toml:"mongo"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is "file", "redis" or "none". Default: file.
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Default: ~/.cache/graphlens.
	Dir string `toml:"dir"`

	Redis cache.RedisConfig `toml:"redis"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	// Addr is the listen address. Default: ":8460".
	Addr string `toml:"addr"`
}

// defaultConfigPath returns ~/.config/graphlens/graphlens.toml.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "graphlens", "graphlens.toml")
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file yields a zero config, not an error.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = defaultConfigPath()
	}

	var cfg Config
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	return cfg, nil
}

// defaultCacheDir returns ~/.cache/graphlens.
func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".graphlens-cache"
	}
	return filepath.Join(home, ".cache", "graphlens")
}

// openCache builds the configured cache backend.
func openCache(ctx context.Context, cfg CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == "redis" {
		return cache.NewRedisCache(ctx, cfg.Redis)
	}
	dir := cfg.Dir
	if dir == "" {
		dir = defaultCacheDir()
	}
	return cache.NewFileCache(dir)
}
