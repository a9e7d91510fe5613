// Package config loads fitplan settings from an optional config file,
// FITPLAN_* environment variables and built-in defaults.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the client.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Refresh RefreshConfig `mapstructure:"refresh"`
	Layout  LayoutConfig  `mapstructure:"layout"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Store   StoreConfig   `mapstructure:"store"`
	Log     LogConfig     `mapstructure:"log"`
	Plan    PlanConfig    `mapstructure:"plan"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RefreshConfig controls the debounced catalog refresh.
type RefreshConfig struct {
	Window  time.Duration `mapstructure:"window"`
	Enabled bool          `mapstructure:"enabled"`
}

// LayoutConfig controls option chip ordering.
type LayoutConfig struct {
	Shuffle bool   `mapstructure:"shuffle"`
	Seed    uint64 `mapstructure:"seed"`
}

type CacheConfig struct {
	SizeMB int           `mapstructure:"size_mb"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type StoreConfig struct {
	// Path is the SQLite file. Empty means store.DefaultDBPath.
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	JSON   bool   `mapstructure:"json"`
	Stdout bool   `mapstructure:"stdout"`
}

// PlanConfig controls the dashboard.
type PlanConfig struct {
	// GenerateOnOpen asks the backend for a plan when none exists yet,
	// instead of offering the generate action.
	GenerateOnOpen bool `mapstructure:"generate_on_open"`
}

// DefaultBaseURL is where the backend listens during local development.
const DefaultBaseURL = "http://localhost:5002/api"

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("refresh.window", "3s")
	v.SetDefault("refresh.enabled", true)
	v.SetDefault("layout.shuffle", false)
	v.SetDefault("layout.seed", 1)
	v.SetDefault("cache.size_mb", 4)
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("store.path", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.stdout", false)
	v.SetDefault("plan.generate_on_open", false)
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	cfg, _ := Load("")
	return cfg
}

// Load reads configuration. When file is empty, fitplan.yaml is looked up
// in the working directory and $XDG_CONFIG_HOME/fitplan; a missing file is
// not an error. Environment variables such as FITPLAN_API_BASE_URL take
// precedence over the file.
func Load(file string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("fitplan")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("fitplan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func configDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "fitplan")
}
