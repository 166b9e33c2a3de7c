// Package config loads tool configuration from an optional YAML file with
// environment overrides. The API key is deliberately not part of the file; it
// comes from the environment only.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Heatmap HeatmapConfig `mapstructure:"heatmap"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Output  OutputConfig  `mapstructure:"output"`
}

// APIConfig points at the analysis/metadata service.
type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	IndexID      string        `mapstructure:"index_id"`
	Timeout      time.Duration `mapstructure:"timeout"`
	AllowedHosts []string      `mapstructure:"allowed_hosts"`
}

type HeatmapConfig struct {
	Buckets int `mapstructure:"buckets"`
}

// CacheConfig selects the event cache: Redis when RedisAddr is set, local
// JSON files under Dir otherwise.
type CacheConfig struct {
	Dir       string        `mapstructure:"dir"`
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads the config file at path (optional: empty path uses defaults and
// environment only) and applies CREATOR_DISCOVERY_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CREATOR_DISCOVERY")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://api.twelvelabs.io")
	v.SetDefault("api.timeout", "90s")

	v.SetDefault("heatmap.buckets", 50)

	v.SetDefault("cache.dir", ".cache")
	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("output.dir", "out")
}

// Validate checks the values that cannot be repaired at use sites.
func (c *Config) Validate() error {
	if c.API.IndexID == "" {
		return fmt.Errorf("api.index_id is required")
	}
	if c.Heatmap.Buckets <= 0 {
		return fmt.Errorf("heatmap.buckets must be > 0")
	}
	if c.Cache.Dir == "" && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.dir is required when cache.redis_addr is unset")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	return nil
}
