package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/friomar/dispatch/core/dispatch"
	"github.com/friomar/dispatch/infra/mirror"
	"github.com/friomar/dispatch/infra/mqtt"
)

type Config struct {
	Store    StoreConfig     `json:"store"`
	MQTT     mqtt.Config     `json:"mqtt"`
	Dispatch dispatch.Config `json:"dispatch"`
	Mirror   mirror.Config   `json:"mirror"`
	Metrics  MetricsConfig   `json:"metrics"`
	Auto     AutoConfig      `json:"auto"`
}

// StoreConfig locates the system-of-record database.
type StoreConfig struct {
	Path string `json:"path"`
}

func (c *StoreConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "dispatch.db"
	}
}

// MetricsConfig selects the assignment metrics backends.
type MetricsConfig struct {
	PromEnabled bool   `json:"prom_enabled"`
	PromAddr    string `json:"prom_addr"`

	InfluxEnabled bool   `json:"influx_enabled"`
	InfluxURL     string `json:"influx_url"`
	InfluxToken   string `json:"influx_token"`
	InfluxOrg     string `json:"influx_org"`
	InfluxBucket  string `json:"influx_bucket"`
}

func (c *MetricsConfig) SetDefaults() {
	if c.PromAddr == "" {
		c.PromAddr = ":9090"
	}
}

// Validate checks mandatory fields.
func (c MetricsConfig) Validate() error {
	if c.InfluxEnabled && c.InfluxURL == "" {
		return fmt.Errorf("influx enabled without url")
	}
	return nil
}

// AutoConfig controls the periodic automatic assignment pass.
type AutoConfig struct {
	Enabled         bool `json:"enabled"`
	IntervalMinutes int  `json:"interval_minutes"`
}

func (c *AutoConfig) SetDefaults() {
	if c.IntervalMinutes <= 0 {
		c.IntervalMinutes = 15
	}
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("DISPATCH_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "dispatch_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Store.SetDefaults()
	cfg.Dispatch.SetDefaults()
	cfg.Mirror.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Auto.SetDefaults()
	if err := cfg.Dispatch.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
