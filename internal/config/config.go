// Package config loads the YAML settings shared by the blockfall commands.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"svw.info/blockfall/internal/domain"
)

type Config struct {
	Dimension domain.Dimension `yaml:"dimension"`
	Search    SearchConfig     `yaml:"search"`
	Server    ServerConfig     `yaml:"server"`
	LogLevel  string           `yaml:"log_level"`
	Seed      int64            `yaml:"seed"`
}

type SearchConfig struct {
	MinScore int `yaml:"min_score"`
	MaxMoves int `yaml:"max_moves"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	ScenarioDir string `yaml:"scenario_dir"`
	// TraceDir enables the turn trace log when set.
	TraceDir string `yaml:"trace_dir"`
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() Config {
	return Config{
		Dimension: domain.Dimension{Rows: 10, Columns: 8},
		Search:    SearchConfig{MinScore: 100, MaxMoves: 10},
		Server:    ServerConfig{Addr: ":8080", ScenarioDir: "./data"},
		LogLevel:  "info",
	}
}

func (c *Config) Normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.Server.Addr = strings.TrimSpace(c.Server.Addr)
	c.Server.ScenarioDir = strings.TrimSpace(c.Server.ScenarioDir)
	c.Server.TraceDir = strings.TrimSpace(c.Server.TraceDir)
}

func (c Config) Validate() error {
	if !c.Dimension.Valid() {
		return fmt.Errorf("dimension %s: need 2..%d rows and 2..%d columns", c.Dimension, domain.MaxRows, domain.MaxColumns)
	}
	if c.Search.MinScore < 0 {
		return errors.New("search.min_score must be non-negative")
	}
	if c.Search.MaxMoves < 0 {
		return errors.New("search.max_moves must be non-negative")
	}
	if _, ok := levels[c.LogLevel]; !ok {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	if l, ok := levels[strings.ToLower(c.LogLevel)]; ok {
		return l
	}
	return slog.LevelInfo
}

// Target is the search target configured for new scenarios.
func (c Config) Target() domain.Target {
	return domain.Target{MinScore: c.Search.MinScore, MaxMoves: c.Search.MaxMoves}
}
