package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type AnimCfg struct {
	TickMS     int `yaml:"tick_ms"`     // scheduler tick interval, e.g. 8
	FPS        int `yaml:"fps"`         // per-animation target fps
	DurationMS int `yaml:"duration_ms"` // per-animation duration
}

type SimCfg struct {
	Items      int `yaml:"items"`
	ItemHeight int `yaml:"item_height"`
	Spacing    int `yaml:"spacing"`
	CycleMS    int `yaml:"cycle_ms"` // how often the conductor reflows
}

type Config struct {
	Addr     string  `yaml:"addr"`
	LogLevel string  `yaml:"log_level"`
	Anim     AnimCfg `yaml:"anim"`
	Sim      SimCfg  `yaml:"sim"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
