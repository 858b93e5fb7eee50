package config

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Families lists patterns of enabled built-in families: "*" for all,
	// "prefix*" or an exact family name. Empty enables all.
	Families []string `yaml:"families,omitempty" json:"families,omitempty"`
	// NameMap replaces the default source-to-target distribution name table.
	NameMap map[string]string `yaml:"nameMap,omitempty" json:"nameMap,omitempty"`
	// ParamMap replaces the default parameter translation table, keyed by
	// target family then source parameter name.
	ParamMap map[string]map[string]string `yaml:"paramMap,omitempty" json:"paramMap,omitempty"`
}

// Load downloads and parses a configuration file from any afs supported URL.
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", URL, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", URL, err)
	}
	return cfg, nil
}

// Parse decodes YAML or JSON configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	ret := &Config{}
	if c.Families != nil {
		ret.Families = append([]string{}, c.Families...)
	}
	if c.NameMap != nil {
		ret.NameMap = make(map[string]string, len(c.NameMap))
		for k, v := range c.NameMap {
			ret.NameMap[k] = v
		}
	}
	if c.ParamMap != nil {
		ret.ParamMap = make(map[string]map[string]string, len(c.ParamMap))
		for family, params := range c.ParamMap {
			var inner map[string]string
			if params != nil {
				inner = make(map[string]string, len(params))
				for k, v := range params {
					inner[k] = v
				}
			}
			ret.ParamMap[family] = inner
		}
	}
	return ret
}

// Validate checks that every table entry names a target.
func (c *Config) Validate() error {
	for _, pattern := range c.Families {
		if pattern == "" {
			return fmt.Errorf("families: empty pattern")
		}
	}
	for source, target := range c.NameMap {
		if source == "" || target == "" {
			return fmt.Errorf("nameMap: invalid entry %q: %q", source, target)
		}
	}
	for family, params := range c.ParamMap {
		if family == "" {
			return fmt.Errorf("paramMap: empty family name")
		}
		for source, target := range params {
			if source == "" || target == "" {
				return fmt.Errorf("paramMap[%v]: invalid entry %q: %q", family, source, target)
			}
		}
	}
	return nil
}
