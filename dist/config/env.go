package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env lists environment variables recognised by FromEnv.
type Env struct {
	ConfigURL string            `env:"DISTLOAD_CONFIG_URL"`
	Families  []string          `env:"DISTLOAD_FAMILIES" envSeparator:","`
	NameMap   map[string]string `env:"DISTLOAD_NAME_MAP"`
}

// FromEnv loads the file referenced by DISTLOAD_CONFIG_URL, if any, and
// overlays families and name map entries set in the environment.
func FromEnv(ctx context.Context) (*Config, error) {
	return fromEnv(ctx, env.Options{})
}

func fromEnv(ctx context.Context, options env.Options) (*Config, error) {
	var vars Env
	if err := env.ParseWithOptions(&vars, options); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg := &Config{}
	if vars.ConfigURL != "" {
		var err error
		if cfg, err = Load(ctx, vars.ConfigURL); err != nil {
			return nil, err
		}
	}
	if len(vars.Families) > 0 {
		cfg.Families = vars.Families
	}
	if len(vars.NameMap) > 0 {
		if cfg.NameMap == nil {
			cfg.NameMap = map[string]string{}
		}
		for source, target := range vars.NameMap {
			cfg.NameMap[source] = target
		}
	}
	return cfg, nil
}
