package config

import (
	"fmt"

	"github.com/yndnr/endpointauth-go/internal/infra/confloader"
)

// Load layers defaults, the YAML file at path (optional), environment
// variables and overrides, then verifies the result. Override keys are
// dotted, e.g. "auth.policy".
func Load(path string, overrides map[string]any) (*ServerConfig, error) {
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithKnownKeys(Keys()...),
	)

	if err := loader.LoadMap(DefaultMap()); err != nil {
		return nil, err
	}

	cfg := &ServerConfig{}
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal overrides: %w", err)
		}
	}

	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
