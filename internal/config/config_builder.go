package config

import (
	"errors"
	"fmt"
	"slices"

	"dario.cat/mergo"
)

// configBuilder collects partial configs in increasing precedence order and
// merges them in build. Zero-valued fields never override.
type configBuilder struct {
	configs []*StructuredConfig
	// jsonAt is the index the JSON config is inserted at, right above the
	// defaults, so that env and flags still win over the file.
	jsonAt int
	err    error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config, err := b.merge()
	if err != nil {
		return nil, err
	}

	return config, config.validate()
}

// merged returns the merged config without server validation.
func (b *configBuilder) merged() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}
	return b.merge()
}

func (b *configBuilder) merge() (*StructuredConfig, error) {
	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}
	return config, nil
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	b.jsonAt = len(b.configs)
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := ParseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

// withOverrides appends a config assembled by the caller, e.g. from cobra
// flags on the client.
func (b *configBuilder) withOverrides(cfg *StructuredConfig) *configBuilder {
	if cfg != nil {
		b.configs = append(b.configs, cfg)
	}
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = slices.Insert(b.configs, b.jsonAt, jsonCfg)
	return b
}
