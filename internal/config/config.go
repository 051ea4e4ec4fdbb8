package config

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidConfig is wrapped by every validation failure raised while building a Config.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnknownModel is wrapped when an identifier outside the supported set is used.
	ErrUnknownModel = errors.New("unknown model_id")
)

// Config is the validated pipeline configuration: which backends run, which one
// chairs, and the settings of every supported backend.
//
// A Config can only be obtained through New (or Default), so a value in hand has
// always passed Validate.
type Config struct {
	primaryModels []ModelID
	chairmanModel ModelID

	gpt        *ModelConfig
	claude     *ModelConfig
	gemini     *ModelConfig
	perplexity *ModelConfig
	grok       *ModelConfig

	invalid []ModelID
}

// Option customises a Config built by New.
type Option func(*Config)

// WithChairman selects the chairman model. Defaults to ModelGPT.
func WithChairman(id ModelID) Option {
	return func(c *Config) {
		c.chairmanModel = id
	}
}

// WithModel replaces the settings of a single backend. Unknown identifiers are
// reported by New.
func WithModel(id ModelID, mc ModelConfig) Option {
	return func(c *Config) {
		if slot := c.slot(id); slot != nil {
			m := mc
			*slot = &m
			return
		}
		c.invalid = append(c.invalid, id)
	}
}

// New builds a Config and validates it. The primary list is copied.
func New(primary []ModelID, opts ...Option) (*Config, error) {
	c := &Config{
		primaryModels: append([]ModelID(nil), primary...),
		chairmanModel: ModelGPT,
	}
	for _, id := range knownModels {
		mc := defaultModelConfig(id)
		*c.slot(id) = &mc
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns a fresh Config with GPT and Claude as primaries and GPT as chairman.
func Default() *Config {
	cfg, err := New([]ModelID{ModelGPT, ModelClaude})
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

// Validate checks the selection invariants.
func (c *Config) Validate() error {
	if len(c.primaryModels) == 0 {
		return fmt.Errorf("%w: primary_models must contain at least one model", ErrInvalidConfig)
	}
	if !slices.Contains(c.primaryModels, c.chairmanModel) {
		return fmt.Errorf("%w: chairman_model=%q must be included in primary_models=%v",
			ErrInvalidConfig, c.chairmanModel, c.primaryModels)
	}
	for _, id := range c.primaryModels {
		if !id.Valid() {
			return fmt.Errorf("%w: primary_models references %w %q", ErrInvalidConfig, ErrUnknownModel, id)
		}
	}
	if len(c.invalid) > 0 {
		return fmt.Errorf("%w: model settings given for %w %q", ErrInvalidConfig, ErrUnknownModel, c.invalid[0])
	}
	return nil
}

// PrimaryModels returns a copy of the ordered primary selection.
func (c *Config) PrimaryModels() []ModelID {
	return append([]ModelID(nil), c.primaryModels...)
}

// ChairmanModel returns the backend that arbitrates among the primaries.
func (c *Config) ChairmanModel() ModelID {
	return c.chairmanModel
}

// ModelConfig returns the stored settings for id.
func (c *Config) ModelConfig(id ModelID) (*ModelConfig, error) {
	slot := c.slot(id)
	if slot == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownModel, id)
	}
	return *slot, nil
}

func (c *Config) GPT() *ModelConfig        { return c.gpt }
func (c *Config) Claude() *ModelConfig     { return c.claude }
func (c *Config) Gemini() *ModelConfig     { return c.gemini }
func (c *Config) Perplexity() *ModelConfig { return c.perplexity }
func (c *Config) Grok() *ModelConfig       { return c.grok }

// slot maps an identifier onto its field; nil for anything outside the known set.
func (c *Config) slot(id ModelID) **ModelConfig {
	switch id {
	case ModelGPT:
		return &c.gpt
	case ModelClaude:
		return &c.claude
	case ModelGemini:
		return &c.gemini
	case ModelPerplexity:
		return &c.perplexity
	case ModelGrok:
		return &c.grok
	default:
		return nil
	}
}
