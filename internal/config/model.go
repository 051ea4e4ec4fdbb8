package config

import (
	"fmt"
	"strings"
)

// ModelID names one of the supported model backends.
type ModelID string

const (
	ModelGPT        ModelID = "gpt"
	ModelClaude     ModelID = "claude"
	ModelGemini     ModelID = "gemini"
	ModelPerplexity ModelID = "perplexity"
	ModelGrok       ModelID = "grok"
)

// DefaultTimeoutSec is applied to a ModelConfig built without an explicit timeout.
const DefaultTimeoutSec = 600

var knownModels = []ModelID{ModelGPT, ModelClaude, ModelGemini, ModelPerplexity, ModelGrok}

// AllModelIDs returns every supported backend identifier in declaration order.
func AllModelIDs() []ModelID {
	return append([]ModelID(nil), knownModels...)
}

// Valid reports whether id is one of the supported backends.
func (id ModelID) Valid() bool {
	switch id {
	case ModelGPT, ModelClaude, ModelGemini, ModelPerplexity, ModelGrok:
		return true
	default:
		return false
	}
}

func (id ModelID) String() string {
	return string(id)
}

// ParseModelID converts untrusted input (flags, files, env) into a ModelID.
func ParseModelID(s string) (ModelID, error) {
	id := ModelID(strings.ToLower(strings.TrimSpace(s)))
	if !id.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
	}
	return id, nil
}

// ModelConfig holds the per-backend settings.
type ModelConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	ModelName  string `mapstructure:"model_name" yaml:"model_name"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// ModelOption customises a ModelConfig built by NewModelConfig.
type ModelOption func(*ModelConfig)

// WithTimeout overrides the default request timeout in seconds.
func WithTimeout(sec int) ModelOption {
	return func(m *ModelConfig) {
		m.TimeoutSec = sec
	}
}

// NewModelConfig returns a ModelConfig with DefaultTimeoutSec unless overridden.
func NewModelConfig(enabled bool, modelName string, opts ...ModelOption) ModelConfig {
	m := ModelConfig{
		Enabled:    enabled,
		ModelName:  modelName,
		TimeoutSec: DefaultTimeoutSec,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// defaultModelConfig returns the built-in settings for a backend.
func defaultModelConfig(id ModelID) ModelConfig {
	switch id {
	case ModelGPT:
		return NewModelConfig(true, "gpt-4o")
	case ModelClaude:
		return NewModelConfig(true, "claude-sonnet-4-20250514")
	case ModelGemini:
		return NewModelConfig(false, "gemini-1.5-pro")
	case ModelPerplexity:
		return NewModelConfig(false, "sonar-pro")
	case ModelGrok:
		return NewModelConfig(false, "grok-2")
	default:
		return ModelConfig{}
	}
}
