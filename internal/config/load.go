package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings is everything read from the config file: the validated pipeline
// Config plus ambient process settings.
type Settings struct {
	Config  *Config
	Logging LoggingConfig
	// Source is the file that was read; empty when only defaults and env applied.
	Source string
}

// LoggingConfig controls logger behaviour.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// PipelineConfig is the on-disk form of the backend selection.
type PipelineConfig struct {
	PrimaryModels []string `mapstructure:"primary_models" yaml:"primary_models"`
	ChairmanModel string   `mapstructure:"chairman_model" yaml:"chairman_model"`
}

type fileConfig struct {
	Pipeline PipelineConfig         `mapstructure:"pipeline"`
	Models   map[string]ModelConfig `mapstructure:"models"`
	Logging  LoggingConfig          `mapstructure:"logging"`
}

// Load reads configuration from the provided path or looks for mldr.yaml in the
// working directory and configs/. A missing file is fine when no path was given;
// built-in defaults then apply.
// Environment variables override file values (prefix: MLDR_, dots replaced with underscores).
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MLDR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		v.SetConfigName("mldr")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("configs")
	} else {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var raw fileConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg, err := raw.build()
	if err != nil {
		return nil, err
	}

	return &Settings{Config: cfg, Logging: raw.Logging, Source: v.ConfigFileUsed()}, nil
}

// setDefaults mirrors Default() so that a partial file only overrides what it names.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("pipeline.primary_models", []string{string(ModelGPT), string(ModelClaude)})
	v.SetDefault("pipeline.chairman_model", string(ModelGPT))

	for _, id := range knownModels {
		mc := defaultModelConfig(id)
		prefix := "models." + string(id) + "."
		v.SetDefault(prefix+"enabled", mc.Enabled)
		v.SetDefault(prefix+"model_name", mc.ModelName)
		v.SetDefault(prefix+"timeout_sec", mc.TimeoutSec)
	}
}

// build converts untrusted file values into a validated Config.
func (f fileConfig) build() (*Config, error) {
	primary := make([]ModelID, 0, len(f.Pipeline.PrimaryModels))
	for _, s := range f.Pipeline.PrimaryModels {
		id, err := ParseModelID(s)
		if err != nil {
			return nil, fmt.Errorf("pipeline.primary_models: %w", err)
		}
		primary = append(primary, id)
	}

	opts := make([]Option, 0, len(f.Models)+1)
	if strings.TrimSpace(f.Pipeline.ChairmanModel) != "" {
		id, err := ParseModelID(f.Pipeline.ChairmanModel)
		if err != nil {
			return nil, fmt.Errorf("pipeline.chairman_model: %w", err)
		}
		opts = append(opts, WithChairman(id))
	}

	for name, mc := range f.Models {
		id, err := ParseModelID(name)
		if err != nil {
			return nil, fmt.Errorf("models: %w", err)
		}
		if mc.TimeoutSec <= 0 {
			return nil, fmt.Errorf("%w: models.%s.timeout_sec must be > 0", ErrInvalidConfig, id)
		}
		opts = append(opts, WithModel(id, mc))
	}

	return New(primary, opts...)
}
