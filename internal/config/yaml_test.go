package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshalYAMLIsLoadable(t *testing.T) {
	cfg, err := New(
		[]ModelID{ModelPerplexity, ModelGPT},
		WithChairman(ModelPerplexity),
		WithModel(ModelPerplexity, NewModelConfig(true, "sonar-reasoning", WithTimeout(45))),
	)
	require.NoError(t, err)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.Contains(t, string(out), "chairman_model: perplexity")

	path := filepath.Join(t.TempDir(), "mldr.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o644))

	settings, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.PrimaryModels(), settings.Config.PrimaryModels())
	require.Equal(t, cfg.ChairmanModel(), settings.Config.ChairmanModel())
	for _, id := range AllModelIDs() {
		want, _ := cfg.ModelConfig(id)
		got, _ := settings.Config.ModelConfig(id)
		require.Equal(t, *want, *got, id)
	}
}
