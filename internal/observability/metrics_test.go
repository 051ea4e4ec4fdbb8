package observability

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/KeitaTsushima/multi-llm-deep-research/internal/config"
	"github.com/KeitaTsushima/multi-llm-deep-research/internal/roster"
)

func TestObserveConfig(t *testing.T) {
	m := NewMetrics()
	cfg := config.Default()
	m.ObserveConfig(cfg, map[config.ModelID]string{config.ModelClaude: "sk"})

	require.Equal(t, float64(1), testutil.ToFloat64(m.ModelEnabled.WithLabelValues("gpt")))
	require.Equal(t, float64(0), testutil.ToFloat64(m.ModelEnabled.WithLabelValues("grok")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.ModelPrimary.WithLabelValues("claude")))
	require.Equal(t, float64(0), testutil.ToFloat64(m.ModelPrimary.WithLabelValues("gemini")))
	require.Equal(t, float64(600), testutil.ToFloat64(m.ModelTimeout.WithLabelValues("perplexity")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.CredentialSet.WithLabelValues("claude")))
	require.Equal(t, float64(0), testutil.ToFloat64(m.CredentialSet.WithLabelValues("gpt")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.Chairman.WithLabelValues("gpt")))
}

func TestObserveRoster(t *testing.T) {
	m := NewMetrics()
	r, err := roster.Build(config.Default(), map[config.ModelID]string{config.ModelGPT: "sk"})
	require.NoError(t, err)

	m.ObserveRoster(r)
	require.Equal(t, float64(1), testutil.ToFloat64(m.RosterIssues.WithLabelValues("missing_credential")))
	require.Equal(t, float64(0), testutil.ToFloat64(m.RosterIssues.WithLabelValues("disabled")))
}

func TestWriteText(t *testing.T) {
	m := NewMetrics()
	m.ObserveConfig(config.Default(), nil)
	m.RecordLoadError("")

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))
	require.Contains(t, buf.String(), `mldr_model_enabled{model="gpt"} 1`)
	require.Contains(t, buf.String(), `mldr_config_load_errors_total{reason="unknown"} 1`)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveConfig(config.Default(), nil)
	m.ObserveRoster(nil)
	m.RecordLoadError("x")
}
