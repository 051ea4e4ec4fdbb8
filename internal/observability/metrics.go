package observability

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/KeitaTsushima/multi-llm-deep-research/internal/config"
	"github.com/KeitaTsushima/multi-llm-deep-research/internal/roster"
)

// Metrics bundles Prometheus collectors describing the loaded configuration.
type Metrics struct {
	registry      *prometheus.Registry
	ModelEnabled  *prometheus.GaugeVec
	ModelPrimary  *prometheus.GaugeVec
	ModelTimeout  *prometheus.GaugeVec
	CredentialSet *prometheus.GaugeVec
	Chairman      *prometheus.GaugeVec
	RosterIssues  *prometheus.GaugeVec
	LoadErrors    *prometheus.CounterVec
}

// NewMetrics constructs a metrics registry with config collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	enabled := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mldr_model_enabled",
		Help: "Whether a backend is enabled (1) or disabled (0)",
	}, []string{"model"})

	primary := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mldr_model_primary",
		Help: "Whether a backend is selected as a primary model",
	}, []string{"model"})

	timeout := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mldr_model_timeout_seconds",
		Help: "Configured request timeout per backend",
	}, []string{"model"})

	creds := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mldr_model_credential_present",
		Help: "Whether an API key was found for a backend",
	}, []string{"model"})

	chairman := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mldr_chairman_model",
		Help: "Set to 1 for the backend acting as chairman",
	}, []string{"model"})

	issues := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mldr_roster_issues",
		Help: "Readiness issues among primary models by kind",
	}, []string{"kind"})

	loadErrs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mldr_config_load_errors_total",
		Help: "Configuration load failures by reason",
	}, []string{"reason"})

	reg.MustRegister(enabled, primary, timeout, creds, chairman, issues, loadErrs)

	return &Metrics{
		registry:      reg,
		ModelEnabled:  enabled,
		ModelPrimary:  primary,
		ModelTimeout:  timeout,
		CredentialSet: creds,
		Chairman:      chairman,
		RosterIssues:  issues,
		LoadErrors:    loadErrs,
	}
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveConfig records per-backend settings and credential presence.
func (m *Metrics) ObserveConfig(cfg *config.Config, keys map[config.ModelID]string) {
	if m == nil || cfg == nil {
		return
	}
	primary := make(map[config.ModelID]bool)
	for _, id := range cfg.PrimaryModels() {
		primary[id] = true
	}
	for _, id := range config.AllModelIDs() {
		mc, err := cfg.ModelConfig(id)
		if err != nil {
			continue
		}
		label := id.String()
		m.ModelEnabled.WithLabelValues(label).Set(boolGauge(mc.Enabled))
		m.ModelPrimary.WithLabelValues(label).Set(boolGauge(primary[id]))
		m.ModelTimeout.WithLabelValues(label).Set(float64(mc.TimeoutSec))
		m.CredentialSet.WithLabelValues(label).Set(boolGauge(keys[id] != ""))
		m.Chairman.WithLabelValues(label).Set(boolGauge(id == cfg.ChairmanModel()))
	}
}

// ObserveRoster records readiness issues by kind.
func (m *Metrics) ObserveRoster(r *roster.Roster) {
	if m == nil || r == nil {
		return
	}
	counts := map[roster.IssueKind]int{
		roster.IssueDisabled:          0,
		roster.IssueMissingCredential: 0,
	}
	for _, issue := range r.Issues() {
		counts[issue.Kind]++
	}
	for kind, n := range counts {
		m.RosterIssues.WithLabelValues(string(kind)).Set(float64(n))
	}
}

// RecordLoadError increments the load failure counter.
func (m *Metrics) RecordLoadError(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.LoadErrors.WithLabelValues(reason).Inc()
}

// WriteText writes all gathered metrics in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func boolGauge(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
