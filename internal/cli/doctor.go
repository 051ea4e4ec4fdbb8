package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KeitaTsushima/multi-llm-deep-research/internal/observability"
	"github.com/KeitaTsushima/multi-llm-deep-research/internal/roster"
)

// NewDoctorCmd returns a health-check command validating config and credentials.
func NewDoctorCmd(opts *Options) *cobra.Command {
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration and check API keys for the primary models",
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics := observability.NewMetrics()

			settings, err := loadSettings(opts)
			if err != nil {
				metrics.RecordLoadError("config")
				return writeMetricsOnError(cmd, metrics, showMetrics, err)
			}

			logger, err := newLogger(cmd, opts, settings)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck // best-effort

			keys, err := loadKeys(opts)
			if err != nil {
				metrics.RecordLoadError("env_file")
				return writeMetricsOnError(cmd, metrics, showMetrics, err)
			}

			cfg := settings.Config
			r, err := roster.Build(cfg, keys)
			if err != nil {
				return err
			}
			metrics.ObserveConfig(cfg, keys)
			metrics.ObserveRoster(r)

			out := cmd.OutOrStdout()
			primary := make([]string, 0, len(cfg.PrimaryModels()))
			for _, id := range cfg.PrimaryModels() {
				primary = append(primary, id.String())
			}
			fmt.Fprintf(out, "Config OK. Primary: %s; chairman: %s\n", strings.Join(primary, ", "), cfg.ChairmanModel())

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, e := range r.Entries() {
				credential := "missing"
				if e.HasCredential() {
					credential = "set"
				}
				role := ""
				if e.Chairman {
					role = "chairman"
				}
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%ds\t%s=%s\t%s\n",
					e.ID, e.Model.ModelName, enabledLabel(e.Model.Enabled), e.Model.TimeoutSec, e.EnvVar, credential, role)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if showMetrics {
				if err := metrics.WriteText(out); err != nil {
					return err
				}
			}

			issues := r.Issues()
			for _, issue := range issues {
				logger.Warn("primary model not ready",
					zap.String("model", issue.ID.String()),
					zap.String("kind", string(issue.Kind)),
					zap.String("detail", issue.Message))
			}
			if len(issues) > 0 {
				return fmt.Errorf("%d readiness issue(s) among primary models", len(issues))
			}

			logger.Debug("all primary models ready", zap.Int("count", len(r.Entries())))
			fmt.Fprintln(out, "All primary models ready.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print config metrics in Prometheus text format")

	return cmd
}

// writeMetricsOnError still prints the exposition on early failures so the
// load error counter is visible with --metrics.
func writeMetricsOnError(cmd *cobra.Command, metrics *observability.Metrics, show bool, err error) error {
	if show {
		if werr := metrics.WriteText(cmd.OutOrStdout()); werr != nil {
			return errors.Join(err, werr)
		}
	}
	return err
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
