package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KeitaTsushima/multi-llm-deep-research/internal/config"
)

// NewModelsCmd lists every supported backend with its settings and key variable.
func NewModelsCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List supported model backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(opts)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, opts, settings)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck // best-effort

			source := settings.Source
			if source == "" {
				source = "built-in defaults"
			}
			logger.Debug("loaded config", zap.String("source", source))

			cfg := settings.Config
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tMODEL\tSTATUS\tTIMEOUT\tAPI KEY VAR")
			for _, id := range config.AllModelIDs() {
				mc, err := cfg.ModelConfig(id)
				if err != nil {
					return err
				}
				envVar, err := config.EnvVarName(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%ds\t%s\n", id, mc.ModelName, enabledLabel(mc.Enabled), mc.TimeoutSec, envVar)
			}
			return tw.Flush()
		},
	}
}
