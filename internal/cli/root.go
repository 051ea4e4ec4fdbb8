package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KeitaTsushima/multi-llm-deep-research/internal/config"
	"github.com/KeitaTsushima/multi-llm-deep-research/internal/logging"
	"github.com/KeitaTsushima/multi-llm-deep-research/internal/version"
)

// Options holds global CLI options.
type Options struct {
	ConfigPath string
	EnvFiles   []string
	LogLevel   string
	LogFormat  string
}

// NewRootCmd constructs the base CLI command tree.
func NewRootCmd() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:           "mldr",
		Short:         "mldr – multi-LLM deep research configuration tool",
		Version:       version.Full(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "Path to config file (default: ./mldr.yaml or configs/mldr.yaml)")
	flags.StringSliceVar(&opts.EnvFiles, "env-file", nil, "Dotenv file(s) consulted for API keys after the process environment")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")
	flags.StringVar(&opts.LogFormat, "log-format", "", "Override logging.format (console or json)")

	cmd.AddCommand(NewDoctorCmd(opts))
	cmd.AddCommand(NewModelsCmd(opts))
	cmd.AddCommand(NewConfigCmd(opts))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSettings wraps config loading with shared options.
func loadSettings(opts *Options) (*config.Settings, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return settings, nil
}

// loadKeys reads credentials from the environment and any --env-file.
func loadKeys(opts *Options) (map[config.ModelID]string, error) {
	if len(opts.EnvFiles) == 0 {
		return config.LoadAPIKeys(), nil
	}
	lookup, err := config.DotEnvLookup(opts.EnvFiles...)
	if err != nil {
		return nil, err
	}
	return config.LoadAPIKeysFrom(lookup), nil
}

// newLogger builds a logger on the command's stderr; flags win over the file.
func newLogger(cmd *cobra.Command, opts *Options, settings *config.Settings) (*zap.Logger, error) {
	level, format := settings.Logging.Level, settings.Logging.Format
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	if opts.LogFormat != "" {
		format = opts.LogFormat
	}
	return logging.NewLogger(level, format, cmd.ErrOrStderr())
}
