// Package cli implements the cobra command tree for pbxgen.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pbxgen/internal/config"
	"github.com/hupe1980/pbxgen/internal/logging"
)

// Process exit codes.
const (
	exitGeneric   = 1
	exitUsage     = 2
	exitManifest  = 3
	exitContract  = 4
	exitWrite     = 6
	exitInvalid   = 7
	exitDiffFound = 8
)

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Execute builds the command tree, runs it, and returns the exit code.
func Execute() int {
	cmd := NewRootCommand()

	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}

		return exitGeneric
	}

	return 0
}

// NewRootCommand constructs the top-level cobra.Command with all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "pbxgen",
		Short: "Generate Xcode project files from a declarative manifest",
		Long: `pbxgen generates Xcode project files (project.pbxproj) from a small
YAML, TOML or JSON manifest describing targets, sources, dependencies and
build settings.

The generated document is deterministic: the same manifest always
produces byte-identical output, so project files can be regenerated
instead of merged.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return &ExitError{Code: exitUsage, Err: err}
			}

			logger := logging.SetupWithWriter(cfg, cmd.ErrOrStderr())

			ctx := cmd.Context()
			ctx = config.NewContext(ctx, cfg)
			ctx = logging.NewContext(ctx, logger)
			cmd.SetContext(ctx)

			logger.Debug("configuration loaded",
				slog.String("logLevel", cfg.LogLevel),
				slog.String("logFormat", cfg.LogFormat),
				slog.String("configFile", cfg.ConfigFile),
			)

			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .pbxgen.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json, pretty")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: exitUsage, Err: err}
	})

	cmd.AddCommand(
		newVersionCommand(),
		newGenerateCommand(),
		newValidateCommand(),
		newInspectCommand(),
		newDiffCommand(),
		newGraphCommand(),
		newWatchCommand(),
		newCompletionCommand(),
	)

	return cmd
}
