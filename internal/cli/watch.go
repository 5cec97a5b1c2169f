package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pbxgen/internal/config"
	"github.com/hupe1980/pbxgen/internal/generator"
	"github.com/hupe1980/pbxgen/internal/logging"
	"github.com/hupe1980/pbxgen/internal/output"
	"github.com/hupe1980/pbxgen/internal/watch"
)

type watchOptions struct {
	output   string
	debounce time.Duration
	validate bool
}

func newWatchCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <manifest>",
		Short: "Regenerate the document whenever the manifest changes",
		Long: `Watch monitors a manifest (and the config file, when one is in use)
and regenerates the document each time it changes.

File changes are debounced to avoid rapid re-runs. The document is only
rewritten when its content changes. Use --validate (enabled by default)
to run the integrity check after each generation.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManifest,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file or .xcodeproj directory (required)")
	f.DurationVar(&opts.debounce, "debounce", watch.DefaultOptions().Debounce, "debounce interval for file changes")
	f.BoolVar(&opts.validate, "validate", true, "run the integrity check after each generation")
	registerGenerationFlags(cmd)
	registerOutputCompletion(cmd)

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, manifestPath string, opts *watchOptions) error {
	if opts.output == "" {
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("--output (-o) is required for watch mode")}
	}

	cfg := config.FromContext(ctx)
	logger := logging.FromContext(ctx)
	target := documentPath(opts.output)

	var last *generator.Result

	runFn := func(fnCtx context.Context) (*watch.RunResult, error) {
		res, err := runGenerationWith(fnCtx, manifestPath, false)
		if err != nil {
			return nil, err
		}

		last = res

		changed, err := writeIfChanged(target, res.Output)
		if err != nil {
			return nil, err
		}

		return &watch.RunResult{
			Objects:    res.Objects,
			OutputPath: target,
			Changed:    changed,
		}, nil
	}

	validateFn := func(_ context.Context, _ string) error {
		if last == nil {
			return nil
		}

		result := output.Validate(last.Document.Root)
		if result.HasErrors() {
			return fmt.Errorf("validation failed with %d error(s)", len(result.Errors()))
		}

		return nil
	}

	files := []string{manifestPath}
	if cfg.ConfigFile != "" {
		files = append(files, cfg.ConfigFile)
	}

	watchOpts := watch.Options{
		Files:      files,
		Debounce:   opts.debounce,
		Validate:   opts.validate,
		ValidateFn: validateFn,
		Logger:     logger,
		Out:        cmd.ErrOrStderr(),
	}

	return watch.Run(ctx, watchOpts, runFn)
}

// writeIfChanged writes data to path unless the file already holds it.
// Rewrites are expected in watch mode, so the writer does not warn.
func writeIfChanged(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path) //nolint:gosec // user-provided path
	if err == nil && bytes.Equal(bytes.TrimSuffix(existing, []byte("\n")), bytes.TrimSuffix(data, []byte("\n"))) {
		return false, nil
	}

	w := output.NewFileWriter(path, output.WithLogger(logging.Discard()))
	if err := w.Write(data); err != nil {
		return false, fmt.Errorf("writing output: %w", err)
	}

	return true, nil
}
