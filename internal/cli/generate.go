package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pbxgen/internal/logging"
	"github.com/hupe1980/pbxgen/internal/output"
)

// pbxprojName is the document file inside an .xcodeproj bundle.
const pbxprojName = "project.pbxproj"

type generateOptions struct {
	output string
	format string
	dryRun bool
}

func newGenerateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <manifest>",
		Short: "Generate a project document from a manifest",
		Long: `Generate reads a project manifest and writes the corresponding
project.pbxproj document.

The output path may name the document itself or an .xcodeproj bundle, in
which case project.pbxproj is written inside it. Without --output the
document is printed to stdout.

Exit codes:
  0  Success
  1  Error
  2  Invalid arguments or configuration
  3  Manifest could not be read or is invalid
  4  Object graph violated the serialization contract
  6  Output could not be written`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManifest,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file or .xcodeproj directory (default: stdout)")
	f.StringVar(&opts.format, "format", output.FormatPBXProj, "output format: pbxproj, json, yaml, dot")
	f.BoolVar(&opts.dryRun, "dry-run", false, "generate without writing, print a summary")
	registerGenerationFlags(cmd)
	registerOutputCompletion(cmd)

	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, manifestPath string, opts *generateOptions) error {
	logger := logging.FromContext(ctx)

	encoder, err := output.DefaultRegistry().Encoder(opts.format)
	if err != nil {
		return &ExitError{Code: exitUsage, Err: err}
	}

	res, err := runGeneration(ctx, manifestPath)
	if err != nil {
		return err
	}

	data := res.Output
	if opts.format != output.FormatPBXProj {
		data, err = encoder(res.Document)
		if err != nil {
			return &ExitError{Code: exitGeneric, Err: fmt.Errorf("encoding %s: %w", opts.format, err)}
		}
	}

	target := documentPath(opts.output)

	if opts.dryRun {
		dest := target
		if dest == "" {
			dest = "stdout"
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dry run: %d objects, %d bytes would be written to %s\n",
			res.Objects, len(data), dest)

		return nil
	}

	var w output.Writer = output.NewStdoutWriter(cmd.OutOrStdout())
	if target != "" {
		w = output.NewFileWriter(target, output.WithLogger(logger))
	}

	if err := w.Write(data); err != nil {
		return &ExitError{Code: exitWrite, Err: fmt.Errorf("writing output: %w", err)}
	}

	if target != "" {
		logger.Info("wrote document", slog.String("path", target), slog.Int("objects", res.Objects))
	}

	return nil
}

// documentPath resolves an --output value: an .xcodeproj bundle means the
// project.pbxproj inside it, "-" means stdout.
func documentPath(out string) string {
	switch {
	case out == "" || out == "-":
		return ""
	case strings.HasSuffix(filepath.Clean(out), ".xcodeproj"):
		return filepath.Join(out, pbxprojName)
	default:
		return out
	}
}
