package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pbxgen/internal/logging"
	"github.com/hupe1980/pbxgen/internal/output"
)

type graphOptions struct {
	output string
	format string
}

func newGraphCommand() *cobra.Command {
	opts := &graphOptions{}

	cmd := &cobra.Command{
		Use:   "graph <manifest>",
		Short: "Draw the object graph of a generated document",
		Long: `Graph draws the records of the generated document and the references
between them. Ownership edges are solid, plain references are dashed and
records that are referenced but never written are red.

Formats:
  dot  Graphviz source (default)
  svg  Rendered image`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManifest,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd.Context(), cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	f.StringVar(&opts.format, "format", "dot", "graph format: dot, svg")
	registerGenerationFlags(cmd)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats("dot", "svg"))
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"dot", "svg"}, cobra.ShellCompDirectiveFilterFileExt
	})

	return cmd
}

func runGraph(ctx context.Context, cmd *cobra.Command, manifestPath string, opts *graphOptions) error {
	if opts.format != "dot" && opts.format != "svg" {
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("unknown graph format %q: expected dot, svg", opts.format)}
	}

	// Dangling records are part of the picture, not a failure.
	res, err := runGenerationWith(ctx, manifestPath, false)
	if err != nil {
		return err
	}

	data := []byte(output.ToDOT(res.Document.Serializer, res.Document.RootID))

	if opts.format == "svg" {
		data, err = output.RenderSVG(ctx, string(data))
		if err != nil {
			return &ExitError{Code: exitGeneric, Err: err}
		}
	}

	logger := logging.FromContext(ctx)

	var w output.Writer = output.NewStdoutWriter(cmd.OutOrStdout())
	if opts.output != "" && opts.output != "-" {
		w = output.NewFileWriter(opts.output, output.WithLogger(logger))
	}

	if err := w.Write(data); err != nil {
		return &ExitError{Code: exitWrite, Err: fmt.Errorf("writing graph: %w", err)}
	}

	logger.Debug("graph written", slog.String("format", opts.format), slog.Int("objects", res.Objects))

	return nil
}
