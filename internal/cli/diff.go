package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pbxgen/internal/config"
	"github.com/hupe1980/pbxgen/internal/diff"
)

type diffOptions struct {
	// Existing document to diff against.
	existing string

	// Return exit code 8 when the documents differ.
	exitCode bool
}

func newDiffCommand() *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff <manifest>",
		Short: "Compare a generated document against one on disk",
		Long: `Diff generates the document for a manifest and compares it with an
existing project.pbxproj, printing a unified diff.

--existing may name the document itself or an .xcodeproj bundle.

Exit codes:
  0  No differences (or differences without --exit-code)
  1  Error
  2  Invalid arguments
  3  Manifest could not be read or is invalid
  8  Differences found and --exit-code is set`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManifest,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.Context(), cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.existing, "existing", "", "path to the existing document or .xcodeproj")
	f.BoolVar(&opts.exitCode, "exit-code", false, "exit with code 8 when differences are found")
	registerGenerationFlags(cmd)
	_ = cmd.RegisterFlagCompletionFunc("existing", completeProjectPath)

	return cmd
}

func runDiff(ctx context.Context, cmd *cobra.Command, manifestPath string, opts *diffOptions) error {
	if opts.existing == "" {
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("--existing flag is required: specify the path to the existing document")}
	}

	existingPath := documentPath(opts.existing)

	existing, err := os.ReadFile(existingPath) //nolint:gosec // user-provided path
	if err != nil {
		return &ExitError{Code: exitGeneric, Err: fmt.Errorf("reading existing document: %w", err)}
	}

	res, err := runGeneration(ctx, manifestPath)
	if err != nil {
		return err
	}

	dopts := diff.DefaultOptions()
	dopts.OldLabel = existingPath

	result, err := diff.Compute(string(existing), string(res.Output), dopts)
	if err != nil {
		return &ExitError{Code: exitGeneric, Err: err}
	}

	diff.Write(cmd.OutOrStdout(), result, !config.FromContext(ctx).NoColor)

	if result.HasDifferences && opts.exitCode {
		return &ExitError{Code: exitDiffFound, Err: fmt.Errorf("documents differ: %d line(s) added, %d line(s) removed", result.Added, result.Removed)}
	}

	return nil
}
