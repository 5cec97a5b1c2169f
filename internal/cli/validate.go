package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pbxgen/internal/output"
)

type validateOptions struct {
	strict bool
}

func newValidateCommand() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Validate a manifest and the document it produces",
		Long: `Validate checks a manifest for structural problems, builds the
project it describes and runs an integrity check over the resulting
document: every identifier must name a written record and every record
must be reachable.

Returns exit code 3 when the manifest is invalid and exit code 7 when the
document fails the integrity check (or has warnings with --strict).`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManifest,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on warnings in addition to errors")
	registerGenerationFlags(cmd)

	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, manifestPath string, opts *validateOptions) error {
	// Dangling references are reported as findings below instead of
	// aborting the generation.
	res, err := runGenerationWith(ctx, manifestPath, false)
	if err != nil {
		return err
	}

	result := output.Validate(res.Document.Root)

	if len(result.Findings) > 0 {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), output.FormatValidationResult(result))
	}

	if result.HasErrors() {
		return &ExitError{Code: exitInvalid, Err: fmt.Errorf("validation failed with %d error(s)", len(result.Errors()))}
	}

	if opts.strict && result.HasWarnings() {
		return &ExitError{Code: exitInvalid, Err: fmt.Errorf("validation failed with %d warning(s) (strict mode)", len(result.Warnings()))}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %d objects.\n", res.Objects)

	return nil
}
