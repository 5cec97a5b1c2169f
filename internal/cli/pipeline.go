package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/pbxgen/internal/config"
	"github.com/hupe1980/pbxgen/internal/generator"
)

// runGeneration runs the generator for the manifest at path with the
// options from the configuration in ctx. Errors carry the exit code of
// their cause.
func runGeneration(ctx context.Context, path string) (*generator.Result, error) {
	return runGenerationWith(ctx, path, config.FromContext(ctx).CheckReferences)
}

func runGenerationWith(ctx context.Context, path string, checkReferences bool) (*generator.Result, error) {
	cfg := config.FromContext(ctx)

	res, err := generator.Run(ctx, generator.Options{
		ManifestPath:    path,
		ObjectVersion:   cfg.ObjectVersion,
		CheckReferences: checkReferences,
	})
	if err != nil {
		return nil, generationError(err)
	}

	return res, nil
}

// generationError maps a generator error to its exit code.
func generationError(err error) *ExitError {
	switch {
	case generator.IsContractViolation(err):
		return &ExitError{Code: exitContract, Err: err}
	case errors.Is(err, generator.ErrInvalidManifest):
		return &ExitError{Code: exitManifest, Err: err}
	default:
		return &ExitError{Code: exitGeneric, Err: fmt.Errorf("generating document: %w", err)}
	}
}
