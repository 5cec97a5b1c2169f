package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunFunc is called each time the watcher triggers a regeneration.
type RunFunc func(ctx context.Context) (*RunResult, error)

// RunResult holds the output of a single generation so the watcher can
// report it and optionally validate the written document.
type RunResult struct {
	Objects    int
	OutputPath string
	// Changed is false when the written document equals the previous one.
	Changed bool
}

// Options configures the watch behaviour.
type Options struct {
	// Files are watched for changes, typically the manifest and the config
	// file. Their parent directories are watched so that editors replacing
	// files atomically are noticed.
	Files []string

	// Debounce is the quiet period before triggering a rebuild.
	Debounce time.Duration

	// Validate enables automatic validation after each generation.
	Validate bool

	// ValidateFn is called after each generation when Validate is true.
	// If nil, validation is skipped even when Validate is true.
	ValidateFn ValidateFunc

	// Logger is used for structured logging.
	Logger *slog.Logger

	// Out is the writer for user-facing status messages.
	Out io.Writer
}

// DefaultOptions returns sensible default watch options.
func DefaultOptions() Options {
	return Options{
		Debounce: 300 * time.Millisecond,
		Validate: true,
		Logger:   slog.Default(),
		Out:      os.Stderr,
	}
}

// ValidateFunc is called after each generation to validate the output.
// It receives the output path and returns an error if validation fails.
type ValidateFunc func(ctx context.Context, outputPath string) error

// Run starts the file watcher and blocks until the context is cancelled
// or a SIGINT/SIGTERM signal is received.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	if len(opts.Files) == 0 {
		return fmt.Errorf("no files to watch")
	}

	targets, err := resolveTargets(opts.Files)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range watchDirs(targets) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching directory %q: %w", dir, err)
		}
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s, validate=%t)\n",
		strings.Join(opts.Files, ", "), opts.Debounce, opts.Validate)

	doRun(sigCtx, opts, runFn, "(initial)")

	debouncer := NewDebouncer(opts.Debounce, func(paths []string) {
		doRun(sigCtx, opts, runFn, triggerLabel(paths))
	})
	debouncer.logger = opts.Logger
	defer debouncer.Stop()

	for {
		select {
		case <-sigCtx.Done():
			fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevant(event) || !targets[filepath.Clean(event.Name)] {
				continue
			}

			debouncer.Trigger(event.Name)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// doRun executes a single generation and prints the status line.
func doRun(ctx context.Context, opts Options, runFn RunFunc, trigger string) {
	now := time.Now().Format("15:04:05")

	result, err := runFn(ctx)
	if err != nil {
		fmt.Fprintf(opts.Out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return
	}

	state := "unchanged"
	if result.Changed {
		state = "written"
	}

	fmt.Fprintf(opts.Out, "[%s] %s → OK (%d objects, %s)\n", now, trigger, result.Objects, state)

	if opts.Validate && opts.ValidateFn != nil && result.OutputPath != "" {
		if validateErr := opts.ValidateFn(ctx, result.OutputPath); validateErr != nil {
			fmt.Fprintf(opts.Out, "  validate: FAILED: %v\n", validateErr)
			return
		}

		fmt.Fprintf(opts.Out, "  validate: OK\n")
	}
}

// triggerLabel names the changed files by base name for the status line.
func triggerLabel(paths []string) string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}

	return strings.Join(names, ", ")
}

// resolveTargets returns the absolute, cleaned paths of files.
func resolveTargets(files []string) (map[string]bool, error) {
	targets := make(map[string]bool, len(files))

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", f, err)
		}

		targets[filepath.Clean(abs)] = true
	}

	return targets, nil
}

// watchDirs returns the sorted, distinct parent directories of targets.
func watchDirs(targets map[string]bool) []string {
	seen := make(map[string]bool)

	var dirs []string

	for t := range targets {
		dir := filepath.Dir(t)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	sort.Strings(dirs)

	return dirs
}

// isRelevant filters out events that cannot change a watched file.
func isRelevant(event fsnotify.Event) bool {
	if event.Op == 0 {
		return false
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Base(event.Name)

	// Editor temporary files.
	if strings.HasSuffix(name, "~") || strings.HasSuffix(name, ".swp") || strings.HasPrefix(name, "#") {
		return false
	}

	return true
}
