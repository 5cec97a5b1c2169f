package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/hupe1980/pbxgen/internal/config"
	"github.com/hupe1980/pbxgen/internal/generator"
	"github.com/hupe1980/pbxgen/internal/plist"
)

type inspectOptions struct {
	format string
}

func newInspectCommand() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <manifest>",
		Short: "Summarize the project a manifest describes",
		Long: `Inspect builds the project described by a manifest and prints a
summary without writing any files: the targets with their products and
dependencies, and the number of records per isa in the object table.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManifest,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "table", "output format: table, json, yaml")
	registerGenerationFlags(cmd)
	registerOutputCompletion(cmd, "table", "json", "yaml")

	return cmd
}

// inspectResult is the structured output of the inspect command.
type inspectResult struct {
	Name          string       `json:"name"`
	ObjectVersion string       `json:"objectVersion"`
	RootObject    string       `json:"rootObject"`
	Objects       int          `json:"objects"`
	Targets       []targetInfo `json:"targets"`
	Types         []isaCount   `json:"types"`
	Dangling      []string     `json:"dangling,omitempty"`
}

type targetInfo struct {
	Name         string   `json:"name"`
	ProductType  string   `json:"productType"`
	Product      string   `json:"product"`
	Phases       int      `json:"phases"`
	Dependencies []string `json:"dependencies,omitempty"`
}

type isaCount struct {
	ISA   string `json:"isa"`
	Count int    `json:"count"`
}

func runInspect(ctx context.Context, cmd *cobra.Command, manifestPath string, opts *inspectOptions) error {
	switch opts.format {
	case "table", "json", "yaml":
	default:
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("unknown format %q: expected table, json, yaml", opts.format)}
	}

	res, err := runGenerationWith(ctx, manifestPath, false)
	if err != nil {
		return err
	}

	result := buildInspectResult(res)
	w := cmd.OutOrStdout()

	switch opts.format {
	case "json":
		return renderJSON(w, result)
	case "yaml":
		return renderYAML(w, result)
	default:
		renderTable(w, result, !config.FromContext(ctx).NoColor)
		return nil
	}
}

func buildInspectResult(res *generator.Result) inspectResult {
	result := inspectResult{
		Name:          res.Manifest.Name,
		ObjectVersion: res.ObjectVersion,
		RootObject:    res.Document.RootID,
		Objects:       res.Objects,
		Dangling:      res.Dangling,
	}

	for _, t := range res.Project.Targets {
		info := targetInfo{
			Name:        t.Name,
			ProductType: t.ProductType,
			Phases:      len(t.Phases),
		}

		if t.Product != nil {
			info.Product = t.Product.Path
		}

		for _, d := range t.Dependencies {
			if d.Target != nil {
				info.Dependencies = append(info.Dependencies, d.Target.Name)
			}
		}

		result.Targets = append(result.Targets, info)
	}

	counts := make(map[string]int)

	for _, rec := range res.Document.Serializer.Objects() {
		m, ok := rec.(plist.Mapping)
		if !ok {
			continue
		}

		if isa, ok := m["isa"].(plist.String); ok {
			counts[string(isa)]++
		}
	}

	for isa, n := range counts {
		result.Types = append(result.Types, isaCount{ISA: isa, Count: n})
	}

	sort.Slice(result.Types, func(i, j int) bool {
		return result.Types[i].ISA < result.Types[j].ISA
	})

	return result
}

func renderJSON(w io.Writer, result inspectResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(result)
}

func renderYAML(w io.Writer, result inspectResult) error {
	data, err := sigsyaml.Marshal(result)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

func renderTable(w io.Writer, result inspectResult, color bool) {
	heading := func(s string) string { return s }

	if color {
		style := lipgloss.NewStyle().Bold(true)
		heading = func(s string) string { return style.Render(s) }
	}

	_, _ = fmt.Fprintf(w, "\n%s\n", heading(fmt.Sprintf("=== Project: %s ===", result.Name)))
	_, _ = fmt.Fprintf(w, "Object version: %s\n", result.ObjectVersion)
	_, _ = fmt.Fprintf(w, "Root object:    %s\n", result.RootObject)
	_, _ = fmt.Fprintf(w, "Objects:        %d\n", result.Objects)

	_, _ = fmt.Fprintf(w, "\n%s\n", heading(fmt.Sprintf("--- Targets (%d) ---", len(result.Targets))))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tPRODUCT\tTYPE\tPHASES\tDEPENDENCIES")

	for _, t := range result.Targets {
		deps := "-"
		if len(t.Dependencies) > 0 {
			deps = fmt.Sprint(t.Dependencies)
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", t.Name, t.Product, t.ProductType, t.Phases, deps)
	}

	_ = tw.Flush()

	_, _ = fmt.Fprintf(w, "\n%s\n", heading("--- Objects by isa ---"))

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ISA\tCOUNT")

	for _, c := range result.Types {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", c.ISA, c.Count)
	}

	_ = tw.Flush()

	if len(result.Dangling) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s\n", heading("--- Dangling references ---"))

		for _, id := range result.Dangling {
			_, _ = fmt.Fprintf(w, "  %s\n", id)
		}
	}
}
