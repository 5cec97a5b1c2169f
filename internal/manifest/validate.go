package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ValidationError lists every problem found in a manifest.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid manifest: " + e.Problems[0]
	}

	return fmt.Sprintf("invalid manifest (%d problems):\n  - %s", len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

// Validate checks the manifest for structural problems. generatorVersion is
// matched against the Requires constraint; versions that are not valid semver
// (development builds) skip that check. Call ApplyDefaults first.
func (m *Manifest) Validate(generatorVersion string) error {
	v := &validator{m: m}
	v.validate(generatorVersion)

	if len(v.problems) == 0 {
		return nil
	}

	return &ValidationError{Problems: v.problems}
}

type validator struct {
	m        *Manifest
	problems []string
}

func (v *validator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validate(generatorVersion string) {
	if strings.TrimSpace(v.m.Name) == "" {
		v.addf("name: required field is missing")
	}

	v.validateRequires(generatorVersion)
	v.validateCompatibility()
	v.validateConfigurations()
	v.validateTargets()
	v.validateDependencyGraph()
}

func (v *validator) validateRequires(generatorVersion string) {
	if v.m.Requires == "" {
		return
	}

	c, err := semver.NewConstraint(v.m.Requires)
	if err != nil {
		v.addf("requires: invalid version constraint %q: %v", v.m.Requires, err)
		return
	}

	gv, err := semver.NewVersion(generatorVersion)
	if err != nil {
		return
	}

	if ok, errs := c.Validate(gv); !ok {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}

		v.addf("requires: generator version %s does not satisfy %q: %s", gv, v.m.Requires, strings.Join(msgs, "; "))
	}
}

func (v *validator) validateCompatibility() {
	if v.m.Compatibility == "" {
		return
	}

	if _, err := semver.NewVersion(v.m.Compatibility); err != nil {
		v.addf("compatibility: invalid Xcode version %q: %v", v.m.Compatibility, err)
	}
}

func (v *validator) validateConfigurations() {
	seen := make(map[string]bool)

	for i, name := range v.m.Configurations {
		switch {
		case strings.TrimSpace(name) == "":
			v.addf("configurations[%d]: name must not be empty", i)
		case seen[name]:
			v.addf("configurations[%d]: duplicate configuration %q", i, name)
		}

		seen[name] = true
	}

	v.validateConfigSettings("configSettings", v.m.ConfigSettings, seen)

	for i, t := range v.m.Targets {
		v.validateConfigSettings(fmt.Sprintf("targets[%d].configSettings", i), t.ConfigSettings, seen)
	}
}

func (v *validator) validateConfigSettings(field string, cs map[string]Settings, known map[string]bool) {
	names := make([]string, 0, len(cs))
	for name := range cs {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if !known[name] {
			v.addf("%s: unknown configuration %q", field, name)
		}
	}
}

func (v *validator) validateTargets() {
	if len(v.m.Targets) == 0 {
		v.addf("targets: at least one target is required")
		return
	}

	validTypes := make(map[string]bool)
	for _, t := range TargetTypes() {
		validTypes[t] = true
	}

	seen := make(map[string]bool)

	for i, t := range v.m.Targets {
		field := fmt.Sprintf("targets[%d]", i)

		switch {
		case strings.TrimSpace(t.Name) == "":
			v.addf("%s.name: required field is missing", field)
		case seen[t.Name]:
			v.addf("%s.name: duplicate target %q", field, t.Name)
		}

		seen[t.Name] = true

		if !validTypes[t.Type] {
			v.addf("%s.type: unknown target type %q (must be one of %s)", field, t.Type, strings.Join(TargetTypes(), ", "))
		}

		for j, s := range t.Scripts {
			if s.Phase != PhasePre && s.Phase != PhasePost {
				v.addf("%s.scripts[%d].phase: must be %q or %q, got %q", field, j, PhasePre, PhasePost, s.Phase)
			}

			if strings.TrimSpace(s.Script) == "" {
				v.addf("%s.scripts[%d].script: required field is missing", field, j)
			}
		}

		for _, list := range []struct {
			name  string
			paths []string
		}{{"sources", t.Sources}, {"headers", t.Headers}, {"resources", t.Resources}, {"frameworks", t.Frameworks}} {
			for j, p := range list.paths {
				if strings.TrimSpace(p) == "" || strings.HasPrefix(p, "/") {
					v.addf("%s.%s[%d]: path must be relative and non-empty, got %q", field, list.name, j, p)
				}
			}
		}
	}
}

// validateDependencyGraph checks that dependencies name existing targets and
// that target dependencies form no cycle.
func (v *validator) validateDependencyGraph() {
	adj := make(map[string][]string)

	for i, t := range v.m.Targets {
		adj[t.Name] = nil
		seen := make(map[string]bool, len(t.Dependencies))

		for j, dep := range t.Dependencies {
			if seen[dep] {
				v.addf("targets[%d].dependencies[%d]: duplicate dependency %q", i, j, dep)
				continue
			}

			seen[dep] = true

			switch {
			case dep == t.Name:
				v.addf("targets[%d].dependencies: target %q depends on itself", i, t.Name)
				continue
			case v.m.Target(dep) == nil:
				v.addf("targets[%d].dependencies: unknown target %q", i, dep)
				continue
			}

			adj[t.Name] = append(adj[t.Name], dep)
		}
	}

	if cycle := detectCycle(adj); len(cycle) > 0 {
		v.addf("targets: dependency cycle detected: %s", strings.Join(cycle, " -> "))
	}
}

// detectCycle finds a cycle in a directed graph using DFS.
func detectCycle(adj map[string][]string) []string {
	const (
		white = 0 // unvisited
		gray  = 1 // in progress
		black = 2 // done
	)

	color := make(map[string]int)
	parent := make(map[string]string)

	nodes := make([]string, 0, len(adj))
	for n := range adj {
		nodes = append(nodes, n)
	}

	sort.Strings(nodes)

	var dfs func(node string) []string

	dfs = func(node string) []string {
		color[node] = gray

		neighbors := append([]string(nil), adj[node]...)
		sort.Strings(neighbors)

		for _, neighbor := range neighbors {
			if color[neighbor] == gray {
				// Walk back from node to neighbor to rebuild the cycle.
				cycle := []string{node}
				for cur := node; cur != neighbor; {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}

				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}

				return append(cycle, neighbor)
			}

			if color[neighbor] == white {
				parent[neighbor] = node

				if cycle := dfs(neighbor); len(cycle) > 0 {
					return cycle
				}
			}
		}

		color[node] = black

		return nil
	}

	for _, n := range nodes {
		if color[n] == white {
			if cycle := dfs(n); len(cycle) > 0 {
				return cycle
			}
		}
	}

	return nil
}
