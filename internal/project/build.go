package project

import (
	"fmt"
	"path"
	"strings"

	"github.com/hupe1980/pbxgen/internal/manifest"
	"github.com/hupe1980/pbxgen/internal/maputil"
	"github.com/hupe1980/pbxgen/internal/plist"
)

// SDK-relative locations of frameworks and libraries.
const (
	frameworksDir = "System/Library/Frameworks"
	librariesDir  = "usr/lib"
)

// Build turns a validated manifest (defaults applied) into a project graph.
// Equal manifests produce equal graphs.
func Build(m *manifest.Manifest) (*Project, error) {
	b := &builder{
		m:     m,
		files: make(map[string]*FileReference),
		sdk:   make(map[string]*FileReference),
	}

	return b.build()
}

type builder struct {
	m *manifest.Manifest

	proj       *Project
	frameworks *Group
	files      map[string]*FileReference // keyed by cleaned manifest path
	sdk        map[string]*FileReference // keyed by framework name
}

func (b *builder) build() (*Project, error) {
	m := b.m

	if len(m.Configurations) == 0 {
		return nil, fmt.Errorf("project %q: no build configurations", m.Name)
	}

	b.proj = &Project{
		Name:              m.Name,
		Organization:      m.Organization,
		DevelopmentRegion: m.DevelopmentRegion,
		KnownRegions:      m.KnownRegions,
		LastUpgradeCheck:  lastUpgradeCheck(m.Compatibility),
		MainGroup:         NewGroup("", ""),
		ProductsGroup:     NewGroup("Products", ""),
	}

	b.proj.Configs = b.configurationList(m.Settings, m.ConfigSettings)

	// File references are created in manifest order so ids stay stable.
	for _, f := range m.Files() {
		b.fileRef(f)
	}

	for i := range m.Targets {
		t, err := b.target(&m.Targets[i])
		if err != nil {
			return nil, err
		}

		b.proj.Targets = append(b.proj.Targets, t)
	}

	if err := b.linkDependencies(); err != nil {
		return nil, err
	}

	if b.frameworks != nil {
		b.proj.MainGroup.Add(b.frameworks)
	}

	b.proj.MainGroup.Add(b.proj.ProductsGroup)

	return b.proj, nil
}

// fileRef returns the shared reference for a manifest path, creating the
// groups for its directory on first use.
func (b *builder) fileRef(p string) *FileReference {
	clean := path.Clean(p)
	if ref, ok := b.files[clean]; ok {
		return ref
	}

	ref := NewFileReference(clean)
	b.proj.MainGroup.GroupFor(path.Dir(clean)).Add(ref)
	b.files[clean] = ref

	return ref
}

// sdkFramework returns the shared reference for an SDK framework.
func (b *builder) sdkFramework(name string) *FileReference {
	if !strings.Contains(name, ".") {
		name += ".framework"
	}

	if ref, ok := b.sdk[name]; ok {
		return ref
	}

	if b.frameworks == nil {
		b.frameworks = NewGroup("Frameworks", "")
	}

	dir := frameworksDir
	if ext := path.Ext(name); ext == ".tbd" || ext == ".dylib" {
		dir = librariesDir
	}

	ref := &FileReference{
		Name:              name,
		Path:              path.Join(dir, name),
		SourceTree:        SourceTreeSDK,
		LastKnownFileType: FileTypeFor(name),
	}
	b.frameworks.Add(ref)
	b.sdk[name] = ref

	return ref
}

func (b *builder) target(mt *manifest.Target) (*NativeTarget, error) {
	info, ok := ProductInfoFor(mt.Type)
	if !ok {
		return nil, fmt.Errorf("target %q: unknown type %q", mt.Name, mt.Type)
	}

	product := &FileReference{
		Path:             info.FileName(mt.ProductName),
		SourceTree:       SourceTreeProducts,
		ExplicitFileType: info.FileType,
	}
	b.proj.ProductsGroup.Add(product)

	base := manifest.Settings{"PRODUCT_NAME": mt.ProductName}
	for k, v := range mt.Settings {
		base[k] = v
	}

	t := &NativeTarget{
		Name:        mt.Name,
		ProductName: mt.ProductName,
		ProductType: info.ProductType,
		Product:     product,
		Configs:     b.configurationList(base, mt.ConfigSettings),
	}

	t.Phases = append(t.Phases, b.scriptPhases(mt.Scripts, manifest.PhasePre)...)

	if len(mt.Headers) > 0 {
		t.Phases = append(t.Phases, b.filePhase(PhaseHeaders, mt.Headers))
	}

	t.Phases = append(t.Phases, b.filePhase(PhaseSources, mt.Sources))

	frameworks := &BuildPhase{Kind: PhaseFrameworks}
	for _, fw := range mt.Frameworks {
		frameworks.AddFile(b.sdkFramework(fw))
	}

	t.Phases = append(t.Phases, frameworks)

	if len(mt.Resources) > 0 {
		t.Phases = append(t.Phases, b.filePhase(PhaseResources, mt.Resources))
	}

	t.Phases = append(t.Phases, b.scriptPhases(mt.Scripts, manifest.PhasePost)...)

	return t, nil
}

func (b *builder) filePhase(kind PhaseKind, paths []string) *BuildPhase {
	phase := &BuildPhase{Kind: kind}

	seen := make(map[*FileReference]bool)

	for _, p := range paths {
		ref := b.fileRef(p)
		if seen[ref] {
			continue
		}

		seen[ref] = true

		bf := phase.AddFile(ref)
		if kind == PhaseHeaders {
			bf.Settings = plist.Mapping{"ATTRIBUTES": plist.Strings("Public")}
		}
	}

	return phase
}

func (b *builder) scriptPhases(scripts []manifest.Script, when string) []*BuildPhase {
	var phases []*BuildPhase

	for _, sc := range scripts {
		if sc.Phase != when {
			continue
		}

		phases = append(phases, &BuildPhase{
			Kind:        PhaseShellScript,
			Name:        sc.Name,
			ShellPath:   sc.Shell,
			ShellScript: sc.Script,
			InputPaths:  sc.Inputs,
			OutputPaths: sc.Outputs,
		})
	}

	return phases
}

// linkDependencies wires target dependencies and links linkable products.
func (b *builder) linkDependencies() error {
	for i, mt := range b.m.Targets {
		t := b.proj.Targets[i]
		linked := make(map[string]bool, len(mt.Dependencies))

		for _, name := range mt.Dependencies {
			if linked[name] {
				continue
			}

			linked[name] = true

			dep := b.proj.Target(name)
			if dep == nil {
				return fmt.Errorf("target %q: unknown dependency %q", mt.Name, name)
			}

			t.Dependencies = append(t.Dependencies, &TargetDependency{
				Target: dep,
				Proxy:  &ContainerItemProxy{Portal: b.proj, Remote: dep},
			})

			depInfo, _ := ProductInfoFor(b.m.Target(name).Type)
			if depInfo.Linkable() {
				t.Phase(PhaseFrameworks).AddFile(dep.Product)
			}
		}
	}

	return nil
}

// configurationList builds one configuration per manifest configuration:
// base settings overlaid with the configuration's own.
func (b *builder) configurationList(base manifest.Settings, perConfig map[string]manifest.Settings) *ConfigurationList {
	list := &ConfigurationList{Default: b.m.Configurations[0]}

	for _, name := range b.m.Configurations {
		merged := maputil.Merge(base, perConfig[name])

		list.Configs = append(list.Configs, &BuildConfiguration{
			Name:     name,
			Settings: settingsMapping(merged),
		})
	}

	return list
}

// settingsMapping converts manifest settings to property-list values.
// Booleans become YES/NO, lists become arrays, other scalars are formatted.
func settingsMapping(s map[string]any) plist.Mapping {
	m := make(plist.Mapping, len(s))

	for k, v := range s {
		m[k] = settingValue(v)
	}

	return m
}

func settingValue(v any) plist.Value {
	switch val := v.(type) {
	case bool:
		if val {
			return plist.String("YES")
		}

		return plist.String("NO")
	case []any:
		arr := make(plist.Array, 0, len(val))
		for _, item := range val {
			arr = append(arr, settingValue(item))
		}

		return arr
	case []string:
		return plist.Strings(val...)
	case nil:
		return plist.String("")
	default:
		return plist.String(fmt.Sprint(val))
	}
}

// lastUpgradeCheck turns an Xcode version ("14.2") into the four-digit form
// used by project attributes ("1420").
func lastUpgradeCheck(xcode string) string {
	if xcode == "" {
		return ""
	}

	parts := strings.SplitN(xcode, ".", 3)

	var major, minor int

	if _, err := fmt.Sscanf(parts[0], "%d", &major); err != nil {
		return ""
	}

	if len(parts) > 1 {
		_, _ = fmt.Sscanf(parts[1], "%d", &minor)
	}

	return fmt.Sprintf("%02d%d0", major, minor)
}
