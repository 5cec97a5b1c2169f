package project

import (
	"github.com/hupe1980/pbxgen/internal/objgraph"
	"github.com/hupe1980/pbxgen/internal/plist"
)

// NativeTarget builds one product.
type NativeTarget struct {
	Name        string
	ProductName string
	ProductType string

	// Product is owned by the project's products group.
	Product *FileReference

	Configs      *ConfigurationList
	Phases       []*BuildPhase
	Dependencies []*TargetDependency
}

// PBXFields implements objgraph.Object.
func (t *NativeTarget) PBXFields(s *objgraph.Serializer) plist.Mapping {
	phases := make(plist.Array, 0, len(t.Phases))
	for _, ph := range t.Phases {
		phases = append(phases, plist.Identifier(s.Serialize(ph)))
	}

	deps := make(plist.Array, 0, len(t.Dependencies))
	for _, d := range t.Dependencies {
		deps = append(deps, plist.Identifier(s.Serialize(d)))
	}

	m := plist.Mapping{
		"isa":                    plist.String("PBXNativeTarget"),
		"buildConfigurationList": plist.Identifier(s.Serialize(t.Configs)),
		"buildPhases":            phases,
		"buildRules":             plist.Array{},
		"dependencies":           deps,
		"name":                   plist.String(t.Name),
		"productName":            plist.String(t.ProductName),
		"productType":            plist.String(t.ProductType),
	}

	if t.Product != nil {
		m["productReference"] = plist.Identifier(s.IDOf(t.Product))
	}

	return m
}

// Phase returns the first phase of the given kind, or nil.
func (t *NativeTarget) Phase(kind PhaseKind) *BuildPhase {
	for _, ph := range t.Phases {
		if ph.Kind == kind {
			return ph
		}
	}

	return nil
}

// TargetDependency makes one target build after another.
type TargetDependency struct {
	Target *NativeTarget
	Proxy  *ContainerItemProxy
}

// PBXFields implements objgraph.Object.
func (d *TargetDependency) PBXFields(s *objgraph.Serializer) plist.Mapping {
	return plist.Mapping{
		"isa":         plist.String("PBXTargetDependency"),
		"target":      plist.Identifier(s.IDOf(d.Target)),
		"targetProxy": plist.Identifier(s.Serialize(d.Proxy)),
	}
}

// ContainerItemProxy locates a target within a project. It points back at
// the project that owns, transitively, the proxy itself.
type ContainerItemProxy struct {
	Portal *Project
	Remote *NativeTarget
}

// PBXFields implements objgraph.Object.
func (c *ContainerItemProxy) PBXFields(s *objgraph.Serializer) plist.Mapping {
	return plist.Mapping{
		"isa":                  plist.String("PBXContainerItemProxy"),
		"containerPortal":      plist.Identifier(s.IDOf(c.Portal)),
		"proxyType":            plist.String("1"),
		"remoteGlobalIDString": plist.Identifier(s.IDOf(c.Remote)),
		"remoteInfo":           plist.String(c.Remote.Name),
	}
}
