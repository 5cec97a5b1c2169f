package project

import (
	"github.com/hupe1980/pbxgen/internal/objgraph"
	"github.com/hupe1980/pbxgen/internal/plist"
)

// Project is the root object of a document.
type Project struct {
	Name              string
	Organization      string
	DevelopmentRegion string
	KnownRegions      []string
	// LastUpgradeCheck is the Xcode version in its four-digit form ("1420").
	LastUpgradeCheck string

	MainGroup     *Group
	ProductsGroup *Group
	Configs       *ConfigurationList
	Targets       []*NativeTarget
}

// PBXFields implements objgraph.Object.
func (p *Project) PBXFields(s *objgraph.Serializer) plist.Mapping {
	attrs := plist.Mapping{}

	if p.LastUpgradeCheck != "" {
		attrs["LastUpgradeCheck"] = plist.String(p.LastUpgradeCheck)
	}

	if p.Organization != "" {
		attrs["ORGANIZATIONNAME"] = plist.String(p.Organization)
	}

	targets := make(plist.Array, 0, len(p.Targets))
	for _, t := range p.Targets {
		targets = append(targets, plist.Identifier(s.Serialize(t)))
	}

	m := plist.Mapping{
		"isa":                    plist.String("PBXProject"),
		"attributes":             attrs,
		"buildConfigurationList": plist.Identifier(s.Serialize(p.Configs)),
		"compatibilityVersion":   plist.String("Xcode 3.2"),
		"developmentRegion":      plist.String(p.DevelopmentRegion),
		"hasScannedForEncodings": plist.String("0"),
		"knownRegions":           plist.Strings(p.KnownRegions...),
		"mainGroup":              plist.Identifier(s.Serialize(p.MainGroup)),
		"projectDirPath":         plist.String(""),
		"projectRoot":            plist.String(""),
		"targets":                targets,
	}

	// The products group is a child of the main group, which serializes it.
	if p.ProductsGroup != nil {
		m["productRefGroup"] = plist.Identifier(s.IDOf(p.ProductsGroup))
	}

	return m
}

// Target returns the target with the given name, or nil.
func (p *Project) Target(name string) *NativeTarget {
	for _, t := range p.Targets {
		if t.Name == name {
			return t
		}
	}

	return nil
}
