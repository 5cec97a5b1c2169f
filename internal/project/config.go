package project

import (
	"github.com/hupe1980/pbxgen/internal/objgraph"
	"github.com/hupe1980/pbxgen/internal/plist"
)

// ConfigurationList groups the build configurations of a project or target.
type ConfigurationList struct {
	Configs []*BuildConfiguration
	// Default names the configuration used by command-line builds.
	Default string
}

// PBXFields implements objgraph.Object.
func (l *ConfigurationList) PBXFields(s *objgraph.Serializer) plist.Mapping {
	configs := make(plist.Array, 0, len(l.Configs))
	for _, c := range l.Configs {
		configs = append(configs, plist.Identifier(s.Serialize(c)))
	}

	return plist.Mapping{
		"isa":                           plist.String("XCConfigurationList"),
		"buildConfigurations":           configs,
		"defaultConfigurationIsVisible": plist.String("0"),
		"defaultConfigurationName":      plist.String(l.Default),
	}
}

// Config returns the configuration with the given name, or nil.
func (l *ConfigurationList) Config(name string) *BuildConfiguration {
	for _, c := range l.Configs {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// BuildConfiguration is a named set of build settings.
type BuildConfiguration struct {
	Name string
	// Settings values are String or Array of String.
	Settings plist.Mapping
}

// PBXFields implements objgraph.Object.
func (c *BuildConfiguration) PBXFields(*objgraph.Serializer) plist.Mapping {
	settings := c.Settings
	if settings == nil {
		settings = plist.Mapping{}
	}

	return plist.Mapping{
		"isa":           plist.String("XCBuildConfiguration"),
		"buildSettings": settings,
		"name":          plist.String(c.Name),
	}
}
