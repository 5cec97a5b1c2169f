// Package project models an Xcode-style project as a graph of objects and
// builds that graph from a manifest.
//
// Every type maps its own fields to a property-list record through
// PBXFields. Owned children are serialized by their parent; cross links such
// as a build file's file reference or a target's product use ids only.
//
// Ownership tree:
//
//	Project
//	├── ConfigurationList ── BuildConfiguration
//	├── Group (main) ── Group ── FileReference
//	│                └─ Group (Products) ── FileReference (product)
//	└── NativeTarget
//	    ├── ConfigurationList ── BuildConfiguration
//	    ├── BuildPhase ── BuildFile
//	    └── TargetDependency ── ContainerItemProxy
package project
