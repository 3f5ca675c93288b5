// Package manifest is the registry a plugin library uses to declare which
// classes it exports and how to construct them.
//
// A Manifest maps class names to type-erased MetaClass values. A host that
// knows the capability interface it wants asks for it by name with
// ClassByName, and gets back a MetaClass typed over that interface or an error
// saying the name is unknown or the type does not match. A host that only needs
// to treat plugin objects generically asks for sgo.Object instead.
//
// Plugins declare their manifest with Declare and expose it from package main
// under EntryPointSymbol:
//
//	var declared = manifest.Declare("Kernel collection", &kernels.Module{})
//
//	func ShogunManifest() manifest.Manifest { return declared() }
//
// A Manifest is immutable once built and safe for concurrent use.
package manifest
