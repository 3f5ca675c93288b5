// Package library opens plugin libraries and retrieves their manifests.
//
// A library is either a Go plugin built with -buildmode=plugin that exports
// manifest.EntryPointSymbol, or a library compiled into the host and addressed
// by a "builtin:<name>" path. Both are opened through the Opener interface, so
// the rest of the host only ever sees a Library holding a manifest.Manifest.
package library
