// Package registry connects the manifests of opened libraries to the
// capability interfaces the host knows about.
//
// The host registers each interface it can consume under a name ("kernel",
// "machine", ...). Resolution then looks every configured capability up in
// its library's manifest, typed by the registered interface, and records the
// outcome in a Report. A capability that cannot be resolved is rejected with a
// reason and never stops resolution of the others.
package registry
