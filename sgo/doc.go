// Package sgo defines the object model shared by plugins and hosts.
//
// Object is the universal root type: every type a plugin exports satisfies it,
// which lets a host enumerate and instantiate arbitrary plugin classes without
// knowing what they are. Capability interfaces such as Kernel and Machine embed
// Object and are what a host asks for when it needs a specific behaviour.
//
// Plugins and hosts must be built against the same version of this package.
package sgo
