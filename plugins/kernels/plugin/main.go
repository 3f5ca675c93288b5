// Command plugin builds the kernels library as a Go plugin.
package main

import (
	"github.com/vk/sgoplug/manifest"
	"github.com/vk/sgoplug/plugins/kernels"
)

// ShogunManifest is looked up by hosts under manifest.EntryPointSymbol.
func ShogunManifest() manifest.Manifest {
	return kernels.Manifest()
}

func main() {}
