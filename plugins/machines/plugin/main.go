// Command plugin builds the machines library as a Go plugin.
package main

import (
	"github.com/vk/sgoplug/manifest"
	"github.com/vk/sgoplug/plugins/machines"
)

func ShogunManifest() manifest.Manifest {
	return machines.Manifest()
}

func main() {}
