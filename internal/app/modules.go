package app

import (
	"github.com/vk/sgoplug/internal/library"
	"github.com/vk/sgoplug/internal/registry"
	"github.com/vk/sgoplug/plugins/kernels"
	"github.com/vk/sgoplug/plugins/machines"
	"github.com/vk/sgoplug/sgo"
)

// builtinLibraries are the plugin libraries compiled into the host binary,
// addressed as "builtin:<name>".
var builtinLibraries = library.Static{
	"kernels":  kernels.Manifest,
	"machines": machines.Manifest,
}

// coreModule registers the capability interfaces the host understands.
type coreModule struct{}

func (coreModule) Register(r *registry.Registry) {
	r.RegisterInterface(registry.Bind[sgo.Object]("object"))
	r.RegisterInterface(registry.Bind[sgo.Kernel]("kernel"))
	r.RegisterInterface(registry.Bind[sgo.Machine]("machine"))
}

// coreModules is the definitive list of modules compiled into the host.
var coreModules = []registry.Module{
	coreModule{},
}

// DefaultOpener opens builtin libraries and, where the build supports it,
// Go plugins from disk.
func DefaultOpener() library.Opener {
	return &library.Router{
		Builtin: builtinLibraries,
		Files:   library.NewPluginOpener(),
	}
}
