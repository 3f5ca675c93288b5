package kernels

import (
	"github.com/vk/sgoplug/manifest"
	"github.com/vk/sgoplug/sgo"
)

// Description is the manifest description of this library.
const Description = "Kernel functions: gaussian, linear, polynomial"

// Module implements the manifest.Module interface for this package.
type Module struct{}

// Register exports every kernel of the package.
func (m *Module) Register(b *manifest.Builder) {
	manifest.Export(b, "GaussianKernel", func() sgo.Kernel { return NewGaussian() })
	manifest.Export(b, "LinearKernel", func() sgo.Kernel { return NewLinear() })
	manifest.Export(b, "PolyKernel", func() sgo.Kernel { return NewPolynomial() })
}

// Manifest is the entry point of the kernels library.
var Manifest = manifest.Declare(Description, &Module{})
