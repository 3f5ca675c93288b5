package machines

import (
	"github.com/vk/sgoplug/manifest"
	"github.com/vk/sgoplug/sgo"
)

const Description = "Machines: perceptron, mean regressor"

// Module implements the manifest.Module interface for this package.
type Module struct{}

func (m *Module) Register(b *manifest.Builder) {
	manifest.Export(b, "Perceptron", func() sgo.Machine { return NewPerceptron() })
	manifest.Export(b, "MeanRegressor", func() sgo.Machine { return NewMeanRegressor() })
}

// Manifest is the entry point of the machines library.
var Manifest = manifest.Declare(Description, &Module{})
