package manifest

import (
	"math"

	"github.com/vk/sgoplug/sgo"
)

type gaussian struct{ width float64 }

func (g *gaussian) Name() string { return "GaussianKernel" }

func (g *gaussian) Compute(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, sgo.ErrDimensionMismatch
	}
	var d float64
	for i := range a {
		d += (a[i] - b[i]) * (a[i] - b[i])
	}
	return math.Exp(-d / g.width), nil
}

type meanMachine struct{ mean float64 }

func (m *meanMachine) Name() string { return "MeanMachine" }

func (m *meanMachine) Train(_ [][]float64, labels []float64) error {
	for _, l := range labels {
		m.mean += l
	}
	if len(labels) > 0 {
		m.mean /= float64(len(labels))
	}
	return nil
}

func (m *meanMachine) Apply(features [][]float64) ([]float64, error) {
	out := make([]float64, len(features))
	for i := range out {
		out[i] = m.mean
	}
	return out, nil
}

// plain does not satisfy sgo.Object.
type plain struct{ n int }

func newGaussian() sgo.Kernel { return &gaussian{width: 1} }

func newMean() sgo.Machine { return &meanMachine{} }

func testEntries() []Entry {
	var entries []Entry
	entries = append(entries, Exports("GaussianKernel", newGaussian)...)
	entries = append(entries, Exports("MeanMachine", newMean)...)
	return entries
}
