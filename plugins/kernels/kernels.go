package kernels

import (
	"math"

	"github.com/vk/sgoplug/sgo"
)

// Gaussian is the radial basis function kernel exp(-||a-b||^2 / width).
type Gaussian struct {
	Width float64
}

// NewGaussian returns a Gaussian kernel with width 1.
func NewGaussian() *Gaussian {
	return &Gaussian{Width: 1}
}

func (g *Gaussian) Name() string { return "GaussianKernel" }

func (g *Gaussian) Compute(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, sgo.ErrDimensionMismatch
	}
	var dist float64
	for i := range a {
		d := a[i] - b[i]
		dist += d * d
	}
	return math.Exp(-dist / g.Width), nil
}

// Linear is the dot product kernel a.b + Offset.
type Linear struct {
	Offset float64
}

func NewLinear() *Linear {
	return &Linear{}
}

func (l *Linear) Name() string { return "LinearKernel" }

func (l *Linear) Compute(a, b []float64) (float64, error) {
	d, err := dot(a, b)
	if err != nil {
		return 0, err
	}
	return d + l.Offset, nil
}

// Polynomial computes (a.b + Coef0)^Degree.
type Polynomial struct {
	Degree int
	Coef0  float64
}

// NewPolynomial returns a quadratic kernel with offset 1.
func NewPolynomial() *Polynomial {
	return &Polynomial{Degree: 2, Coef0: 1}
}

func (p *Polynomial) Name() string { return "PolyKernel" }

func (p *Polynomial) Compute(a, b []float64) (float64, error) {
	d, err := dot(a, b)
	if err != nil {
		return 0, err
	}
	return math.Pow(d+p.Coef0, float64(p.Degree)), nil
}

func dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, sgo.ErrDimensionMismatch
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum, nil
}
