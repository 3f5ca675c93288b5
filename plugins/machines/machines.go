package machines

import (
	"errors"
	"fmt"

	"github.com/vk/sgoplug/sgo"
)

var errNoSamples = errors.New("no training samples")

// Perceptron is a binary linear classifier predicting -1 or +1.
type Perceptron struct {
	Epochs       int
	LearningRate float64

	weights []float64
	bias    float64
}

// NewPerceptron returns a perceptron with 100 epochs and learning rate 1.
func NewPerceptron() *Perceptron {
	return &Perceptron{Epochs: 100, LearningRate: 1}
}

func (p *Perceptron) Name() string { return "Perceptron" }

// Train fits the weights on features labelled -1 or +1.
func (p *Perceptron) Train(features [][]float64, labels []float64) error {
	if len(features) == 0 {
		return errNoSamples
	}
	if len(features) != len(labels) {
		return fmt.Errorf("%w: %d samples, %d labels", sgo.ErrDimensionMismatch, len(features), len(labels))
	}
	dim := len(features[0])
	p.weights = make([]float64, dim)
	p.bias = 0
	for epoch := 0; epoch < p.Epochs; epoch++ {
		mistakes := 0
		for i, x := range features {
			if len(x) != dim {
				return sgo.ErrDimensionMismatch
			}
			if sign(p.score(x)) != labels[i] {
				for j := range p.weights {
					p.weights[j] += p.LearningRate * labels[i] * x[j]
				}
				p.bias += p.LearningRate * labels[i]
				mistakes++
			}
		}
		if mistakes == 0 {
			break
		}
	}
	return nil
}

func (p *Perceptron) Apply(features [][]float64) ([]float64, error) {
	if p.weights == nil {
		return nil, sgo.ErrNotTrained
	}
	out := make([]float64, len(features))
	for i, x := range features {
		if len(x) != len(p.weights) {
			return nil, sgo.ErrDimensionMismatch
		}
		out[i] = sign(p.score(x))
	}
	return out, nil
}

func (p *Perceptron) score(x []float64) float64 {
	s := p.bias
	for j, w := range p.weights {
		s += w * x[j]
	}
	return s
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}

// MeanRegressor predicts the mean training label for every sample.
type MeanRegressor struct {
	mean    float64
	trained bool
}

func NewMeanRegressor() *MeanRegressor {
	return &MeanRegressor{}
}

func (m *MeanRegressor) Name() string { return "MeanRegressor" }

func (m *MeanRegressor) Train(_ [][]float64, labels []float64) error {
	if len(labels) == 0 {
		return errNoSamples
	}
	var sum float64
	for _, l := range labels {
		sum += l
	}
	m.mean = sum / float64(len(labels))
	m.trained = true
	return nil
}

func (m *MeanRegressor) Apply(features [][]float64) ([]float64, error) {
	if !m.trained {
		return nil, sgo.ErrNotTrained
	}
	out := make([]float64, len(features))
	for i := range out {
		out[i] = m.mean
	}
	return out, nil
}
