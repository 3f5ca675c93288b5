package sgo

import "errors"

// ErrDimensionMismatch is returned when two feature vectors disagree in length.
var ErrDimensionMismatch = errors.New("feature dimension mismatch")

// ErrNotTrained is returned when a machine is applied before it was trained.
var ErrNotTrained = errors.New("machine is not trained")

// Object is the root type of every exported class.
type Object interface {
	// Name returns the class name of the object.
	Name() string
}

// Kernel computes a similarity between two feature vectors.
type Kernel interface {
	Object
	Compute(a, b []float64) (float64, error)
}

// Machine is a trainable predictor.
type Machine interface {
	Object
	Train(features [][]float64, labels []float64) error
	Apply(features [][]float64) ([]float64, error)
}
