// Package activations provides the neuron nonlinearity.
package activations

import "math"

// Activation is an activation function with derivative.
type Activation interface {
	// Activate computes y = f(x)
	Activate(x float64) float64

	// Derivative computes f'(x) from the activated value y = f(x).
	// Passing the pre-activation x instead of y yields wrong gradients.
	Derivative(y float64) float64
}

// Sigmoid activation function.
type Sigmoid struct{}

// Activate computes 1 / (1 + e^-x)
func (s Sigmoid) Activate(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Derivative computes y * (1 - y) where y = sigmoid(x)
func (s Sigmoid) Derivative(y float64) float64 {
	return y * (1 - y)
}
