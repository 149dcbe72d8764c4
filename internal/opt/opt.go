// Package opt provides optimization algorithms.
package opt

// Optimizer updates network parameters based on gradients.
type Optimizer interface {
	// Step returns the updated value of a single parameter.
	Step(param, gradient float64) float64

	// StepInPlace updates params in-place: params = params - lr * gradients
	StepInPlace(params, gradients []float64)
}

// SGD (Stochastic Gradient Descent) optimizer.
// A zero LearningRate leaves parameters unchanged.
type SGD struct {
	LearningRate float64
}

// Step computes param - lr * gradient
func (s SGD) Step(param, gradient float64) float64 {
	return param - s.LearningRate*gradient
}

// StepInPlace updates params in-place: params = params - lr * gradients
func (s SGD) StepInPlace(params, gradients []float64) {
	if len(params) != len(gradients) {
		panic("SGD: params and gradients must have same length")
	}
	for i := range params {
		params[i] -= s.LearningRate * gradients[i]
	}
}
