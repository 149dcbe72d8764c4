// Package loss provides the training loss.
package loss

// BackwardInPlacer is an optional interface for loss functions that support
// in-place gradient computation to avoid allocations.
type BackwardInPlacer interface {
	BackwardInPlace(yPred, yTrue, grad []float64)
}

// Loss is a loss function with derivative.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue []float64) float64

	// Backward computes the gradient of the loss w.r.t. prediction.
	Backward(yPred, yTrue []float64) []float64
}

// SquaredError is the half sum of squared differences.
// Its gradient is the plain difference y_pred - y_true, so the output
// error signal of backpropagation is (y_true - y_pred) * f'(y) unscaled.
type SquaredError struct{}

// Forward computes 0.5 * sum((y_pred - y_true)^2)
func (s SquaredError) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("SquaredError: prediction and target must have same length")
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yPred[i] - yTrue[i]
		sum += diff * diff
	}
	return 0.5 * sum
}

// Backward computes gradient: dL/dy_pred = y_pred - y_true
func (s SquaredError) Backward(yPred, yTrue []float64) []float64 {
	grad := make([]float64, len(yPred))
	s.BackwardInPlace(yPred, yTrue, grad)
	return grad
}

// BackwardInPlace computes gradient and stores it in the grad slice.
func (s SquaredError) BackwardInPlace(yPred, yTrue, grad []float64) {
	n := len(yPred)
	if n != len(yTrue) || n != len(grad) {
		panic("SquaredError: slices must have same length")
	}

	for i := 0; i < n; i++ {
		grad[i] = yPred[i] - yTrue[i]
	}
}
