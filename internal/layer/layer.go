// Package layer provides neural network layer implementations.
package layer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/xornet/internal/activations"
	"github.com/FlavioCFOliveira/xornet/internal/opt"
)

// Dot returns the dot product of a and b.
// Panics if the lengths differ.
func Dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// Neuron is a weighted-sum-plus-bias unit.
// len(Weights) is fixed at construction and must match the input size.
type Neuron struct {
	Weights []float64
	Bias    float64
}

// NewNeuron creates a neuron owning a copy of weights.
func NewNeuron(weights []float64, bias float64) Neuron {
	w := make([]float64, len(weights))
	copy(w, weights)
	return Neuron{Weights: w, Bias: bias}
}

// WeightedSum computes Weights·x + Bias.
func (n *Neuron) WeightedSum(x []float64) float64 {
	if len(x) != len(n.Weights) {
		panic(fmt.Sprintf("Neuron: got %d inputs, want %d", len(x), len(n.Weights)))
	}
	return Dot(n.Weights, x) + n.Bias
}

// Eval computes act(Weights·x + Bias). It does not modify the neuron.
func (n *Neuron) Eval(x []float64, act activations.Activation) float64 {
	return act.Activate(n.WeightedSum(x))
}

// Dense is a fully connected layer: every neuron sees the whole input.
type Dense struct {
	neurons []Neuron
	act     activations.Activation
	inSize  int
}

// NewDense creates a dense layer from explicit neurons.
// Panics if there are no neurons or if their input sizes differ.
func NewDense(act activations.Activation, neurons ...Neuron) *Dense {
	if len(neurons) == 0 {
		panic("Dense: layer needs at least one neuron")
	}
	in := len(neurons[0].Weights)
	for i := range neurons {
		if len(neurons[i].Weights) != in {
			panic(fmt.Sprintf("Dense: neuron %d has %d weights, want %d", i, len(neurons[i].Weights), in))
		}
	}
	return &Dense{
		neurons: neurons,
		act:     act,
		inSize:  in,
	}
}

// Forward evaluates every neuron against x.
// The returned slice is newly allocated; parameters are left untouched.
func (d *Dense) Forward(x []float64) []float64 {
	out := make([]float64, len(d.neurons))
	for o := range d.neurons {
		out[o] = d.neurons[o].Eval(x, d.act)
	}
	return out
}

// Gradient holds the loss gradient for one dense layer.
// Weights[o][i] is dL/dW for neuron o, input i; Biases[o] is dL/db.
type Gradient struct {
	Weights [][]float64
	Biases  []float64
}

// NewGradient allocates a zeroed gradient shaped like d.
func (d *Dense) NewGradient() *Gradient {
	g := &Gradient{
		Weights: make([][]float64, len(d.neurons)),
		Biases:  make([]float64, len(d.neurons)),
	}
	for o := range g.Weights {
		g.Weights[o] = make([]float64, d.inSize)
	}
	return g
}

// Flatten returns the gradient in the same order as Dense.Params.
func (g *Gradient) Flatten() []float64 {
	flat := make([]float64, 0, len(g.Biases)*(1+len(g.Weights[0])))
	for o := range g.Weights {
		flat = append(flat, g.Weights[o]...)
		flat = append(flat, g.Biases[o])
	}
	return flat
}

// Backward computes the layer gradient into g and returns dL/d(input).
//
// input and output are the values seen and produced by Forward for this
// example; grad is dL/d(output). Only current parameters are read, so
// calling Backward on every layer before Apply gives a consistent snapshot.
func (d *Dense) Backward(input, output, grad []float64, g *Gradient) []float64 {
	if len(input) != d.inSize {
		panic(fmt.Sprintf("Dense: got %d inputs, want %d", len(input), d.inSize))
	}
	if len(output) != len(d.neurons) || len(grad) != len(d.neurons) {
		panic("Dense: output and gradient must match neuron count")
	}

	gradIn := make([]float64, d.inSize)
	for o := range d.neurons {
		// dz = dL/dy * f'(y), using the cached activated output
		dz := grad[o] * d.act.Derivative(output[o])
		g.Biases[o] = dz
		floats.ScaleTo(g.Weights[o], dz, input)
		floats.AddScaled(gradIn, dz, d.neurons[o].Weights)
	}
	return gradIn
}

// Apply updates every weight and bias in place from g.
func (d *Dense) Apply(g *Gradient, o opt.Optimizer) {
	for i := range d.neurons {
		o.StepInPlace(d.neurons[i].Weights, g.Weights[i])
		d.neurons[i].Bias = o.Step(d.neurons[i].Bias, g.Biases[i])
	}
}

// Params returns all parameters flattened, neuron by neuron:
// weights followed by bias.
func (d *Dense) Params() []float64 {
	params := make([]float64, 0, len(d.neurons)*(d.inSize+1))
	for i := range d.neurons {
		params = append(params, d.neurons[i].Weights...)
		params = append(params, d.neurons[i].Bias)
	}
	return params
}

// SetParams updates weights and biases from a slice laid out like Params.
func (d *Dense) SetParams(params []float64) {
	if len(params) != len(d.neurons)*(d.inSize+1) {
		panic(fmt.Sprintf("Dense: got %d params, want %d", len(params), len(d.neurons)*(d.inSize+1)))
	}
	stride := d.inSize + 1
	for i := range d.neurons {
		copy(d.neurons[i].Weights, params[i*stride:i*stride+d.inSize])
		d.neurons[i].Bias = params[i*stride+d.inSize]
	}
}

// Neuron returns the i-th neuron. Mutating it changes the layer.
func (d *Dense) Neuron(i int) *Neuron {
	return &d.neurons[i]
}

// InSize returns the input size of the layer.
func (d *Dense) InSize() int {
	return d.inSize
}

// OutSize returns the output size of the layer.
func (d *Dense) OutSize() int {
	return len(d.neurons)
}

// Activation returns the activation function used by this layer.
func (d *Dense) Activation() activations.Activation {
	return d.act
}
