// Package net provides the feed-forward network and its training step.
package net

import (
	"fmt"
	"io"
	"strings"

	"github.com/FlavioCFOliveira/xornet/internal/activations"
	"github.com/FlavioCFOliveira/xornet/internal/layer"
	"github.com/FlavioCFOliveira/xornet/internal/loss"
	"github.com/FlavioCFOliveira/xornet/internal/opt"
)

// Network is an ordered sequence of dense layers.
// It is not safe for concurrent use; the trainer owns it for a run.
type Network struct {
	layers []*layer.Dense
	loss   loss.Loss

	// lossGrad is reused by Backprop when loss is a BackwardInPlacer.
	lossGrad []float64
}

// New creates a network from layers, checking that consecutive layers chain.
func New(l loss.Loss, layers ...*layer.Dense) *Network {
	if len(layers) == 0 {
		panic("Network: needs at least one layer")
	}
	for i := 1; i < len(layers); i++ {
		if layers[i-1].OutSize() != layers[i].InSize() {
			panic(fmt.Sprintf("Network: layer %d outputs %d values but layer %d takes %d",
				i-1, layers[i-1].OutSize(), i, layers[i].InSize()))
		}
	}
	n := &Network{
		layers: layers,
		loss:   l,
	}
	if _, ok := l.(loss.BackwardInPlacer); ok {
		n.lossGrad = make([]float64, n.OutSize())
	}
	return n
}

// NewXOR builds the default 2-2-1 sigmoid network with fixed initial
// parameters. The hidden neurons start as a soft OR and a soft AND so the
// two units are not symmetric; identical hidden units receive identical
// updates and can never separate XOR.
func NewXOR() *Network {
	sig := activations.Sigmoid{}
	hidden := layer.NewDense(sig,
		layer.NewNeuron([]float64{2, 2}, -1),
		layer.NewNeuron([]float64{2, 2}, -3),
	)
	output := layer.NewDense(sig,
		layer.NewNeuron([]float64{2, -2}, -0.5),
	)
	return New(loss.SquaredError{}, hidden, output)
}

// InSize returns the input dimensionality.
func (n *Network) InSize() int {
	return n.layers[0].InSize()
}

// OutSize returns the output dimensionality.
func (n *Network) OutSize() int {
	return n.layers[len(n.layers)-1].OutSize()
}

// Forward performs a forward pass through all layers.
// It never modifies parameters.
func (n *Network) Forward(x []float64) []float64 {
	curr := x
	for i := range n.layers {
		curr = n.layers[i].Forward(curr)
	}
	return curr
}

// Predict returns the scalar output of a single-output network.
func (n *Network) Predict(x []float64) float64 {
	if n.OutSize() != 1 {
		panic(fmt.Sprintf("Network: Predict needs a single output, have %d", n.OutSize()))
	}
	return n.Forward(x)[0]
}

// trace runs a forward pass keeping every layer's input and output.
// acts[0] is x and acts[i+1] is the output of layer i.
func (n *Network) trace(x []float64) [][]float64 {
	acts := make([][]float64, len(n.layers)+1)
	acts[0] = x
	for i := range n.layers {
		acts[i+1] = n.layers[i].Forward(acts[i])
	}
	return acts
}

// Backprop computes the loss gradient of every layer for one example and
// returns it together with the loss before any update.
// Parameters are not modified.
func (n *Network) Backprop(x, y []float64) ([]*layer.Gradient, float64) {
	acts := n.trace(x)
	out := acts[len(n.layers)]

	l := n.loss.Forward(out, y)
	var grad []float64
	if bip, ok := n.loss.(loss.BackwardInPlacer); ok {
		bip.BackwardInPlace(out, y, n.lossGrad)
		grad = n.lossGrad
	} else {
		grad = n.loss.Backward(out, y)
	}

	grads := make([]*layer.Gradient, len(n.layers))
	for i := len(n.layers) - 1; i >= 0; i-- {
		grads[i] = n.layers[i].NewGradient()
		grad = n.layers[i].Backward(acts[i], acts[i+1], grad, grads[i])
	}
	return grads, l
}

// Step applies gradients produced by Backprop to every layer.
func (n *Network) Step(grads []*layer.Gradient, o opt.Optimizer) {
	if len(grads) != len(n.layers) {
		panic("Network: gradient count must match layer count")
	}
	for i := range n.layers {
		n.layers[i].Apply(grads[i], o)
	}
}

// Train performs one stochastic gradient descent step on a single example
// and returns the squared-error loss measured before the update.
func (n *Network) Train(x, y []float64, learningRate float64) float64 {
	grads, l := n.Backprop(x, y)
	n.Step(grads, opt.SGD{LearningRate: learningRate})
	return l
}

// Params returns all network parameters flattened (copy).
func (n *Network) Params() []float64 {
	var params []float64
	for _, l := range n.layers {
		params = append(params, l.Params()...)
	}
	return params
}

// SetParams overwrites all parameters from a slice laid out like Params.
func (n *Network) SetParams(params []float64) {
	offset := 0
	for _, l := range n.layers {
		size := l.OutSize() * (l.InSize() + 1)
		if offset+size > len(params) {
			panic("Network: not enough params")
		}
		l.SetParams(params[offset : offset+size])
		offset += size
	}
	if offset != len(params) {
		panic("Network: too many params")
	}
}

// Layers returns the network's layers slice.
func (n *Network) Layers() []*layer.Dense {
	return n.layers
}

// Summary writes every layer's neurons with their weights and bias.
func (n *Network) Summary(w io.Writer) {
	fmt.Fprintln(w, "Network")
	fmt.Fprintln(w, strings.Repeat("_", 78))
	fmt.Fprintf(w, "%-12s %-10s %-8s %-32s %-12s\n", "Layer", "Activation", "Neuron", "Weights", "Bias")
	fmt.Fprintln(w, strings.Repeat("=", 78))

	total := 0
	for i, l := range n.layers {
		name := fmt.Sprintf("dense_%d", i)
		act := activationName(l.Activation())
		for j := 0; j < l.OutSize(); j++ {
			neuron := l.Neuron(j)
			fmt.Fprintf(w, "%-12s %-10s %-8d %-32s %-12.6f\n", name, act, j, formatWeights(neuron.Weights), neuron.Bias)
			total += len(neuron.Weights) + 1
		}
	}
	fmt.Fprintln(w, strings.Repeat("=", 78))
	fmt.Fprintf(w, "Total params: %d\n", total)
}

// activationName returns the bare type name of act, e.g. "Sigmoid".
func activationName(act activations.Activation) string {
	name := fmt.Sprintf("%T", act)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func formatWeights(ws []float64) string {
	s := "["
	for i, w := range ws {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%.6f", w)
	}
	return s + "]"
}
