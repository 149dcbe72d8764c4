// Package xornet is the public entry point to the XOR network.
package xornet

import (
	"context"

	"github.com/FlavioCFOliveira/xornet/internal/activations"
	"github.com/FlavioCFOliveira/xornet/internal/dataset"
	"github.com/FlavioCFOliveira/xornet/internal/layer"
	"github.com/FlavioCFOliveira/xornet/internal/loss"
	"github.com/FlavioCFOliveira/xornet/internal/net"
	"github.com/FlavioCFOliveira/xornet/internal/trainer"
)

// Re-export common types and functions for easier access
type (
	Network  = net.Network
	Layer    = layer.Dense
	Neuron   = layer.Neuron
	Example  = dataset.Example
	Config   = trainer.Config
	Callback = net.Callback
)

// Activations
var Sigmoid = activations.Sigmoid{}

// Losses
var SquaredError = loss.SquaredError{}

// NewXOR returns the default 2-2-1 network with fixed initial parameters.
func NewXOR() *Network {
	return net.NewXOR()
}

// NewNetwork chains layers into a network trained on squared error.
func NewNetwork(layers ...*Layer) *Network {
	return net.New(SquaredError, layers...)
}

// Dense builds a sigmoid layer from explicit neurons.
func Dense(neurons ...Neuron) *Layer {
	return layer.NewDense(Sigmoid, neurons...)
}

// NewNeuron builds a neuron owning a copy of weights.
func NewNeuron(weights []float64, bias float64) Neuron {
	return layer.NewNeuron(weights, bias)
}

// XOR returns the four XOR training examples in fixed order.
func XOR() []Example {
	return dataset.XOR()
}

// DefaultConfig returns the reference training configuration.
func DefaultConfig() Config {
	return trainer.DefaultConfig()
}

// Train runs the fixed-length training loop.
func Train(ctx context.Context, n *Network, examples []Example, cfg Config, callbacks ...Callback) error {
	return trainer.Run(ctx, n, examples, cfg, callbacks...)
}

// Callbacks
func Logger(interval int) net.Logger {
	return net.Logger{Interval: interval}
}

func CSVLogger(filename string) *net.CSVLogger {
	return net.NewCSVLogger(filename, false)
}
