package net

import (
	"fmt"
	"io"
	"os"
)

// Callback defines the interface for training callbacks.
// loss is the mean per-example loss of the epoch that just ended.
type Callback interface {
	OnTrainBegin(n *Network)
	OnTrainEnd(n *Network)
	OnEpochBegin(epoch int, n *Network)
	OnEpochEnd(epoch int, loss float64, n *Network)
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

// OnTrainBegin does nothing.
func (c BaseCallback) OnTrainBegin(n *Network) {}

// OnTrainEnd does nothing.
func (c BaseCallback) OnTrainEnd(n *Network) {}

// OnEpochBegin does nothing.
func (c BaseCallback) OnEpochBegin(epoch int, n *Network) {}

// OnEpochEnd does nothing.
func (c BaseCallback) OnEpochEnd(epoch int, loss float64, n *Network) {}

// Logger logs training progress every Interval epochs.
// Output goes to W, or stdout when W is nil.
type Logger struct {
	BaseCallback
	Interval int
	W        io.Writer
}

// OnEpochEnd prints the epoch's mean loss when epoch is a multiple of
// Interval.
func (c Logger) OnEpochEnd(epoch int, loss float64, n *Network) {
	if c.Interval > 0 && epoch%c.Interval == 0 {
		w := c.W
		if w == nil {
			w = os.Stdout
		}
		fmt.Fprintf(w, "Epoch %d: loss = %.6f\n", epoch, loss)
	}
}
