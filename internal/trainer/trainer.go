// Package trainer runs the fixed-length online training loop.
package trainer

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/xornet/internal/dataset"
	"github.com/FlavioCFOliveira/xornet/internal/net"
)

// Run trains n for cfg.Epochs passes over examples, one SGD step per
// example, always in the given order. There is no shuffling and no early
// stop. The context is only consulted between epochs.
//
// cfg.LogEvery and cfg.CSVPath add a progress Logger and a CSVLogger after
// the given callbacks. A CSV log that cannot be opened or written fails the
// run.
//
// Run owns n until it returns.
func Run(ctx context.Context, n *net.Network, examples []dataset.Example, cfg Config, callbacks ...net.Callback) (err error) {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "trainer")
	}
	if err := dataset.Check(examples, n.InSize(), n.OutSize()); err != nil {
		return errors.Wrap(err, "trainer")
	}

	callbacks, csvLog := configCallbacks(&cfg, callbacks)

	for _, cb := range callbacks {
		cb.OnTrainBegin(n)
	}
	defer func() {
		for _, cb := range callbacks {
			cb.OnTrainEnd(n)
		}
		if err == nil && csvLog != nil {
			err = errors.Wrap(csvLog.Err(), "trainer")
		}
	}()

	if csvLog != nil {
		if err := csvLog.Err(); err != nil {
			return errors.Wrap(err, "trainer")
		}
		fmt.Fprintf(cfg.output(), "Run id: %s\n", csvLog.RunID)
	}

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "trainer: stopped before epoch %d", epoch)
		}

		for _, cb := range callbacks {
			cb.OnEpochBegin(epoch, n)
		}

		var total float64
		for _, ex := range examples {
			total += n.Train(ex.Input, ex.Target, cfg.LearningRate)
		}

		mean := total / float64(len(examples))
		for _, cb := range callbacks {
			cb.OnEpochEnd(epoch, mean, n)
		}
	}

	return nil
}

// configCallbacks appends the loggers requested by cfg to a copy of
// callbacks. The returned CSVLogger is nil when cfg.CSVPath is empty.
func configCallbacks(cfg *Config, callbacks []net.Callback) ([]net.Callback, *net.CSVLogger) {
	all := make([]net.Callback, 0, len(callbacks)+2)
	all = append(all, callbacks...)

	if cfg.LogEvery > 0 {
		all = append(all, net.Logger{Interval: cfg.LogEvery, W: cfg.output()})
	}
	if cfg.CSVPath == "" {
		return all, nil
	}

	csvLog := net.NewCSVLogger(cfg.CSVPath, false)
	csvLog.Interval = cfg.LogEvery
	if csvLog.Interval == 0 {
		csvLog.Interval = DefaultCSVInterval
	}
	return append(all, csvLog), csvLog
}

// Report writes each example's prediction next to its target.
func Report(w io.Writer, n *net.Network, examples []dataset.Example) {
	for _, ex := range examples {
		fmt.Fprintf(w, "prediction for %v: %.6f, target: %v\n", ex.Input, n.Forward(ex.Input), ex.Target)
	}
}
