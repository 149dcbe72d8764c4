package trainer

import (
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
)

// Reference training knobs.
const (
	DefaultEpochs       = 1000000
	DefaultLearningRate = 0.1
	// DefaultCSVInterval is the CSV row interval used when LogEvery is 0.
	DefaultCSVInterval = 1000
)

// Config captures the runtime knobs for a training run.
type Config struct {
	// Epochs is the number of full passes over the training set.
	Epochs int
	// LearningRate scales every parameter update. Zero is allowed and
	// leaves the network untouched.
	LearningRate float64
	// LogEvery prints progress every N epochs; 0 disables it.
	LogEvery int
	// CSVPath, when set, receives an epoch/loss log. Rows are written
	// every LogEvery epochs, or every DefaultCSVInterval when LogEvery is 0.
	CSVPath string
	// Output receives progress lines. Nil means stdout.
	Output io.Writer
}

// Overrides captures CLI supplied values. Nil fields were not supplied.
type Overrides struct {
	Epochs       *int
	LearningRate *float64
	LogEvery     *int
	CSVPath      *string
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Epochs:       DefaultEpochs,
		LearningRate: DefaultLearningRate,
	}
}

// ApplyOverrides updates c with every supplied override, zero values
// included.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Epochs != nil {
		c.Epochs = *o.Epochs
	}
	if o.LearningRate != nil {
		c.LearningRate = *o.LearningRate
	}
	if o.LogEvery != nil {
		c.LogEvery = *o.LogEvery
	}
	if o.CSVPath != nil {
		c.CSVPath = *o.CSVPath
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Epochs <= 0 {
		return errors.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if math.IsNaN(c.LearningRate) || math.IsInf(c.LearningRate, 0) {
		return errors.Errorf("learning rate must be finite (got %v)", c.LearningRate)
	}
	if c.LearningRate < 0 {
		return errors.Errorf("learning rate must be >= 0 (got %v)", c.LearningRate)
	}
	if c.LogEvery < 0 {
		return errors.Errorf("log_every must be >= 0 (got %d)", c.LogEvery)
	}
	return nil
}

func (c *Config) output() io.Writer {
	if c.Output == nil {
		return os.Stdout
	}
	return c.Output
}
