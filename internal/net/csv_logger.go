package net

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// CSVLogger logs training progress to a CSV file.
// Rows are written every Interval epochs (every epoch when Interval <= 0).
type CSVLogger struct {
	BaseCallback
	Filename string
	Append   bool
	Interval int
	RunID    string

	file   *os.File
	writer *csv.Writer
	start  time.Time
	err    error
}

// NewCSVLogger creates a new CSVLogger with a fresh run id.
func NewCSVLogger(filename string, append bool) *CSVLogger {
	return &CSVLogger{
		Filename: filename,
		Append:   append,
		RunID:    uuid.NewString(),
	}
}

// Err returns the first error met while opening or writing the file.
func (c *CSVLogger) Err() error {
	return c.err
}

func (c *CSVLogger) OnTrainBegin(n *Network) {
	mode := os.O_CREATE | os.O_WRONLY
	if c.Append {
		mode |= os.O_APPEND
	} else {
		mode |= os.O_TRUNC
	}

	file, err := os.OpenFile(c.Filename, mode, 0644)
	if err != nil {
		c.err = errors.Wrapf(err, "csv logger: open %s", c.Filename)
		return
	}
	c.file = file
	c.writer = csv.NewWriter(file)
	c.start = time.Now()

	// Write header if not appending or if file is empty
	info, err := file.Stat()
	if err == nil && (info.Size() == 0 || !c.Append) {
		c.write([]string{"run_id", "epoch", "loss", "time_seconds"})
	}
}

func (c *CSVLogger) OnEpochEnd(epoch int, loss float64, n *Network) {
	if c.writer == nil {
		return
	}
	if c.Interval > 0 && epoch%c.Interval != 0 {
		return
	}

	elapsed := time.Since(c.start).Seconds()
	c.write([]string{
		c.RunID,
		strconv.Itoa(epoch),
		fmt.Sprintf("%.6f", loss),
		fmt.Sprintf("%.2f", elapsed),
	})
}

func (c *CSVLogger) OnTrainEnd(n *Network) {
	if c.file == nil {
		return
	}
	c.writer.Flush()
	if err := c.writer.Error(); err != nil && c.err == nil {
		c.err = errors.Wrap(err, "csv logger: flush")
	}
	if err := c.file.Close(); err != nil && c.err == nil {
		c.err = errors.Wrap(err, "csv logger: close")
	}
	c.file = nil
	c.writer = nil
}

func (c *CSVLogger) write(record []string) {
	if err := c.writer.Write(record); err != nil && c.err == nil {
		c.err = errors.Wrap(err, "csv logger: write record")
		return
	}
	c.writer.Flush()
}
