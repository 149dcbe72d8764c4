// Package dataset provides labelled training examples.
package dataset

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Example is a labelled training pair.
type Example struct {
	Input  []float64
	Target []float64
}

// XOR returns the four XOR examples in fixed order:
// (0,0)->0, (0,1)->1, (1,0)->1, (1,1)->0.
func XOR() []Example {
	return []Example{
		{Input: []float64{0, 0}, Target: []float64{0}},
		{Input: []float64{0, 1}, Target: []float64{1}},
		{Input: []float64{1, 0}, Target: []float64{1}},
		{Input: []float64{1, 1}, Target: []float64{0}},
	}
}

// Check verifies every example matches the given input and target sizes.
func Check(examples []Example, inSize, outSize int) error {
	if len(examples) == 0 {
		return errors.New("dataset: no examples")
	}
	for i, ex := range examples {
		if len(ex.Input) != inSize {
			return errors.Errorf("dataset: example %d has %d inputs, want %d", i, len(ex.Input), inSize)
		}
		if len(ex.Target) != outSize {
			return errors.Errorf("dataset: example %d has %d targets, want %d", i, len(ex.Target), outSize)
		}
	}
	return nil
}

// LoadCSV loads examples from a CSV file.
// The last numTargets columns of each row are the target, the rest the
// input. hasHeader skips the first line if true. Row order is preserved.
func LoadCSV(filename string, numTargets int, hasHeader bool) ([]Example, error) {
	if numTargets <= 0 {
		return nil, errors.Errorf("dataset: numTargets must be > 0, got %d", numTargets)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "dataset: open csv")
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "dataset: read csv")
	}

	startRow := 0
	if hasHeader {
		startRow = 1
	}
	if len(records) <= startRow {
		return nil, errors.New("dataset: csv file has no data rows")
	}

	numCols := len(records[startRow])
	if numCols <= numTargets {
		return nil, errors.Errorf("dataset: %d columns leave no inputs for %d targets", numCols, numTargets)
	}

	examples := make([]Example, 0, len(records)-startRow)
	for i := startRow; i < len(records); i++ {
		record := records[i]
		if len(record) != numCols {
			return nil, errors.Errorf("dataset: inconsistent number of columns at row %d", i)
		}

		values := make([]float64, numCols)
		for j, valStr := range record {
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "dataset: parse value at row %d, col %d", i, j)
			}
			values[j] = val
		}

		split := numCols - numTargets
		examples = append(examples, Example{
			Input:  values[:split:split],
			Target: values[split:],
		})
	}

	return examples, nil
}
