package trainer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FlavioCFOliveira/xornet/internal/dataset"
	"github.com/FlavioCFOliveira/xornet/internal/net"
)

// recorder counts callback invocations.
type recorder struct {
	net.BaseCallback
	begins, ends, epochBegins int
	epochs                    []int
	losses                    []float64
}

func (r *recorder) OnTrainBegin(n *net.Network)            { r.begins++ }
func (r *recorder) OnTrainEnd(n *net.Network)              { r.ends++ }
func (r *recorder) OnEpochBegin(epoch int, n *net.Network) { r.epochBegins++ }
func (r *recorder) OnEpochEnd(epoch int, loss float64, n *net.Network) {
	r.epochs = append(r.epochs, epoch)
	r.losses = append(r.losses, loss)
}

func TestRunCallbacks(t *testing.T) {
	rec := &recorder{}
	cfg := Config{Epochs: 5, LearningRate: 0.1}

	if err := Run(context.Background(), net.NewXOR(), dataset.XOR(), cfg, rec); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rec.begins != 1 || rec.ends != 1 {
		t.Errorf("begin/end = %d/%d, want 1/1", rec.begins, rec.ends)
	}
	if rec.epochBegins != 5 || len(rec.epochs) != 5 {
		t.Fatalf("epoch callbacks = %d/%d, want 5/5", rec.epochBegins, len(rec.epochs))
	}
	for i, e := range rec.epochs {
		if e != i+1 {
			t.Errorf("epoch %d reported as %d", i+1, e)
		}
	}
	for i, l := range rec.losses {
		if l <= 0 || math.IsNaN(l) {
			t.Errorf("epoch %d loss = %v", i+1, l)
		}
	}
}

// TestRunMatchesManualLoop tests that Run presents examples once per epoch
// in fixed order.
func TestRunMatchesManualLoop(t *testing.T) {
	const epochs = 300
	examples := dataset.XOR()

	viaRun := net.NewXOR()
	if err := Run(context.Background(), viaRun, examples, Config{Epochs: epochs, LearningRate: 0.1}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	manual := net.NewXOR()
	for e := 0; e < epochs; e++ {
		for _, ex := range examples {
			manual.Train(ex.Input, ex.Target, 0.1)
		}
	}

	a, b := viaRun.Params(), manual.Params()
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			t.Errorf("param %d: Run %v, manual %v", i, a[i], b[i])
		}
	}
}

// TestRunDeterministic tests that two runs give bit-identical parameters.
func TestRunDeterministic(t *testing.T) {
	cfg := Config{Epochs: 2000, LearningRate: 0.1}
	a, b := net.NewXOR(), net.NewXOR()

	if err := Run(context.Background(), a, dataset.XOR(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := Run(context.Background(), b, dataset.XOR(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	pa, pb := a.Params(), b.Params()
	for i := range pa {
		if math.Float64bits(pa[i]) != math.Float64bits(pb[i]) {
			t.Errorf("param %d differs: %v vs %v", i, pa[i], pb[i])
		}
	}
}

// TestRunXOR tests the end-to-end scenario with the reference learning rate.
func TestRunXOR(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long XOR training in short mode")
	}

	n := net.NewXOR()
	examples := dataset.XOR()
	if err := Run(context.Background(), n, examples, Config{Epochs: 100000, LearningRate: DefaultLearningRate}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, ex := range examples {
		pred := n.Predict(ex.Input)
		if ex.Target[0] == 0 && pred >= 0.1 {
			t.Errorf("XOR%v = %v, want < 0.1", ex.Input, pred)
		}
		if ex.Target[0] == 1 && pred <= 0.9 {
			t.Errorf("XOR%v = %v, want > 0.9", ex.Input, pred)
		}
	}
}

func TestRunZeroLearningRate(t *testing.T) {
	n := net.NewXOR()
	before := n.Params()

	if err := Run(context.Background(), n, dataset.XOR(), Config{Epochs: 10}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	after := n.Params()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("param %d changed from %v to %v", i, before[i], after[i])
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recorder{}
	n := net.NewXOR()
	before := n.Params()

	err := Run(ctx, n, dataset.XOR(), Config{Epochs: 10, LearningRate: 0.1}, rec)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if rec.ends != 1 {
		t.Errorf("OnTrainEnd called %d times, want 1", rec.ends)
	}
	if after := n.Params(); after[0] != before[0] {
		t.Error("cancelled run should not train")
	}
}

// TestRunConfigLoggers tests that LogEvery and CSVPath produce output
// without any explicit callback.
func TestRunConfigLoggers(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "log.csv")
	cfg := Config{Epochs: 6, LearningRate: 0.1, LogEvery: 2, CSVPath: path, Output: &buf}

	if err := Run(context.Background(), net.NewXOR(), dataset.XOR(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Run id: ", "Epoch 2: loss = ", "Epoch 4: loss = ", "Epoch 6: loss = "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Epoch 3:") {
		t.Errorf("epoch 3 should not be logged:\n%s", out)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("CSV log not written: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read CSV log: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d records", len(records))
	}
	if records[0][0] != "run_id" {
		t.Errorf("header = %v", records[0])
	}
	if !strings.Contains(out, "Run id: "+records[1][0]) {
		t.Errorf("printed run id does not match CSV run id %q", records[1][0])
	}
	if records[3][1] != "6" {
		t.Errorf("last row epoch = %s, want 6", records[3][1])
	}
}

func TestRunCSVDefaultInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	cfg := Config{Epochs: 2 * DefaultCSVInterval, LearningRate: 0.1, CSVPath: path, Output: &bytes.Buffer{}}

	if err := Run(context.Background(), net.NewXOR(), dataset.XOR(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("CSV log not written: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 3 {
		t.Errorf("expected header + 2 rows, got %d lines", len(lines))
	}
}

func TestRunCSVOpenFailure(t *testing.T) {
	n := net.NewXOR()
	before := n.Params()
	cfg := Config{
		Epochs:       10,
		LearningRate: 0.1,
		CSVPath:      filepath.Join(t.TempDir(), "missing", "log.csv"),
		Output:       &bytes.Buffer{},
	}

	if err := Run(context.Background(), n, dataset.XOR(), cfg); err == nil {
		t.Fatal("expected error for unwritable CSV path")
	}
	if after := n.Params(); after[0] != before[0] {
		t.Error("run with a broken CSV log should not train")
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	n := net.NewXOR()

	if err := Run(context.Background(), n, dataset.XOR(), Config{Epochs: 0, LearningRate: 0.1}); err == nil {
		t.Error("expected error for zero epochs")
	}

	bad := []dataset.Example{{Input: []float64{1, 0, 1}, Target: []float64{1}}}
	if err := Run(context.Background(), n, bad, Config{Epochs: 1, LearningRate: 0.1}); err == nil {
		t.Error("expected error for mismatched example size")
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, net.NewXOR(), dataset.XOR())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "prediction for [0 1]: [") || !strings.HasSuffix(lines[1], "target: [1]") {
		t.Errorf("unexpected report line %q", lines[1])
	}
}
