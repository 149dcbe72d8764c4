package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/FlavioCFOliveira/xornet/internal/dataset"
	"github.com/FlavioCFOliveira/xornet/internal/hostinfo"
	"github.com/FlavioCFOliveira/xornet/internal/net"
	"github.com/FlavioCFOliveira/xornet/internal/trainer"
)

func main() {
	epochs := flag.Int("epochs", trainer.DefaultEpochs, "Number of passes over the training set")
	lr := flag.Float64("lr", trainer.DefaultLearningRate, "Learning rate")
	logEvery := flag.Int("log-every", 0, "Print the epoch loss every N epochs (0 disables)")
	csvPath := flag.String("csv", "", "Write an epoch/loss CSV log to this path")
	dataPath := flag.String("data", "", "CSV truth table (in1,in2,target) to train on instead of XOR")
	header := flag.Bool("header", false, "The -data file starts with a header row")

	flag.Parse()

	var o trainer.Overrides
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "epochs":
			o.Epochs = epochs
		case "lr":
			o.LearningRate = lr
		case "log-every":
			o.LogEvery = logEvery
		case "csv":
			o.CSVPath = csvPath
		}
	})

	cfg := trainer.DefaultConfig()
	cfg.ApplyOverrides(o)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	examples := dataset.XOR()
	if *dataPath != "" {
		var err error
		examples, err = dataset.LoadCSV(*dataPath, 1, *header)
		if err != nil {
			log.Fatalf("load training data: %v", err)
		}
	}

	network := net.NewXOR()

	fmt.Println("=== XOR Training ===")
	fmt.Println(hostinfo.Detect())
	fmt.Printf("Network architecture: %d-%d-%d\n", network.InSize(), network.Layers()[0].OutSize(), network.OutSize())
	fmt.Printf("Epochs: %d, learning rate: %g, examples: %d\n", cfg.Epochs, cfg.LearningRate, len(examples))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := trainer.Run(ctx, network, examples, cfg); err != nil {
		log.Fatalf("training failed: %v", err)
	}

	fmt.Println("\nTraining result:")
	network.Summary(os.Stdout)

	fmt.Println()
	trainer.Report(os.Stdout, network, examples)
}
