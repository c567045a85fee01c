// Command extract runs the parse/validate/flatten pipeline over a saved
// model response, for debugging extractions without the vision API or
// object storage.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/expenseflow/expenseflow/internal/extract"
)

func main() {
	var (
		inFile    = flag.String("in", "-", "file with raw model text, - for stdin")
		reconcile = flag.Bool("reconcile", false, "enforce total-vs-items reconciliation")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var raw []byte
	var err error
	if *inFile == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(*inFile)
	}
	if err != nil {
		logger.Error("read input", "error", err)
		os.Exit(2)
	}

	validator, err := extract.NewValidator(extract.ValidatorConfig{
		EnforceTotalReconciliation: *reconcile,
	}, logger)
	if err != nil {
		logger.Error("build validator", "error", err)
		os.Exit(1)
	}

	rows, err := extract.NewPipeline(validator, logger).Process(string(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "recognition failed: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		logger.Error("encode rows", "error", err)
		os.Exit(1)
	}
}
