package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/expenseflow/expenseflow/constants"
	"github.com/expenseflow/expenseflow/internal/common"
	"github.com/expenseflow/expenseflow/internal/export"
	"github.com/expenseflow/expenseflow/internal/extract"
	"github.com/expenseflow/expenseflow/internal/llm/qwen"
	"github.com/expenseflow/expenseflow/internal/processor"
	"github.com/expenseflow/expenseflow/internal/storage"
)

func main() {
	var (
		envFile  = flag.String("env", ".env", "path to env file (optional)")
		timeout  = flag.Duration("timeout", 2*time.Minute, "per-image processing timeout")
		listOnly = flag.Bool("list", false, "list stored workbooks and exit")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if !*listOnly && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: expenseflow [-env .env] <image> [image ...]")
		fmt.Fprintln(os.Stderr, "       expenseflow [-env .env] -list")
		os.Exit(2)
	}

	if err := godotenv.Load(*envFile); err != nil {
		logger.Warn("env file not loaded", "path", *envFile, "error", err)
	}
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config invalid", "error", err)
		os.Exit(2)
	}

	// Collaborators are built exactly once and handed in; nothing is
	// lazily constructed per request.
	vision := qwen.NewClient(qwen.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	validator, err := extract.NewValidator(extract.ValidatorConfig{
		EnforceTotalReconciliation: cfg.Extract.EnforceTotalReconciliation,
	}, logger)
	if err != nil {
		logger.Error("build validator", "error", err)
		os.Exit(1)
	}
	pipeline := extract.NewPipeline(validator, logger)
	exporter := export.NewService(logger)

	store, err := storage.NewManager(storage.Config{
		Host:      cfg.Storage.Host,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Secure:    cfg.Storage.Secure,
		URLExpiry: cfg.Storage.URLExpiry,
	}, logger)
	if err != nil {
		logger.Error("build storage", "error", err)
		os.Exit(1)
	}
	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.EnsureBucket(bootCtx); err != nil {
		cancel()
		logger.Error("ensure bucket", "error", err)
		os.Exit(1)
	}
	cancel()

	if *listOnly {
		listCtx, cancelList := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelList()
		names, err := store.ListWorkbooks(listCtx)
		if err != nil {
			logger.Error("list workbooks", "error", err)
			os.Exit(1)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	proc := processor.NewProcessor(processor.Config{
		MaxImageDimension: cfg.Image.MaxDimension,
		EnhanceContrast:   cfg.Image.EnhanceContrast,
	}, vision, pipeline, exporter, store, logger)

	failures := 0
	for _, path := range flag.Args() {
		if !constants.IsAllowedExt(filepath.Ext(path)) {
			logger.Error("unsupported file type", "path", path)
			failures++
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read file", "path", path, "error", err)
			failures++
			continue
		}

		runCtx, cancelRun := context.WithTimeout(context.Background(), *timeout)
		res, err := proc.ProcessImage(runCtx, data, filepath.Base(path))
		cancelRun()
		if err != nil {
			logger.Error("recognition failed", "path", path, "error", err)
			fmt.Printf("%s: recognition failed: %v\n", path, err)
			failures++
			continue
		}
		fmt.Printf("%s: %d rows -> %s\n", path, len(res.Rows), res.FileURL)
	}

	if failures > 0 {
		os.Exit(1)
	}
}
