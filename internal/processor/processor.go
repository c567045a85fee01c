package processor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/expenseflow/expenseflow/internal/export"
	"github.com/expenseflow/expenseflow/internal/extract"
	"github.com/expenseflow/expenseflow/internal/imageprep"
	"github.com/expenseflow/expenseflow/internal/llm"
)

// Result is what one processed image produces: the validated record, its
// export rows, and the download URL of the stored workbook.
type Result struct {
	Record  extract.ExtractionRecord
	Rows    []extract.FlatRow
	FileURL string
}

// WorkbookStore is the narrow save contract toward object storage.
type WorkbookStore interface {
	SaveWorkbook(ctx context.Context, data []byte, submitter, documentID string) (string, error)
}

// Config holds behavior flags for image preprocessing.
type Config struct {
	MaxImageDimension int
	EnhanceContrast   bool
}

// Processor coordinates the collaborators around the extraction pipeline:
// image prep, vision model, parse/validate/flatten, workbook render, upload.
// Every dependency is injected once at construction; there is no hidden
// session state, so concurrent ProcessImage calls are independent.
type Processor struct {
	logger   *slog.Logger
	cfg      Config
	vision   llm.VisionExtractor
	pipeline *extract.Pipeline
	exporter *export.Service
	store    WorkbookStore
}

func NewProcessor(
	cfg Config,
	vision llm.VisionExtractor,
	pipeline *extract.Pipeline,
	exporter *export.Service,
	store WorkbookStore,
	logger *slog.Logger,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:   logger,
		cfg:      cfg,
		vision:   vision,
		pipeline: pipeline,
		exporter: exporter,
		store:    store,
	}
}

// ProcessImage runs one uploaded image end to end. Pipeline failures come
// back as typed extract errors; collaborator failures are wrapped with the
// failing step's name.
func (p *Processor) ProcessImage(ctx context.Context, imageData []byte, filename string) (Result, error) {
	start := time.Now()

	prepped, err := imageprep.Preprocess(imageData, p.cfg.MaxImageDimension)
	if err != nil {
		return Result{}, fmt.Errorf("preprocess image: %w", err)
	}
	if p.cfg.EnhanceContrast {
		enhanced, err := imageprep.Enhance(prepped)
		if err != nil {
			// enhancement is best-effort; the plain image still works
			p.logger.Warn("processor.enhance.failed", "filename", filename, "error", err)
		} else {
			prepped = enhanced
		}
	}

	rawText, err := p.vision.ExtractExpenseForm(ctx, llm.ExtractRequest{Image: prepped, Filename: filename})
	if err != nil {
		return Result{}, fmt.Errorf("vision extract: %w", err)
	}

	rec, err := p.pipeline.Extract(rawText)
	if err != nil {
		return Result{}, err
	}
	rows, err := extract.Flatten(rec, p.logger)
	if err != nil {
		return Result{}, err
	}

	wb, err := p.exporter.WorkbookBytes(rows)
	if err != nil {
		return Result{}, fmt.Errorf("render workbook: %w", err)
	}

	fileURL, err := p.store.SaveWorkbook(ctx, wb, rec.Submitter, rec.DocumentID)
	if err != nil {
		return Result{}, fmt.Errorf("store workbook: %w", err)
	}

	p.logger.Info("processor.ok",
		"filename", filename,
		"document_id", rec.DocumentID,
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Result{Record: rec, Rows: rows, FileURL: fileURL}, nil
}
