package extract

import "log/slog"

// Pipeline sequences parse -> validate -> project -> flatten for one raw
// model response. It holds no cross-call state, so one instance is safe for
// concurrent use.
type Pipeline struct {
	logger    *slog.Logger
	validator *Validator
}

func NewPipeline(validator *Validator, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger, validator: validator}
}

// Extract parses and validates one raw model response and projects it into
// the typed record. The generic payload is never exposed to callers.
func (p *Pipeline) Extract(raw string) (ExtractionRecord, error) {
	m, err := ParseResponse(raw)
	if err != nil {
		p.logger.Error("extract.parse.failed", "error", err)
		return ExtractionRecord{}, stageErr(StageParse, "unrecognized model response", err)
	}
	if !p.validator.Validate(m) {
		return ExtractionRecord{}, stageErr(StageValidate, "shape invalid", ErrInvalidShape)
	}
	return ProjectRecord(m), nil
}

// Process runs the full pipeline and returns the export rows.
func (p *Pipeline) Process(raw string) ([]FlatRow, error) {
	rec, err := p.Extract(raw)
	if err != nil {
		return nil, err
	}
	rows, err := Flatten(rec, p.logger)
	if err != nil {
		p.logger.Error("extract.flatten.failed", "document_id", rec.DocumentID, "error", err)
		return nil, err
	}
	p.logger.Info("extract.ok", "document_id", rec.DocumentID, "rows", len(rows))
	return rows, nil
}
