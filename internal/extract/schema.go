package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ReconciliationTolerance is the maximum drift allowed between the stated
// total and the sum of line item amounts when reconciliation is enforced.
const ReconciliationTolerance = 0.01

// BuildExpenseFormSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing the payload the vision model returns for one form.
// Only key presence and the line-item shape are constrained; field types are
// left loose because the flattener coerces them later.
func BuildExpenseFormSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"required": []string{
			KeyDocumentID, KeyDate, KeySubmitter,
			KeyDepartment, KeyLineItems, KeyTotalAmount,
		},
		"properties": map[string]any{
			KeyLineItems: map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{KeyItemName, KeyItemAmount},
				},
			},
		},
	}
}

// ValidatorConfig holds behavior flags for the validator.
type ValidatorConfig struct {
	// EnforceTotalReconciliation turns on the sum-vs-total consistency
	// check. The product shipped with it off; leave the default unless a
	// requirement re-enables it.
	EnforceTotalReconciliation bool
}

// Validator checks candidate payloads against the expense-form schema before
// the rest of the pipeline trusts them.
type Validator struct {
	cfg    ValidatorConfig
	schema *jsonschema.Schema
	logger *slog.Logger
}

func NewValidator(cfg ValidatorConfig, logger *slog.Logger) (*Validator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := compileSchema(BuildExpenseFormSchema())
	if err != nil {
		return nil, fmt.Errorf("compile expense form schema: %w", err)
	}
	return &Validator{cfg: cfg, schema: schema, logger: logger}, nil
}

// Validate reports whether the candidate payload has the required shape.
// Rejections are logged, never raised: a false return is a business outcome,
// not a fault.
func (v *Validator) Validate(candidate map[string]any) bool {
	if err := v.schema.Validate(candidate); err != nil {
		v.logger.Warn("extract.validate.rejected", "error", err)
		return false
	}
	if v.cfg.EnforceTotalReconciliation {
		return v.reconcileTotal(candidate)
	}
	return true
}

// reconcileTotal checks that the stated total matches the sum of line item
// amounts within ReconciliationTolerance. Amounts that cannot be read as
// numbers are left for the flattener to report; only a readable, mismatched
// total rejects the payload.
func (v *Validator) reconcileTotal(m map[string]any) bool {
	items, _ := m[KeyLineItems].([]any)
	if len(items) == 0 {
		return true
	}

	var sum float64
	for _, it := range items {
		obj, _ := it.(map[string]any)
		f, err := coerceDecimal(obj[KeyItemAmount])
		if err != nil {
			return true
		}
		sum += f
	}
	total, err := coerceDecimal(m[KeyTotalAmount])
	if err != nil {
		return true
	}

	if math.Abs(sum-total) > ReconciliationTolerance {
		v.logger.Warn("extract.validate.total_mismatch", "sum", sum, "total", total)
		return false
	}
	return true
}

func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("schema.json")
}
