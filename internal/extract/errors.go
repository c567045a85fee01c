package extract

import (
	"errors"
	"fmt"
)

// Stage names used in StageError.
const (
	StageParse    = "parse"
	StageValidate = "validate"
	StageFlatten  = "flatten"
)

// Sentinel errors for the extraction pipeline.
var (
	// ErrNoJSONFound means the model response contains no '{'..'}' pair.
	ErrNoJSONFound = errors.New("no JSON object found in model response")
	// ErrMalformedJSON means both the strict decode and the single-quote
	// repair pass failed.
	ErrMalformedJSON = errors.New("malformed JSON in model response")
	// ErrInvalidShape means the validator rejected the candidate payload.
	ErrInvalidShape = errors.New("extraction payload has invalid shape")
	// ErrBadLineItem means an amount could not be coerced to a number.
	ErrBadLineItem = errors.New("amount is not numeric")
)

// StageError reports which pipeline stage failed and why. The message is
// human-readable so the presentation layer can surface it as-is.
type StageError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *StageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

func stageErr(stage, message string, cause error) *StageError {
	return &StageError{Stage: stage, Message: message, Cause: cause}
}
