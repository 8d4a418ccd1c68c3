package jsonview

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload indicates the payload resembles neither a single-sheet nor a multi-sheet shape.
var ErrMalformedPayload = errors.New("malformed payload")

// ErrUnrenderableCell indicates a cell could not be turned into markup.
var ErrUnrenderableCell = errors.New("unrenderable cell")

// PayloadError describes a structural problem in the payload.
type PayloadError struct {
	Path   string // JSON path of the offending value, e.g. "$.sheet1.data[2]"
	Reason string
	Err    error
}

func (e *PayloadError) Error() string {
	msg := fmt.Sprintf("%v at %s: %s", ErrMalformedPayload, e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports ErrMalformedPayload so callers can match any PayloadError.
func (e *PayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

func newPayloadError(path, reason string) *PayloadError {
	return &PayloadError{Path: path, Reason: reason}
}

// CellError carries the position of a cell that failed to render.
type CellError struct {
	Sheet  string
	Row    int // zero-based body row index
	Column string
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("cell %q row %d in sheet %q: %v", e.Column, e.Row, e.Sheet, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}
