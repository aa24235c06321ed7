package session

import "errors"

var (
	ErrNothingExtracted = errors.New("nothing importable was extracted")
	ErrBatchInvalid     = errors.New("batch has validation errors")
	ErrNotResolved      = errors.New("conflicts have not been resolved")
)
