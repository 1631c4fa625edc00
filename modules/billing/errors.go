package billing

import "errors"

var (
	ErrNilStore      = errors.New("billing module: store is required")
	ErrNilTranslator = errors.New("billing module: translator is required")
	ErrNoStream      = errors.New("billing module: no event stream in context")
	ErrClosed        = errors.New("billing module: service closed")
)
