package binder

import "errors"

var (
	ErrInvalidQuery = errors.New("invalid query parameter")
	ErrInvalidPath  = errors.New("invalid path parameter")
)
