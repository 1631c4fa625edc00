package prompt

import "errors"

var (
	ErrPromptNotFound = errors.New("prompt not found or already closed")
	ErrInvalidChoice  = errors.New("choice is out of range")
	ErrNoOptions      = errors.New("prompt needs at least one option")
)
