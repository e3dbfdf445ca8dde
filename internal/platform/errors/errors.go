package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrStorage      = errors.New("storage error")
	ErrNoPlan       = errors.New("no plan generated yet")
)
