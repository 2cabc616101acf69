package apperrors

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrDataCorruption       = errors.New("data corruption")
	ErrNoActiveWeek         = errors.New("no active routine")
)
