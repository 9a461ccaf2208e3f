package registry

import "errors"

var (
	// ErrInvalidPriority rejects a priority outside the configured range.
	ErrInvalidPriority = errors.New("priority outside configured range")

	// ErrStackTooLarge rejects a stack request beyond the per-task quantum.
	ErrStackTooLarge = errors.New("stack size exceeds per-task quantum")

	// ErrPoolExhausted signals that no free task slot remains.
	ErrPoolExhausted = errors.New("no free task slot available")

	// ErrNotFound signals an unknown task id.
	ErrNotFound = errors.New("task not found")
)
