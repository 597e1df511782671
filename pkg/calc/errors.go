package calc

import "errors"

var (
	// ErrUnknownButton is returned when a key cannot be mapped to a Button.
	ErrUnknownButton = errors.New("unknown button")

	// ErrUnknownOperation is returned when decoding an invalid Operation.
	ErrUnknownOperation = errors.New("unknown operation")
)
