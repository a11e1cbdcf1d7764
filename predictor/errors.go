package predictor

import "errors"

var (
	// ErrOutOfRange is returned when a counter index is outside the table.
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidValue is returned when a counter value does not fit in 2 bits.
	ErrInvalidValue = errors.New("invalid counter value")

	// ErrInvalidArgument is returned when a size computation cannot be
	// represented.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid predictor config")
)
