package calculator

import "errors"

var (
	ErrDivisionByZero      = errors.New("division by zero")
	ErrUnknownOperation    = errors.New("unknown operation")
	ErrInvalidNumericInput = errors.New("invalid numeric input")
)
