package operation

import "errors"

// Operation errors.
var (
	// ErrUnknownOperation indicates the registry has no operation under the
	// requested name.
	ErrUnknownOperation = errors.New("operation: unknown operation")

	// ErrDuplicateOperation indicates a Register call reusing a taken name.
	ErrDuplicateOperation = errors.New("operation: operation already registered")

	// ErrDivisionByZero indicates a zero divisor for divide, modulus,
	// int_divide or percent.
	ErrDivisionByZero = errors.New("operation: division by zero")

	// ErrDomain indicates a mathematically undefined result, such as an even
	// root of a negative number or a negative base with a fractional exponent.
	ErrDomain = errors.New("operation: result is undefined")
)

// IsDomain reports whether err belongs to the domain-error category:
// the operation was understood but has no defined result for its operands.
func IsDomain(err error) bool {
	return errors.Is(err, ErrDomain) || errors.Is(err, ErrDivisionByZero)
}
