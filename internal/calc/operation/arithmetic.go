package operation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// builtins returns the ten builtin arithmetic operations.
func builtins() []Operation {
	return []Operation{
		Func{"add", "Add two numbers", add},
		Func{"subtract", "Subtract the second number from the first", subtract},
		Func{"multiply", "Multiply two numbers", multiply},
		Func{"divide", "Divide the first number by the second", divide},
		Func{"power", "Raise the first number to the power of the second", power},
		Func{"root", "Take the b-th root of the first number", root},
		Func{"modulus", "Remainder of dividing the first number by the second", modulus},
		Func{"int_divide", "Integer division, truncated toward zero", intDivide},
		Func{"percent", "The first number as a percentage of the second", percent},
		Func{"abs_diff", "Absolute difference between two numbers", absDiff},
	}
}

func add(a, b decimal.Decimal) (decimal.Decimal, error) {
	return a.Add(b), nil
}

func subtract(a, b decimal.Decimal) (decimal.Decimal, error) {
	return a.Sub(b), nil
}

func multiply(a, b decimal.Decimal) (decimal.Decimal, error) {
	return a.Mul(b), nil
}

func divide(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, fmt.Errorf("divide %s by zero: %w", a, ErrDivisionByZero)
	}
	return a.Div(b), nil
}

// power evaluates a^b through float64. Negative bases require an integer
// exponent; everything producing NaN or infinity is a domain error.
func power(a, b decimal.Decimal) (decimal.Decimal, error) {
	if a.Sign() < 0 && !b.IsInteger() {
		return decimal.Zero, fmt.Errorf("negative base %s with fractional exponent %s: %w", a, b, ErrDomain)
	}
	return fromFloat(math.Pow(a.InexactFloat64(), b.InexactFloat64()))
}

// root evaluates the b-th root of a as a^(1/b). Odd integer degrees of a
// negative radicand are real and keep the sign; even or fractional degrees
// of a negative radicand are not.
func root(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, fmt.Errorf("root of degree zero: %w", ErrDomain)
	}

	if a.Sign() < 0 {
		if !b.IsInteger() {
			return decimal.Zero, fmt.Errorf("root of negative number %s with fractional degree %s: %w", a, b, ErrDomain)
		}
		if b.Abs().Mod(two).IsZero() {
			return decimal.Zero, fmt.Errorf("even root of negative number %s: %w", a, ErrDomain)
		}
		r, err := fromFloat(math.Pow(a.Neg().InexactFloat64(), 1/b.InexactFloat64()))
		if err != nil {
			return decimal.Zero, err
		}
		return r.Neg(), nil
	}

	return fromFloat(math.Pow(a.InexactFloat64(), 1/b.InexactFloat64()))
}

func modulus(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, fmt.Errorf("modulus %s by zero: %w", a, ErrDivisionByZero)
	}
	// Truncated remainder, sign follows the dividend.
	return a.Mod(b), nil
}

func intDivide(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, fmt.Errorf("integer divide %s by zero: %w", a, ErrDivisionByZero)
	}
	q, _ := a.QuoRem(b, 0)
	return q, nil
}

func percent(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, fmt.Errorf("percent of zero base: %w", ErrDivisionByZero)
	}
	return a.Div(b).Mul(hundred), nil
}

func absDiff(a, b decimal.Decimal) (decimal.Decimal, error) {
	return a.Sub(b).Abs(), nil
}

// fromFloat converts a float64 result back to decimal, rejecting non-finite
// values. decimal.NewFromFloat panics on NaN and infinity, so the check must
// happen first.
func fromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("result is not a finite real number: %w", ErrDomain)
	}
	return decimal.NewFromFloat(f), nil
}
