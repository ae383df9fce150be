package calc

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestNewCalculation(t *testing.T) {
	before := time.Now()
	c := NewCalculation("add", dec(t, "5"), dec(t, "7"), dec(t, "12"))

	if c.Op != "add" {
		t.Errorf("Op = %q, want add", c.Op)
	}
	if c.Timestamp.Before(before) || c.Timestamp.After(time.Now()) {
		t.Error("timestamp not assigned at creation")
	}
}

func TestCalculationString(t *testing.T) {
	c := NewCalculation("add", dec(t, "5"), dec(t, "7"), dec(t, "12"))
	if got := c.String(); got != "add(5, 7) = 12" {
		t.Errorf("String() = %q, want %q", got, "add(5, 7) = 12")
	}
}

func TestCalculationEqual(t *testing.T) {
	ts := time.Now()
	a := Restore("add", dec(t, "5"), dec(t, "7"), dec(t, "12"), ts)
	b := Restore("add", dec(t, "5.0"), dec(t, "7"), dec(t, "12.0"), ts)
	c := Restore("subtract", dec(t, "5"), dec(t, "7"), dec(t, "12"), ts)

	if !a.Equal(b) {
		t.Error("equal values with different decimal scales should compare equal")
	}
	if a.Equal(c) {
		t.Error("different operations should not compare equal")
	}
	if a.Equal(Restore("add", dec(t, "5"), dec(t, "7"), dec(t, "12"), ts.Add(time.Second))) {
		t.Error("different timestamps should not compare equal")
	}
}

func TestRestorePreservesTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	c := Restore("divide", dec(t, "1"), dec(t, "4"), dec(t, "0.25"), ts)
	if !c.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v", c.Timestamp, ts)
	}
}

func TestParseOperand(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"integer", "42", "42", false},
		{"fractional", "3.25", "3.25", false},
		{"negative", "-0.5", "-0.5", false},
		{"scientific", "1.5e3", "1500", false},
		{"padded", " 7 ", "7", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"word", "seven", "", true},
		{"trailing garbage", "4x", "", true},
		{"nan", "NaN", "", true},
		{"infinity", "Inf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOperand(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("ParseOperand(%q) error = %v, want ErrInvalidInput", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOperand(%q): %v", tt.raw, err)
			}
			if !got.Equal(dec(t, tt.want)) {
				t.Errorf("ParseOperand(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCheckMagnitude(t *testing.T) {
	max := dec(t, "1000000")

	if err := CheckMagnitude(dec(t, "1000000"), max); err != nil {
		t.Errorf("value at the limit should pass: %v", err)
	}
	if err := CheckMagnitude(dec(t, "-999999.99"), max); err != nil {
		t.Errorf("negative value inside the limit should pass: %v", err)
	}
	if err := CheckMagnitude(dec(t, "1000000.01"), max); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("value over the limit should fail with ErrInvalidInput, got %v", err)
	}
	if err := CheckMagnitude(dec(t, "-2000000"), max); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative value over the limit should fail with ErrInvalidInput, got %v", err)
	}
}
