package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		amount  string
		wantErr error
	}{
		{"100.00", nil},
		{"-100.00", nil},
		{"0", nil},
		{"99.9", nil},
		{"0.001", ErrTooManyDecimals},
		{"-0.005", ErrTooManyDecimals},
	}
	for _, tc := range cases {
		err := Validate(decimal.RequireFromString(tc.amount))
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.amount, tc.wantErr, err)
		}
	}
}

func TestValidatePositive(t *testing.T) {
	if err := ValidatePositive(decimal.RequireFromString("500.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidatePositive(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if err := ValidatePositive(decimal.RequireFromString("-1.00")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
	if err := ValidatePositive(decimal.RequireFromString("1.005")); !errors.Is(err, ErrTooManyDecimals) {
		t.Fatalf("expected ErrTooManyDecimals, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"100", "100.00"},
		{"240.5", "240.50"},
		{"-0.1", "-0.10"},
		{"0", "0.00"},
	}
	for _, tc := range cases {
		if got := Format(decimal.RequireFromString(tc.amount)); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.amount, tc.want, got)
		}
	}
}
