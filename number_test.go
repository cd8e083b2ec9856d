package allocation

import (
	"errors"
	"testing"
)

func TestParseNumber(t *testing.T) {
	tcs := []struct {
		cell    string
		want    float64
		wantErr bool
	}{
		{"12.5", 12.5, false},
		{" 3 ", 3, false},
		{"-0.25", -0.25, false},
		{"1e3", 1000, false},
		{"", 0, true},
		{"abc", 0, true},
		{"12,5", 0, true},
		{"NaN", 0, true},
		{"1e400", 0, true},
		{"-1e400", 0, true},
	}
	for _, tc := range tcs {
		t.Run(tc.cell, func(t *testing.T) {
			got, err := ParseNumber(tc.cell)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidNumber) {
					t.Errorf("ParseNumber(%q) error = %v, want ErrInvalidNumber", tc.cell, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNumber(%q) unexpected error: %v", tc.cell, err)
			}
			if got != tc.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tc.cell, got, tc.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	if !Percent(100).Equal(99.99999) {
		t.Error("100% and 99.99999% must be equal")
	}
	if Percent(100).Equal(99.99) {
		t.Error("100% and 99.99% must differ")
	}
	if got, want := Percent(12.346).String(), "12.35%"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := Percent(0.5).Fraction(), 0.005; got != want {
		t.Errorf("Fraction() = %v, want %v", got, want)
	}
}

func TestSumPercent(t *testing.T) {
	got := sumPercent([]Percent{33.33, 33.33, 33.34})
	if got != 100 {
		t.Errorf("sumPercent = %v, want exactly 100", got)
	}
}
