package allocation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber parses a raw table cell into a number.
//
// Surrounding spaces are ignored. Anything that is not a plain decimal number
// (optionally with an exponent), or that does not fit in a float64, is
// rejected with ErrInvalidNumber.
func ParseNumber(cell string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(cell))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, cell)
	}
	v := d.InexactFloat64()
	if checkNumber(v) != nil {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidNumber, cell)
	}
	return v, nil
}

// ParsePercent is ParseNumber for cells in percentage units.
func ParsePercent(cell string) (Percent, error) {
	v, err := ParseNumber(cell)
	return Percent(v), err
}

// sumPercent adds percentages exactly, so that 33.33+33.33+33.34 is 100.
func sumPercent(ps []Percent) Percent {
	sum := decimal.Zero
	for _, p := range ps {
		sum = sum.Add(decimal.NewFromFloat(float64(p)))
	}
	return Percent(sum.InexactFloat64())
}

// share returns amount*ratio/100.
func share(amount float64, ratio Percent) float64 {
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(float64(ratio))).
		Div(decimal.NewFromInt(100)).
		InexactFloat64()
}
