package allocation

import "fmt"

// Percent is a value in percentage units: 5.0 is 5%.
type Percent float64

// percentPrecision is the tolerance used to compare percentages.
const percentPrecision = 0.0001

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < percentPrecision
}

// Fraction returns p as a fraction: 5% is 0.05.
func (p Percent) Fraction() float64 { return float64(p) / 100 }

// FromFraction converts a fraction into a Percent: 0.05 is 5%.
func FromFraction(f float64) Percent { return Percent(f * 100) }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}
