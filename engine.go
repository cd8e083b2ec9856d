package allocation

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// The aggregation functions below are pure: they only read the store, and
// calling them twice without mutation in between yields identical results.

// TotalInvestment returns the sum of all amounts invested in the store.
func TotalInvestment(s *Store) float64 { return s.TotalInvestment() }

// Weight returns the fraction of the total investment placed in the asset
// named 'name'. It is 0 when nothing is invested at all.
func Weight(s *Store, name string) float64 {
	total := s.TotalInvestment()
	if total <= 0 {
		return 0
	}
	return s.Investment(name) / total
}

// weights returns the weight of every asset, in store order.
func weights(s *Store) []float64 {
	w := make([]float64, len(s.assets))
	total := s.TotalInvestment()
	if total <= 0 {
		return w
	}
	for i, v := range s.investment {
		w[i] = v / total
	}
	return w
}

// TotalReturn returns the expected return of the whole allocation, net of
// fee, as a fraction.
//
// A negative net return is reported as 0.
func TotalReturn(s *Store) float64 {
	if s.TotalInvestment() <= 0 {
		return 0
	}
	r := 0.0
	for i, w := range weights(s) {
		r += float64(s.assets[i].expectedReturn) * w
	}
	r = r/100 - s.fee
	if r < 0 {
		return 0
	}
	return r
}

// TotalRisk returns the standard deviation of the whole allocation, as a
// fraction.
//
// With c the vector of weighted risks (c_i = w_i * risk_i / 100) and P the
// correlation matrix, the variance is cᵀ·P·c, that is
//
//	Σ c_i² + 2 Σ_{i<j} c_i c_j ρ_ij
func TotalRisk(s *Store) float64 {
	if s.TotalInvestment() <= 0 {
		return 0
	}
	w := weights(s)
	c := make([]float64, len(w))
	for i := range w {
		c[i] = w[i] * s.assets[i].risk.Fraction()
	}
	cv := mat.NewVecDense(len(c), c)
	variance := mat.Inner(cv, s.corr.m, cv)
	// correlations out of [-1, 1] can produce a negative variance.
	if variance <= 0 {
		return 0
	}
	return math.Sqrt(variance)
}

// Allocation is the computed view of a single asset in a Totals.
type Allocation struct {
	Name           string
	Investment     float64
	Ratio          float64 // fraction of the total investment
	ExpectedReturn Percent
	Risk           Percent
}

// Totals are the values derived from a Store after each edit.
type Totals struct {
	TotalInvestment float64
	TotalReturn     float64 // fraction, net of fee, never negative
	TotalRisk       float64 // fraction
	TotalRatio      float64 // sum of the allocation ratios, as a fraction
	Fee             float64 // fraction
	Allocations     []Allocation
}

// Recompute computes all the totals of the store.
func Recompute(s *Store) Totals {
	w := weights(s)
	t := Totals{
		TotalInvestment: s.TotalInvestment(),
		TotalReturn:     TotalReturn(s),
		TotalRisk:       TotalRisk(s),
		Fee:             s.fee,
		Allocations:     make([]Allocation, len(s.assets)),
	}
	for i, a := range s.assets {
		t.TotalRatio += w[i]
		t.Allocations[i] = Allocation{
			Name:           a.name,
			Investment:     s.investment[i],
			Ratio:          w[i],
			ExpectedReturn: a.expectedReturn,
			Risk:           a.risk,
		}
	}
	return t
}

// Ratio returns the allocation ratio of the asset named 'name', 0 if absent.
func (t Totals) Ratio(name string) float64 {
	for _, a := range t.Allocations {
		if a.Name == name {
			return a.Ratio
		}
	}
	return 0
}

func (a Allocation) MarshalJSON() ([]byte, error) {
	var o orderedObject
	o.add("name", a.Name)
	o.add("investment", a.Investment)
	o.add("investment_ratio", a.Ratio)
	o.addNonZero("expected_return", float64(a.ExpectedReturn))
	o.addNonZero("risk", float64(a.Risk))
	return o.MarshalJSON()
}

func (t Totals) MarshalJSON() ([]byte, error) {
	var o orderedObject
	o.add("total_investment", t.TotalInvestment)
	o.add("total_return", t.TotalReturn)
	o.add("total_risk", t.TotalRisk)
	o.add("total_ratio", t.TotalRatio)
	o.addNonZero("fee", t.Fee)
	if len(t.Allocations) > 0 {
		o.add("allocations", t.Allocations)
	}
	return o.MarshalJSON()
}
