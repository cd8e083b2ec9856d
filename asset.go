package allocation

// Asset is an asset class: a named investment category with an expected
// return and a risk, both in percentage units.
//
// The name is immutable, renaming an asset is deleting it and appending a new
// one. Correlations between assets are held by the Store.
type Asset struct {
	id             int
	name           string
	expectedReturn Percent
	risk           Percent
}

// ID returns the slot assigned to the asset when it was appended to its
// Store. It is never reused by that Store.
func (a *Asset) ID() int { return a.id }

func (a *Asset) Name() string { return a.name }

// ExpectedReturn is the forecast annual gain.
func (a *Asset) ExpectedReturn() Percent { return a.expectedReturn }

// Risk is the standard deviation of the annual return.
func (a *Asset) Risk() Percent { return a.risk }

// SetExpectedReturn sets the expected return, unless r is not a valid number,
// in which case the previous value is kept and ErrInvalidNumber is returned.
func (a *Asset) SetExpectedReturn(r Percent) error {
	if err := checkNumber(float64(r)); err != nil {
		return err
	}
	a.expectedReturn = r
	return nil
}

// SetRisk sets the risk, unless r is not a valid number, in which case the
// previous value is kept and ErrInvalidNumber is returned.
func (a *Asset) SetRisk(r Percent) error {
	if err := checkNumber(float64(r)); err != nil {
		return err
	}
	a.risk = r
	return nil
}
