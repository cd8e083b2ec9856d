package allocation

import "fmt"

// Store is an asset allocation: an ordered set of assets with unique names,
// the amount invested in each of them, the fee, and the correlations between
// every pair of assets.
//
// The insertion order of the assets is preserved and drives every table and
// matrix built from the store.
//
// A Store is not safe for concurrent use: callers serialize mutations.
type Store struct {
	assets     []*Asset
	investment []float64 // investment[i] is the amount invested in assets[i]
	corr       correlations
	fee        float64 // fractional rate
	nextID     int
}

// NewStore returns an empty Store with no fee.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of assets.
func (s *Store) Len() int { return len(s.assets) }

// Assets returns the assets in insertion order.
func (s *Store) Assets() []*Asset {
	return append([]*Asset(nil), s.assets...)
}

// Names returns the asset names in insertion order.
func (s *Store) Names() []string {
	names := make([]string, len(s.assets))
	for i, a := range s.assets {
		names[i] = a.name
	}
	return names
}

// index returns the position of the asset named 'name', or -1.
func (s *Store) index(name string) int {
	for i, a := range s.assets {
		if a.name == name {
			return i
		}
	}
	return -1
}

// Has returns true if the store has an asset named 'name'.
func (s *Store) Has(name string) bool { return s.index(name) >= 0 }

// Asset returns the asset named 'name' and true, or nil and false if there is
// no such asset.
func (s *Store) Asset(name string) (*Asset, bool) {
	i := s.index(name)
	if i < 0 {
		return nil, false
	}
	return s.assets[i], true
}

// AppendAsset appends a new asset with zero expected return, zero risk and
// nothing invested. It is uncorrelated (0) with every existing asset.
//
// The name must be non-empty and not used by another asset of the store.
func (s *Store) AppendAsset(name string) (*Asset, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if s.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateAsset, name)
	}
	a := &Asset{id: s.nextID, name: name}
	s.nextID++
	s.assets = append(s.assets, a)
	s.investment = append(s.investment, 0)
	s.corr.grow()
	return a, nil
}

// DeleteAsset removes the asset named 'name', the amount invested in it, and
// its correlation to every other asset. It returns false if there was no
// such asset.
func (s *Store) DeleteAsset(name string) bool {
	i := s.index(name)
	if i < 0 {
		return false
	}
	s.assets = append(s.assets[:i], s.assets[i+1:]...)
	s.investment = append(s.investment[:i], s.investment[i+1:]...)
	s.corr.remove(i)
	return true
}

// SetExpectedReturn sets the expected return of the asset named 'name'.
func (s *Store) SetExpectedReturn(name string, r Percent) error {
	a, ok := s.Asset(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAsset, name)
	}
	return a.SetExpectedReturn(r)
}

// SetRisk sets the risk of the asset named 'name'.
func (s *Store) SetRisk(name string, r Percent) error {
	a, ok := s.Asset(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAsset, name)
	}
	return a.SetRisk(r)
}

// Investment returns the amount invested in the asset named 'name', 0 if
// there is no such asset.
func (s *Store) Investment(name string) float64 {
	i := s.index(name)
	if i < 0 {
		return 0
	}
	return s.investment[i]
}

// SetInvestment sets the amount invested in the asset named 'name'.
//
// Invalid numbers, negative amounts, and amounts that would make the total
// investment overflow are rejected.
func (s *Store) SetInvestment(name string, amount float64) error {
	i := s.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownAsset, name)
	}
	if err := checkNumber(amount); err != nil {
		return err
	}
	if amount < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeAmount, amount)
	}
	total := 0.0
	for j, v := range s.investment {
		if j == i {
			v = amount
		}
		total += v
	}
	if checkNumber(total) != nil {
		return fmt.Errorf("%w: total investment overflows with %v in %q", ErrInvalidNumber, amount, name)
	}
	s.investment[i] = amount
	return nil
}

// TotalInvestment returns the sum of all amounts invested, 0 for an empty
// store.
func (s *Store) TotalInvestment() float64 {
	total := 0.0
	for _, v := range s.investment {
		total += v
	}
	return total
}

// Fee returns the management fee as a fractional rate (0.005 is 0.5%).
func (s *Store) Fee() float64 { return s.fee }

// SetFee sets the management fee as a fractional rate.
func (s *Store) SetFee(rate float64) error {
	if err := checkNumber(rate); err != nil {
		return err
	}
	s.fee = rate
	return nil
}

// SetFeePercent sets the management fee from percentage units, as it is typed
// in an allocation table.
func (s *Store) SetFeePercent(p Percent) error {
	return s.SetFee(p.Fraction())
}

// Correlation returns the correlation coefficient between assets 'a' and
// 'b'. An asset is fully correlated (1) with itself.
func (s *Store) Correlation(a, b string) (float64, error) {
	i, j := s.index(a), s.index(b)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAsset, a)
	}
	if j < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAsset, b)
	}
	return s.corr.at(i, j), nil
}

// SetCorrelation sets the correlation coefficient between assets 'a' and 'b',
// in both directions.
//
// The value is not range checked: out of [-1, 1] values are accepted and
// simply produce the corresponding arithmetic result.
func (s *Store) SetCorrelation(a, b string, v float64) error {
	i, j := s.index(a), s.index(b)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownAsset, a)
	}
	if j < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownAsset, b)
	}
	if i == j {
		return fmt.Errorf("%w: %q", ErrSelfCorrelation, a)
	}
	if err := checkNumber(v); err != nil {
		return err
	}
	s.corr.set(i, j, v)
	return nil
}

// CorrelationMatrix returns a copy of the correlation matrix, rows and
// columns in the same order as Assets.
func (s *Store) CorrelationMatrix() [][]float64 {
	return s.corr.dense()
}
