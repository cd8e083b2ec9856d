package allocation

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// Session is an allocation table being edited.
//
// A table can be edited in two modes: by absolute amount invested in each
// asset, or by allocation ratio of each asset with a separately edited total
// (the anchor). The session keeps both modes in sync:
//
//   - editing amounts derives the ratios and the anchor.
//   - editing ratios is only applied when they sum to 100%, each amount then
//     becomes anchor*ratio/100.
//   - editing the anchor is only applied when the displayed ratios sum to
//     100%, amounts are then redistributed with the same ratios.
//
// A session is owned by its caller and is not safe for concurrent use.
type Session struct {
	store    *Store
	anchor   float64
	ratios   map[string]Percent // the displayed allocation ratios
	ratioSum Percent            // the displayed sum of ratios
	log      zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used to trace edits.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) {
		s.log = log.With().Str("component", "allocation_session").Logger()
	}
}

// NewSession returns a session editing 'store'. A nil store starts an empty
// allocation.
func NewSession(store *Store, opts ...Option) *Session {
	if store == nil {
		store = NewStore()
	}
	s := &Session{
		store: store,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.refresh()
	return s
}

// Store returns the edited store.
func (s *Session) Store() *Store { return s.store }

// Anchor returns the total investment used to derive amounts from ratios.
func (s *Session) Anchor() float64 { return s.anchor }

// RatioSum returns the displayed sum of allocation ratios.
func (s *Session) RatioSum() Percent { return s.ratioSum }

// Ratio returns the displayed allocation ratio of the asset named 'name'.
func (s *Session) Ratio(name string) Percent { return s.ratios[name] }

// Totals recomputes the totals of the edited store. TotalRatio reports the
// displayed sum of ratios, which differs from the derived one after a
// rejected ratio edit.
func (s *Session) Totals() Totals {
	t := Recompute(s.store)
	t.TotalRatio = s.ratioSum.Fraction()
	return t
}

// refresh derives ratios and anchor from the amounts.
func (s *Session) refresh() {
	s.ratios = make(map[string]Percent, s.store.Len())
	w := weights(s.store)
	ps := make([]Percent, len(w))
	for i, a := range s.store.assets {
		ps[i] = FromFraction(w[i])
		s.ratios[a.name] = ps[i]
	}
	s.ratioSum = sumPercent(ps)
	s.anchor = s.store.TotalInvestment()
}

// edited logs the outcome of an edit, and refreshes derived values when it
// was accepted.
func (s *Session) edited(op string, err error) error {
	if err != nil {
		s.log.Debug().Err(err).Str("op", op).Msg("edit rejected")
		return err
	}
	s.refresh()
	return nil
}

// AppendAsset appends a new asset to the table.
func (s *Session) AppendAsset(name string) error {
	_, err := s.store.AppendAsset(name)
	if err == nil {
		s.log.Info().Str("asset", name).Msg("asset appended")
	}
	return s.edited("append", err)
}

// DeleteAsset deletes an asset from the table. It returns false if there was
// no such asset.
func (s *Session) DeleteAsset(name string) bool {
	if !s.store.DeleteAsset(name) {
		s.log.Debug().Str("asset", name).Msg("no asset to delete")
		return false
	}
	s.log.Info().Str("asset", name).Msg("asset deleted")
	s.refresh()
	return true
}

func (s *Session) SetExpectedReturn(name string, r Percent) error {
	return s.edited("expected_return", s.store.SetExpectedReturn(name, r))
}

func (s *Session) SetRisk(name string, r Percent) error {
	return s.edited("risk", s.store.SetRisk(name, r))
}

func (s *Session) SetCorrelation(a, b string, v float64) error {
	return s.edited("correlation", s.store.SetCorrelation(a, b, v))
}

// SetFeePercent sets the fee, in percentage units.
func (s *Session) SetFeePercent(p Percent) error {
	return s.edited("fee", s.store.SetFeePercent(p))
}

// SetInvestment edits an amount directly. Ratios and anchor are derived from
// the new amounts.
func (s *Session) SetInvestment(name string, amount float64) error {
	return s.edited("investment", s.store.SetInvestment(name, amount))
}

// SetRatio edits the displayed ratio of a single asset. See SetRatios.
func (s *Session) SetRatio(name string, r Percent) error {
	return s.SetRatios(map[string]Percent{name: r})
}

// SetRatios edits the displayed ratios of some assets, the others keep their
// displayed ratio.
//
// The displayed sum is updated in any case, but amounts are derived from the
// anchor only if the ratios of all assets sum to 100%. Otherwise the amounts
// are unchanged and ErrRatioSum is returned.
func (s *Session) SetRatios(ratios map[string]Percent) error {
	for _, a := range s.store.assets {
		r, ok := ratios[a.name]
		if !ok {
			continue
		}
		if err := checkNumber(float64(r)); err != nil {
			return s.edited("ratio", fmt.Errorf("ratio of %q: %w", a.name, err))
		}
		if r < 0 {
			return s.edited("ratio", fmt.Errorf("ratio of %q: %w", a.name, ErrNegativeAmount))
		}
	}
	names := make([]string, 0, len(ratios))
	for name := range ratios {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if !s.store.Has(name) {
			return s.edited("ratio", fmt.Errorf("%w: %q", ErrUnknownAsset, name))
		}
	}
	for name, r := range ratios {
		s.ratios[name] = r
	}
	ps := make([]Percent, 0, s.store.Len())
	for _, a := range s.store.assets {
		ps = append(ps, s.ratios[a.name])
	}
	s.ratioSum = sumPercent(ps)

	if !s.ratioSum.Equal(100) {
		err := fmt.Errorf("%w: got %v", ErrRatioSum, s.ratioSum)
		s.log.Debug().Err(err).Str("op", "ratio").Msg("edit rejected")
		return err
	}
	s.distribute()
	return nil
}

// SetAnchor edits the total investment. It is only accepted when the
// displayed ratios sum to 100%, amounts are then redistributed.
func (s *Session) SetAnchor(total float64) error {
	if err := checkNumber(total); err != nil {
		return s.edited("total", err)
	}
	if total < 0 {
		return s.edited("total", fmt.Errorf("%w: %v", ErrNegativeAmount, total))
	}
	if !s.ratioSum.Equal(100) {
		err := fmt.Errorf("%w: got %v", ErrRatioSum, s.ratioSum)
		s.log.Debug().Err(err).Str("op", "total").Msg("edit rejected")
		return err
	}
	s.anchor = total
	s.distribute()
	return nil
}

// distribute sets every amount to anchor*ratio/100. Displayed ratios are
// kept as typed.
func (s *Session) distribute() {
	for i, a := range s.store.assets {
		s.store.investment[i] = share(s.anchor, s.ratios[a.name])
	}
	s.log.Debug().Float64("total", s.anchor).Msg("amounts derived from ratios")
}
