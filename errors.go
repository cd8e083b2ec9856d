package allocation

import (
	"errors"
	"math"
)

// Rejected edits return one of these errors, possibly wrapped. A rejected
// edit never mutates the state.
var (
	ErrInvalidNumber   = errors.New("invalid number")
	ErrNegativeAmount  = errors.New("negative amount")
	ErrEmptyName       = errors.New("empty asset name")
	ErrDuplicateAsset  = errors.New("asset already exists")
	ErrUnknownAsset    = errors.New("unknown asset")
	ErrSelfCorrelation = errors.New("an asset is always fully correlated with itself")
	ErrRatioSum        = errors.New("allocation incomplete: ratios do not sum to 100%")
)

// checkNumber rejects NaN and infinities.
func checkNumber(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrInvalidNumber
	}
	return nil
}
