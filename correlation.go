package allocation

import "gonum.org/v1/gonum/mat"

// correlations is the symmetric matrix of correlation coefficients between
// the assets of a Store, indexed in the same order as the assets.
//
// Only one triangle is stored, so the matrix is symmetric by construction.
// The diagonal is always 1. The zero value is an empty matrix.
type correlations struct {
	n int
	m *mat.SymDense // nil when n == 0
}

// at returns the correlation between the i-th and j-th assets.
func (c *correlations) at(i, j int) float64 { return c.m.At(i, j) }

// set sets the correlation between the i-th and j-th assets (i != j).
func (c *correlations) set(i, j int, v float64) { c.m.SetSym(i, j, v) }

// grow appends a row and column, uncorrelated with every existing asset.
func (c *correlations) grow() {
	m := mat.NewSymDense(c.n+1, nil)
	for i := 0; i < c.n; i++ {
		for j := i + 1; j < c.n; j++ {
			m.SetSym(i, j, c.m.At(i, j))
		}
	}
	for i := 0; i <= c.n; i++ {
		m.SetSym(i, i, 1)
	}
	c.n, c.m = c.n+1, m
}

// remove deletes the k-th row and column, compacting the matrix.
func (c *correlations) remove(k int) {
	if c.n == 1 {
		c.n, c.m = 0, nil
		return
	}
	m := mat.NewSymDense(c.n-1, nil)
	for i, ii := 0, 0; i < c.n; i++ {
		if i == k {
			continue
		}
		for j, jj := i, ii; j < c.n; j++ {
			if j == k {
				continue
			}
			m.SetSym(ii, jj, c.m.At(i, j))
			jj++
		}
		ii++
	}
	c.n, c.m = c.n-1, m
}

// dense returns a copy of the full matrix as rows.
func (c *correlations) dense() [][]float64 {
	rows := make([][]float64, c.n)
	for i := range rows {
		rows[i] = make([]float64, c.n)
		for j := range rows[i] {
			rows[i][j] = c.m.At(i, j)
		}
	}
	return rows
}
