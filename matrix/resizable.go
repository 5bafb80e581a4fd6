// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

// Resizable is an m×d matrix with spare capacity that supports amortized
// O(1) row push/pop, used by the variable-K codebook chromosome.
type Resizable[T Elem] struct {
	d    int
	rows [][]T
}

// NewResizable allocates an empty resizable matrix of row width d, with an
// initial row capacity hint.
func NewResizable[T Elem](d, capacityHint int) *Resizable[T] {
	return &Resizable[T]{d: d, rows: make([][]T, 0, capacityHint)}
}

// Rows returns the current row count.
func (r *Resizable[T]) Rows() int { return len(r.rows) }

// D returns the row width.
func (r *Resizable[T]) D() int { return r.d }

// Row returns row i.
func (r *Resizable[T]) Row(i int) []T { return r.rows[i] }

// PushRow appends a copy of src as a new row. Panics if len(src) != d.
func (r *Resizable[T]) PushRow(src []T) {
	if len(src) != r.d {
		panic("matrix: row width mismatch")
	}
	row := make([]T, r.d)
	copy(row, src)
	r.rows = append(r.rows, row)
}

// PopRow removes and returns the last row.
func (r *Resizable[T]) PopRow() []T {
	last := r.rows[len(r.rows)-1]
	r.rows = r.rows[:len(r.rows)-1]
	return last
}

// SwapRows exchanges rows i and j.
func (r *Resizable[T]) SwapRows(i, j int) {
	r.rows[i], r.rows[j] = r.rows[j], r.rows[i]
}

// RemoveRow removes row i by swapping it with the last row and popping,
// which changes the row index of the former last row to i.
func (r *Resizable[T]) RemoveRow(i int) {
	last := len(r.rows) - 1
	if i != last {
		r.rows[i] = r.rows[last]
	}
	r.rows = r.rows[:last]
}

// MergeTwoRows replaces row i with the weighted mean of rows i and j:
// (ni·rowi + nj·rowj) / (ni+nj), then removes row j (see RemoveRow).
// For integer T, the quotient is rounded once at the end rather than
// accumulating per-term rounding error.
func (r *Resizable[T]) MergeTwoRows(i, j int, ni, nj int) {
	ri, rj := r.rows[i], r.rows[j]
	total := ni + nj
	if total == 0 {
		total = 1
	}
	for k := range ri {
		num := float64(ni)*float64(ri[k]) + float64(nj)*float64(rj[k])
		merged := num / float64(total)
		ri[k] = roundTo[T](merged)
	}
	r.RemoveRow(j)
}

// Merge concatenates b and c's rows onto the end of r.
func (r *Resizable[T]) Merge(b, c *Resizable[T]) {
	for i := 0; i < b.Rows(); i++ {
		r.PushRow(b.Row(i))
	}
	for i := 0; i < c.Rows(); i++ {
		r.PushRow(c.Row(i))
	}
}
