// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

// WithRowNull holds m rows of width d, any subset of which may be marked
// null ("deleted"), while keeping all row indices stable. It suits a sparse
// cluster container that keeps removed rows in place instead of compacting
// the matrix; a null row is tracked by a per-row flag, not by a sentinel
// value written into the row.
type WithRowNull[T Elem] struct {
	d     int
	rows  [][]T
	valid []bool
}

// NewWithRowNull allocates an m×d matrix with every row initially valid.
func NewWithRowNull[T Elem](m, d int) *WithRowNull[T] {
	rows := make([][]T, m)
	for i := range rows {
		rows[i] = make([]T, d)
	}
	valid := make([]bool, m)
	for i := range valid {
		valid[i] = true
	}
	return &WithRowNull[T]{d: d, rows: rows, valid: valid}
}

// Rows returns the row capacity (including null rows).
func (w *WithRowNull[T]) Rows() int { return len(w.rows) }

// Row returns row i's contents. Callers should check Valid(i) first.
func (w *WithRowNull[T]) Row(i int) []T { return w.rows[i] }

// Valid reports whether row i is not null.
func (w *WithRowNull[T]) Valid(i int) bool { return w.valid[i] }

// Delete marks row i null.
func (w *WithRowNull[T]) Delete(i int) { w.valid[i] = false }

// Restore marks row i valid again (contents are whatever was last written).
func (w *WithRowNull[T]) Restore(i int) { w.valid[i] = true }

// CountValid returns the number of non-null rows.
func (w *WithRowNull[T]) CountValid() int {
	n := 0
	for _, v := range w.valid {
		if v {
			n++
		}
	}
	return n
}
