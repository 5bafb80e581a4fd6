// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package matrix provides the dense, triangular, bit, resizable and
// row-nullable matrix variants the clustering library composes (spec §4.3).
// Dense stores its elements in a plain row-major slice for every element
// type; Inverse and EigenSym copy it into a gonum.org/v1/gonum/mat matrix so
// that inverse (via LU) and symmetric eigendecomposition come from a
// maintained linear-algebra package rather than a hand-rolled one.
package matrix

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned by Inverse when the matrix has a zero pivot.
var ErrSingular = errors.New("matrix: singular matrix")

// Elem is the set of types usable as a matrix element.
type Elem interface {
	constraints.Integer | constraints.Float
}

// Dense is a row-major, fixed m×n matrix that may optionally wrap
// externally-owned storage (no-op on drop, matching the source's
// MatrixRow semantics for wrapped buffers).
type Dense[T Elem] struct {
	m, n int
	data []T
}

// NewDense allocates a zeroed m×n Dense matrix.
func NewDense[T Elem](m, n int) *Dense[T] {
	return &Dense[T]{m: m, n: n, data: make([]T, m*n)}
}

// WrapDense wraps externally-owned storage as an m×n Dense matrix without
// copying. The caller retains ownership of data.
func WrapDense[T Elem](m, n int, data []T) *Dense[T] {
	if len(data) != m*n {
		panic("matrix: data length does not match dimensions")
	}
	return &Dense[T]{m: m, n: n, data: data}
}

// Dims returns the row and column count.
func (d *Dense[T]) Dims() (m, n int) { return d.m, d.n }

// Row returns a slice viewing row i's n elements; mutations through the
// slice mutate the matrix.
func (d *Dense[T]) Row(i int) []T {
	return d.data[i*d.n : i*d.n+d.n]
}

// Data returns the full row-major backing slice, flattened across all rows.
func (d *Dense[T]) Data() []T { return d.data }

// At returns element (i, j).
func (d *Dense[T]) At(i, j int) T { return d.data[i*d.n+j] }

// Set sets element (i, j).
func (d *Dense[T]) Set(i, j int, v T) { d.data[i*d.n+j] = v }

// SwapRows exchanges rows i and j in place.
func (d *Dense[T]) SwapRows(i, j int) {
	if i == j {
		return
	}
	ri, rj := d.Row(i), d.Row(j)
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}

// CopyRow copies src into row i. Panics if len(src) != n.
func (d *Dense[T]) CopyRow(i int, src []T) {
	if len(src) != d.n {
		panic("matrix: row length mismatch")
	}
	copy(d.Row(i), src)
}

// AddRow adds the rhs matrix element-wise into d, in place (d += rhs).
func (d *Dense[T]) AddRow(rhs *Dense[T]) {
	if d.m != rhs.m || d.n != rhs.n {
		panic("matrix: dimension mismatch")
	}
	for i := range d.data {
		d.data[i] += rhs.data[i]
	}
}

// SubRow subtracts the rhs matrix element-wise from d, in place (d -= rhs).
func (d *Dense[T]) SubRow(rhs *Dense[T]) {
	if d.m != rhs.m || d.n != rhs.n {
		panic("matrix: dimension mismatch")
	}
	for i := range d.data {
		d.data[i] -= rhs.data[i]
	}
}

// Transpose returns the transpose of d as a new matrix.
func (d *Dense[T]) Transpose() *Dense[T] {
	out := NewDense[T](d.n, d.m)
	for i := 0; i < d.m; i++ {
		for j := 0; j < d.n; j++ {
			out.Set(j, i, d.At(i, j))
		}
	}
	return out
}

// Clone returns a deep copy of d.
func (d *Dense[T]) Clone() *Dense[T] {
	out := &Dense[T]{m: d.m, n: d.n, data: make([]T, len(d.data))}
	copy(out.data, d.data)
	return out
}

// Identity returns the n×n identity matrix.
func Identity[T Elem](n int) *Dense[T] {
	out := NewDense[T](n, n)
	for i := 0; i < n; i++ {
		out.Set(i, i, 1)
	}
	return out
}

// toGonum converts a float64 Dense to a *mat.Dense view (copying, since
// gonum.Dense owns its own backing slice layout guarantees).
func (d *Dense[T]) toGonum() *mat.Dense {
	data := make([]float64, len(d.data))
	for i, v := range d.data {
		data[i] = float64(v)
	}
	return mat.NewDense(d.m, d.n, data)
}

// Inverse returns the matrix inverse of a square matrix, computed via LU
// decomposition with partial pivoting (gonum.org/v1/gonum/mat.LU). Returns
// ErrSingular if a pivot is (numerically) zero.
func (d *Dense[T]) Inverse() (*Dense[float64], error) {
	if d.m != d.n {
		return nil, fmt.Errorf("matrix: inverse requires a square matrix, got %d×%d", d.m, d.n)
	}
	var lu mat.LU
	lu.Factorize(d.toGonum())
	if math.IsInf(lu.Cond(), 1) {
		return nil, ErrSingular
	}
	var inv mat.Dense
	err := lu.SolveTo(&inv, false, mat.NewDense(d.n, d.n, identityData(d.n)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	out := NewDense[float64](d.n, d.n)
	for i := 0; i < d.n; i++ {
		for j := 0; j < d.n; j++ {
			out.Set(i, j, inv.At(i, j))
		}
	}
	return out, nil
}

func identityData(n int) []float64 {
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		data[i*n+i] = 1
	}
	return data
}

// EigenSym returns the eigenvalues (ascending) and eigenvector columns of a
// symmetric matrix, computed via gonum.org/v1/gonum/mat.EigenSym (the
// maintained equivalent of the source's Jacobi-rotation routine).
func (d *Dense[T]) EigenSym() (values []float64, vectors *Dense[float64], err error) {
	if d.m != d.n {
		return nil, nil, fmt.Errorf("matrix: eigen decomposition requires a square matrix, got %d×%d", d.m, d.n)
	}
	sym := mat.NewSymDense(d.n, nil)
	for i := 0; i < d.n; i++ {
		for j := i; j < d.n; j++ {
			v := (float64(d.At(i, j)) + float64(d.At(j, i))) / 2
			sym.SetSym(i, j, v)
		}
	}
	var eig mat.EigenSym
	ok := eig.Factorize(sym, true)
	if !ok {
		return nil, nil, fmt.Errorf("matrix: eigendecomposition failed to converge")
	}
	values = eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	out := NewDense[float64](d.n, d.n)
	for i := 0; i < d.n; i++ {
		for j := 0; j < d.n; j++ {
			out.Set(i, j, vecs.At(i, j))
		}
	}
	return values, out, nil
}
