// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vecops provides length-parameterized BLAS-1-like primitives over
// arrays of a feature scalar type, following the vector-op contract of the
// clustering library: the same small set of operations backs every
// chromosome encoding, matrix variant and kernel routine above it.
//
// Float64 instantiations are backed by gonum.org/v1/gonum/floats; integer
// instantiations are implemented directly, since no float-oriented BLAS-1
// package can express exact integer accumulation.
package vecops

import (
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
)

// RoundHalfAwayFromZero rounds v to the nearest integer, ties away from
// zero, the rounding rule used whenever an integer feature type T_F forces
// a float accumulator back to integer, expressed here as an explicit call
// rather than a compile-time flag.
func RoundHalfAwayFromZero(v float64) float64 {
	return math.Round(v)
}

// Scalar is the set of types usable as a feature scalar T_F.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Fill sets every element of x to alpha.
func Fill[T Scalar](x []T, alpha T) {
	for i := range x {
		x[i] = alpha
	}
}

// Copy copies src into dst. Panics if the lengths differ.
func Copy[T Scalar](dst, src []T) {
	if len(dst) != len(src) {
		panic("vecops: length mismatch")
	}
	copy(dst, src)
}

// Swap exchanges the contents of x and y. Panics if the lengths differ.
func Swap[T Scalar](x, y []T) {
	if len(x) != len(y) {
		panic("vecops: length mismatch")
	}
	for i := range x {
		x[i], y[i] = y[i], x[i]
	}
}

// Scal scales x in place by alpha: x ← alpha·x.
func Scal[T Scalar](x []T, alpha T) {
	switch v := any(x).(type) {
	case []float64:
		floats.Scale(float64(alpha), v)
	default:
		for i := range x {
			x[i] *= alpha
		}
	}
}

// ScalInv scales x in place by 1/alpha: x ← x/alpha. alpha = 0 is a no-op,
// matching the source contract rather than dividing by zero.
func ScalInv[T Scalar](x []T, alpha T) {
	if alpha == 0 {
		return
	}
	for i := range x {
		x[i] /= alpha
	}
}

// AxpyFloat computes y ← alpha·x + y for float64 slices, backed by
// gonum/floats.
func AxpyFloat(y []float64, alpha float64, x []float64) {
	floats.AddScaled(y, alpha, x)
}

// Axpy computes y ← alpha·x + y. Panics if the lengths differ.
func Axpy[T Scalar](y []T, alpha T, x []T) {
	if len(y) != len(x) {
		panic("vecops: length mismatch")
	}
	if yf, ok := any(y).([]float64); ok {
		xf, _ := any(x).([]float64)
		AxpyFloat(yf, float64(alpha), xf)
		return
	}
	for i := range y {
		y[i] += alpha * x[i]
	}
}

// AxpyInv computes y ← x/alpha + y. alpha = 0 is a no-op.
func AxpyInv[T Scalar](y []T, alpha T, x []T) {
	if len(y) != len(x) {
		panic("vecops: length mismatch")
	}
	if alpha == 0 {
		return
	}
	for i := range y {
		y[i] += x[i] / alpha
	}
}

// Dot returns the dot product of x and y.
func Dot[T Scalar](x, y []T) T {
	if len(x) != len(y) {
		panic("vecops: length mismatch")
	}
	if xf, ok := any(x).([]float64); ok {
		yf, _ := any(y).([]float64)
		return T(floats.Dot(xf, yf))
	}
	var d T
	for i := range x {
		d += x[i] * y[i]
	}
	return d
}

// Sum returns the sum of the elements of x.
func Sum[T Scalar](x []T) T {
	if xf, ok := any(x).([]float64); ok {
		return T(floats.Sum(xf))
	}
	var s T
	for _, v := range x {
		s += v
	}
	return s
}

// TransY computes y ← y + alpha, a uniform per-element translation.
func TransY[T Scalar](y []T, alpha T) {
	for i := range y {
		y[i] += alpha
	}
}

// Aysxpy computes y ← y + alpha·(y−x) in place, the general exponential
// blend of y toward x by factor −alpha.
func Aysxpy[T Scalar](y []T, alpha T, x []T) {
	if len(y) != len(x) {
		panic("vecops: length mismatch")
	}
	for i := range y {
		y[i] += alpha * (y[i] - x[i])
	}
}

// Aasxpa computes the row-broadcast update Aij ← Aij + alpha·(Aij − xj) for
// an m×n row-major matrix A and a length-n vector x.
func Aasxpa[T Scalar](alpha T, a []T, m, n int, x []T) {
	if len(x) != n || len(a) != m*n {
		panic("vecops: length mismatch")
	}
	for i := 0; i < m; i++ {
		row := a[i*n : i*n+n]
		for j, xj := range x {
			row[j] += alpha * (row[j] - xj)
		}
	}
}
