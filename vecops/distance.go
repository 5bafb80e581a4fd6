// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vecops

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Dist returns a non-negative scalar distance between two equal-length
// feature vectors a and b (spec §4.2).
type Dist[T Scalar] func(a, b []T) float64

// Euclidean returns sqrt(Σ(ai-bi)²).
func Euclidean[T Scalar](a, b []T) float64 {
	return math.Sqrt(EuclideanSq(a, b))
}

// EuclideanSq returns Σ(ai-bi)², the squared Euclidean distance. Feeding
// squared distances into division (fuzzy c-means) or argmin comparisons is
// safe: argmin by distance and argmin by squared distance agree.
func EuclideanSq[T Scalar](a, b []T) float64 {
	if len(a) != len(b) {
		panic("vecops: length mismatch")
	}
	var s float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		s += d * d
	}
	return s
}

// Induced returns an SPD-weighted distance sqrt((x-y)ᵀW(x-y)) for a d×d
// symmetric positive-definite weight matrix W.
func Induced[T Scalar](w *mat.SymDense) Dist[T] {
	return func(a, b []T) float64 {
		return math.Sqrt(InducedSq[T](w)(a, b))
	}
}

// InducedSq returns the squared induced distance (x-y)ᵀW(x-y).
func InducedSq[T Scalar](w *mat.SymDense) Dist[T] {
	return func(a, b []T) float64 {
		n, _ := w.Dims()
		if len(a) != n || len(b) != n {
			panic("vecops: length mismatch")
		}
		diff := make([]float64, n)
		for i := range diff {
			diff[i] = float64(a[i]) - float64(b[i])
		}
		var wd mat.VecDense
		wd.MulVec(w, mat.NewVecDense(n, diff))
		var s float64
		for i := 0; i < n; i++ {
			s += diff[i] * wd.AtVec(i)
		}
		return s
	}
}
