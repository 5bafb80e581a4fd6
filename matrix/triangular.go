// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

// Triangular is a packed lower-triangular n×n matrix (diagonal included)
// suited to a pairwise dissimilarity table. Access (i, j) requires i ≥ j.
type Triangular[T Elem] struct {
	n    int
	data []T
}

// NewTriangular allocates a zeroed packed lower-triangular n×n matrix.
func NewTriangular[T Elem](n int) *Triangular[T] {
	return &Triangular[T]{n: n, data: make([]T, n*(n+1)/2)}
}

// N returns the matrix order.
func (t *Triangular[T]) N() int { return t.n }

func (t *Triangular[T]) index(i, j int) int {
	if i < j {
		panic("matrix: triangular access requires i >= j")
	}
	return i*(i+1)/2 + j
}

// At returns element (i, j), i ≥ j.
func (t *Triangular[T]) At(i, j int) T { return t.data[t.index(i, j)] }

// Set sets element (i, j), i ≥ j.
func (t *Triangular[T]) Set(i, j int, v T) { t.data[t.index(i, j)] = v }
