// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chromosome

import "github.com/kortschak/leac/matrix"

// Centroid is the length-K·d vector encoding, decoded by row-slicing into K
// centroids. It is always a syntactically valid vector; semantic validity
// (every cluster non-empty) is established after assignment runs against
// it.
type Centroid[T matrix.Elem] struct {
	Base
	Rows *matrix.Dense[T]
}

// NewCentroid allocates a K×d Centroid chromosome, zero-initialized.
func NewCentroid[T matrix.Elem](k, d int) *Centroid[T] {
	return &Centroid[T]{Rows: matrix.NewDense[T](k, d)}
}

// K returns the number of centroids.
func (c *Centroid[T]) K() int { m, _ := c.Rows.Dims(); return m }

// D returns the feature dimensionality.
func (c *Centroid[T]) D() int { _, n := c.Rows.Dims(); return n }

// Clone returns a deep copy.
func (c *Centroid[T]) Clone() *Centroid[T] {
	return &Centroid[T]{Base: c.Base, Rows: c.Rows.Clone()}
}

// CopyFrom deep-copies src into c in place.
func (c *Centroid[T]) CopyFrom(src *Centroid[T]) {
	c.Base = src.Base
	c.Rows = src.Rows.Clone()
}

// Genes returns the chromosome flattened as a single length-K·d vector, in
// row-major order, matching the encoding's treatment as a flat gene vector
// for crossover/mutation purposes.
func (c *Centroid[T]) Genes() []T {
	return c.Rows.Data()
}
