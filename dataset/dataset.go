// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset holds the immutable Point and Dataset types the rest of
// the library operates over. Parsing a dataset from an external format
// (CSV, ARFF, ...) is deliberately out of scope: Dataset is built from an
// in-memory slice of points.
package dataset

import (
	"errors"
	"fmt"

	"github.com/kortschak/leac/vecops"
)

// ErrEmptyDataset is returned by New when given zero points.
var ErrEmptyDataset = errors.New("dataset: empty dataset")

// Point is an immutable d-tuple of feature scalars, optionally carrying a
// supervised class label and an integer frequency representing weighted
// duplicates. Points are never mutated after creation.
type Point[T vecops.Scalar] struct {
	Feat      []T
	Class     string // optional; empty means unlabeled.
	Frequency int    // weight; defaults to 1 if zero at construction.
}

// NewPoint returns a Point with the given features, an empty class, and
// frequency 1.
func NewPoint[T vecops.Scalar](feat []T) Point[T] {
	return Point[T]{Feat: feat, Frequency: 1}
}

// Dataset is a fixed-d, immutable sequence of N points, accessed by
// position.
type Dataset[T vecops.Scalar] struct {
	points []Point[T]
	d      int
}

// New builds a Dataset from points, validating that every point shares the
// same dimensionality d and that frequency defaults to 1 when unset.
// Returns ErrEmptyDataset if points is empty.
func New[T vecops.Scalar](points []Point[T]) (*Dataset[T], error) {
	if len(points) == 0 {
		return nil, ErrEmptyDataset
	}
	d := len(points[0].Feat)
	if d == 0 {
		return nil, fmt.Errorf("dataset: points must have at least one feature")
	}
	out := make([]Point[T], len(points))
	for i, p := range points {
		if len(p.Feat) != d {
			return nil, fmt.Errorf("dataset: point %d has %d features, want %d", i, len(p.Feat), d)
		}
		if p.Frequency == 0 {
			p.Frequency = 1
		}
		out[i] = p
	}
	return &Dataset[T]{points: out, d: d}, nil
}

// N returns the number of points.
func (d *Dataset[T]) N() int { return len(d.points) }

// D returns the feature dimensionality.
func (d *Dataset[T]) D() int { return d.d }

// At returns point i.
func (d *Dataset[T]) At(i int) Point[T] { return d.points[i] }

// Feat returns the feature vector of point i.
func (d *Dataset[T]) Feat(i int) []T { return d.points[i].Feat }

// TotalWeight returns Σ(frequency of every point), the effective point
// count under frequency weighting.
func (d *Dataset[T]) TotalWeight() int {
	n := 0
	for _, p := range d.points {
		n += p.Frequency
	}
	return n
}

// HasLabels reports whether any point carries a non-empty Class, meaning a
// supervised evaluation measure can be computed against it.
func (d *Dataset[T]) HasLabels() bool {
	for _, p := range d.points {
		if p.Class != "" {
			return true
		}
	}
	return false
}
