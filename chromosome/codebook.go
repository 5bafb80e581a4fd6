// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chromosome

import (
	"github.com/kortschak/leac/matrix"
	"github.com/kortschak/leac/partition"
)

// Optimality tracks which of {centroids optimal given partition, partition
// optimal given centroids} currently hold for a Codebook chromosome.
type Optimality uint8

const (
	OptimalityNone Optimality = iota
	OptimalityCB              // Centroids optimal given partition.
	OptimalityPA              // Partition optimal given centroids.
	OptimalityBoth
)

// Codebook is the variable-K encoding: a Resizable matrix of the current k
// rows (k in [Kmin, Kmax]) plus a PartitionLinked with running stats and an
// Optimality tag.
type Codebook[TF, TS partition.Number] struct {
	Base
	Rows       *matrix.Resizable[TF]
	Partition  *partition.Stats[TF, TS]
	Optimality Optimality
	KMin, KMax int
}

// NewCodebook allocates a Codebook chromosome over n points and
// d-dimensional features, starting at k clusters (k in [kMin, kMax]).
func NewCodebook[TF, TS partition.Number](n, d, k, kMin, kMax int) *Codebook[TF, TS] {
	return &Codebook[TF, TS]{
		Rows:      matrix.NewResizable[TF](d, kMax),
		Partition: partition.NewStats[TF, TS](n, k, d),
		KMin:      kMin,
		KMax:      kMax,
	}
}

// K returns the current number of clusters.
func (c *Codebook[TF, TS]) K() int { return c.Partition.K() }

// ComputeValid reports whether every cluster has at least one point and K
// is within [KMin, KMax].
func (c *Codebook[TF, TS]) ComputeValid() bool {
	k := c.K()
	if k < c.KMin || k > c.KMax {
		return false
	}
	for i := 0; i < k; i++ {
		if c.Partition.Count(i) == 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (c *Codebook[TF, TS]) Clone() *Codebook[TF, TS] {
	rows := matrix.NewResizable[TF](c.Rows.D(), c.KMax)
	for i := 0; i < c.Rows.Rows(); i++ {
		rows.PushRow(c.Rows.Row(i))
	}
	return &Codebook[TF, TS]{
		Base:       c.Base,
		Rows:       rows,
		Partition:  c.Partition.Clone(),
		Optimality: c.Optimality,
		KMin:       c.KMin,
		KMax:       c.KMax,
	}
}

// CopyFrom deep-copies src into c in place.
func (c *Codebook[TF, TS]) CopyFrom(src *Codebook[TF, TS]) {
	cloned := src.Clone()
	*c = *cloned
}
