// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/kortschak/leac/chromosome"
	"github.com/kortschak/leac/dataset"
	"github.com/kortschak/leac/kernel"
	"github.com/kortschak/leac/matrix"
	"github.com/kortschak/leac/vecops"
)

// assignFromLabel reads the per-point cluster assignment directly off a
// Label chromosome's gene vector.
func assignFromLabel(l *chromosome.Label) []int {
	out := make([]int, len(l.Genes))
	for i, g := range l.Genes {
		out[i] = int(g)
	}
	return out
}

// assignFromCrisp reads the per-point cluster assignment off a Crisp
// chromosome's column memberships.
func assignFromCrisp(c *chromosome.Crisp) []int {
	_, n := c.M.Dims()
	out := make([]int, n)
	for p := 0; p < n; p++ {
		out[p] = c.M.Member(p)
	}
	return out
}

// assignFromCodebook reads the per-point cluster assignment off a
// Codebook chromosome's partition.
func assignFromCodebook[TF matrix.Elem](cb *chromosome.Codebook[TF, float64]) []int {
	n := cb.Partition.N()
	out := make([]int, n)
	for p := 0; p < n; p++ {
		out[p] = cb.Partition.Member(p)
	}
	return out
}

// assignFromCentroid re-derives the per-point cluster assignment by
// nearest-centroid lookup against ds, since the Centroid encoding does not
// itself carry a partition.
func assignFromCentroid[TF matrix.Elem](c *chromosome.Centroid[TF], ds *dataset.Dataset[TF], dist vecops.Dist[TF]) []int {
	n := ds.N()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		k, _ := kernel.NearestCentroid(ds.Feat(i), c.Rows, dist)
		out[i] = k
	}
	return out
}

// assignFromMedoid re-derives the per-point cluster assignment by treating
// the chromosome's chosen prototype points as ad hoc centroids and
// nearest-centroid-assigning every point to its closest prototype.
func assignFromMedoid[TF matrix.Elem](m *chromosome.Medoid, ds *dataset.Dataset[TF], dist vecops.Dist[TF]) []int {
	protos := m.Prototypes()
	d := ds.D()
	M := matrix.NewDense[TF](len(protos), d)
	for i, p := range protos {
		M.CopyRow(i, ds.Feat(p))
	}
	n := ds.N()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		k, _ := kernel.NearestCentroid(ds.Feat(i), M, dist)
		out[i] = k
	}
	return out
}
