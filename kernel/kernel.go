// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kernel implements the nearest-neighbor and clustering inner
// loops shared by every driver: nearest-centroid lookup, full and
// incremental assignment, centroid recomputation, empty-cluster repair,
// and pairwise-nearest-neighbor merging.
package kernel

import (
	"math"

	"github.com/kortschak/leac/dataset"
	"github.com/kortschak/leac/matrix"
	"github.com/kortschak/leac/partition"
	"github.com/kortschak/leac/vecops"
)

// NearestCentroid returns the row of M nearest point under dist, breaking
// ties by lowest row index. A row whose first element is +Inf is a
// hard-deleted cluster sentinel and is skipped.
func NearestCentroid[T matrix.Elem](point []T, M *matrix.Dense[T], dist vecops.Dist[T]) (k int, dStar float64) {
	m, _ := M.Dims()
	best := -1
	bestD := math.Inf(1)
	for i := 0; i < m; i++ {
		row := M.Row(i)
		if isDeletedRow(row) {
			continue
		}
		d := dist(point, row)
		if best == -1 || d < bestD {
			best, bestD = i, d
		}
	}
	return best, bestD
}

func isDeletedRow[T matrix.Elem](row []T) bool {
	return len(row) > 0 && math.IsInf(float64(row[0]), 1)
}

// AssignAll constructs a fresh partition by assigning every point in ds to
// its nearest row of M. Cost Θ(N·K·d).
func AssignAll[TF matrix.Elem, TS partition.Number](M *matrix.Dense[TF], ds *dataset.Dataset[TF], dist vecops.Dist[TF]) *partition.Stats[TF, TS] {
	k, _ := M.Dims()
	n, d := ds.N(), ds.D()
	p := partition.NewStats[TF, TS](n, k, d)
	for i := 0; i < n; i++ {
		feat := ds.Feat(i)
		kStar, _ := NearestCentroid(feat, M, dist)
		p.Add(kStar, i, feat, ds.At(i).Frequency)
	}
	return p
}

// Reassign re-evaluates every point's nearest centroid against an existing
// partition, moving points whose assignment changed. It returns the number
// of points moved and the resulting mean squared distortion (Σ freq·d*² /
// Σ freq).
func Reassign[TF matrix.Elem, TS partition.Number](p *partition.Stats[TF, TS], M *matrix.Dense[TF], ds *dataset.Dataset[TF], dist vecops.Dist[TF]) (changed int, distortion float64) {
	var sumSq float64
	var totalW int
	n := ds.N()
	for i := 0; i < n; i++ {
		feat := ds.Feat(i)
		freq := ds.At(i).Frequency
		kStar, dStar := NearestCentroid(feat, M, dist)
		if cur := p.Member(i); cur != kStar {
			if cur == partition.Unknown {
				p.Add(kStar, i, feat, freq)
			} else {
				p.ChangeMember(kStar, i, feat, freq)
			}
			changed++
		}
		sumSq += float64(freq) * dStar * dStar
		totalW += freq
	}
	if totalW > 0 {
		distortion = sumSq / float64(totalW)
	}
	return changed, distortion
}

// Objective returns the current partition's weighted SSE against M, Σ
// freq(p)·dist(p, M[member(p)])², without reassigning any point. Used by
// the Label, Crisp and IGKA drivers, whose chromosome encodes the partition
// directly, and by the Centroid driver after AssignAll; the Medoid driver
// computes its own objective.
func Objective[TF matrix.Elem, TS partition.Number](p *partition.Stats[TF, TS], M *matrix.Dense[TF], ds *dataset.Dataset[TF], dist vecops.Dist[TF]) float64 {
	var sse float64
	n := ds.N()
	for i := 0; i < n; i++ {
		k := p.Member(i)
		if k == partition.Unknown {
			continue
		}
		d := dist(ds.Feat(i), M.Row(k))
		sse += float64(ds.At(i).Frequency) * d * d
	}
	return sse
}

// RecomputeCentroids overwrites each row of M with S[k]/n[k], leaving empty
// rows untouched, and returns the number of empty clusters found.
func RecomputeCentroids[TF matrix.Elem, TS partition.Number](M *matrix.Dense[TF], p *partition.Stats[TF, TS]) (emptyCount int) {
	k, _ := M.Dims()
	rows := make([][]TF, k)
	for i := range rows {
		rows[i] = M.Row(i)
	}
	return p.MeanCentroids(rows)
}

// NearestRow is NearestCentroid for a Resizable centroid matrix, used by
// the variable-K codebook chromosome whose row count changes at runtime.
func NearestRow[TF matrix.Elem](point []TF, rows *matrix.Resizable[TF], dist vecops.Dist[TF]) (k int, dStar float64) {
	best := -1
	bestD := math.Inf(1)
	for i := 0; i < rows.Rows(); i++ {
		d := dist(point, rows.Row(i))
		if best == -1 || d < bestD {
			best, bestD = i, d
		}
	}
	return best, bestD
}

// AssignAllResizable is AssignAll for a Resizable centroid matrix.
func AssignAllResizable[TF matrix.Elem, TS partition.Number](rows *matrix.Resizable[TF], ds *dataset.Dataset[TF], dist vecops.Dist[TF]) *partition.Stats[TF, TS] {
	p := partition.NewStats[TF, TS](ds.N(), rows.Rows(), ds.D())
	for i := 0; i < ds.N(); i++ {
		feat := ds.Feat(i)
		kStar, _ := NearestRow(feat, rows, dist)
		p.Add(kStar, i, feat, ds.At(i).Frequency)
	}
	return p
}

// RecomputeResizable is RecomputeCentroids for a Resizable centroid matrix.
func RecomputeResizable[TF matrix.Elem, TS partition.Number](rows *matrix.Resizable[TF], p *partition.Stats[TF, TS]) (emptyCount int) {
	out := make([][]TF, rows.Rows())
	for i := range out {
		out[i] = rows.Row(i)
	}
	return p.MeanCentroids(out)
}

// FillEmpty moves, for each empty cluster, the currently-assigned point
// with the largest distance to its own centroid into that cluster as a
// singleton, then recomputes the donor's centroid. Distances are a
// snapshot taken before any moves; ties are broken by smallest point
// index. The donor pool is every currently-assigned point, including
// members of singleton clusters: donating a singleton just relocates the
// emptiness to the donor's old cluster, which a subsequent call resolves
// the same way.
func FillEmpty[TF matrix.Elem, TS partition.Number](p *partition.Stats[TF, TS], M *matrix.Dense[TF], ds *dataset.Dataset[TF], dist vecops.Dist[TF]) {
	k, _ := M.Dims()
	n := ds.N()
	snap := make([]float64, n)
	for i := 0; i < n; i++ {
		m := p.Member(i)
		if m == partition.Unknown {
			continue
		}
		snap[i] = dist(ds.Feat(i), M.Row(m))
	}
	for kc := 0; kc < k; kc++ {
		if p.Count(kc) > 0 {
			continue
		}
		donor := -1
		bestP := -1
		bestD := -1.0
		for i := 0; i < n; i++ {
			m := p.Member(i)
			if m == partition.Unknown || m == kc {
				continue
			}
			if snap[i] > bestD {
				bestD, bestP, donor = snap[i], i, m
			}
		}
		if bestP == -1 {
			continue
		}
		freq := ds.At(bestP).Frequency
		p.ChangeMember(kc, bestP, ds.Feat(bestP), freq)
		p.MeanOf(kc, M.Row(kc))
		p.MeanOf(donor, M.Row(donor))
	}
}
