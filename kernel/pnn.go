// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"

	"github.com/kortschak/leac/matrix"
	"github.com/kortschak/leac/partition"
	"github.com/kortschak/leac/vecops"
)

// MergeEvent records one pairwise-nearest-neighbor merge step: the cluster
// From was folded into Into, at the given distortion cost.
type MergeEvent struct {
	Into, From int
	Delta      float64
}

type ncEntry struct {
	j     int
	delta float64
}

// mergeCost is the weighted distortion increase of merging clusters i and
// j: (ni·nj)/(ni+nj) · ‖Mi − Mj‖².
func mergeCost[TF matrix.Elem, TS partition.Number](p *partition.Stats[TF, TS], M *matrix.Resizable[TF], i, j int) float64 {
	ni, nj := float64(p.Count(i)), float64(p.Count(j))
	if ni+nj == 0 {
		return 0
	}
	w := (ni * nj) / (ni + nj)
	return w * vecops.EuclideanSq(M.Row(i), M.Row(j))
}

// PNNMerge repeatedly merges the pair of clusters minimizing the weighted
// distortion increase Δ(i,j), until K = kTarget, maintaining a
// nearest-cluster cache so only clusters whose nearest neighbor is
// invalidated by a merge are recomputed. It reports the sequence of
// merges performed, in order.
func PNNMerge[TF matrix.Elem, TS partition.Number](p *partition.Stats[TF, TS], M *matrix.Resizable[TF], kTarget int) []MergeEvent {
	var events []MergeEvent
	if p.K() <= kTarget {
		return events
	}

	nc := make([]ncEntry, p.K())
	id := make([]int, p.K())
	for k := range id {
		id[k] = k
	}
	recompute := func(k int) {
		best, bestDelta := -1, math.Inf(1)
		for j := range nc {
			if j == k {
				continue
			}
			d := mergeCost(p, M, k, j)
			if d < bestDelta {
				best, bestDelta = j, d
			}
		}
		nc[k] = ncEntry{j: best, delta: bestDelta}
	}
	for k := range nc {
		recompute(k)
	}

	for p.K() > kTarget {
		iStar, jStar, best := -1, -1, math.Inf(1)
		for k, e := range nc {
			if e.j < 0 {
				continue
			}
			a, b := k, e.j
			if a > b {
				a, b = b, a
			}
			switch {
			case e.delta < best:
				iStar, jStar, best = a, b, e.delta
			case e.delta == best && (a < iStar || (a == iStar && b < jStar)):
				iStar, jStar, best = a, b, e.delta
			}
		}

		ni, nj := p.Count(iStar), p.Count(jStar)
		M.MergeTwoRows(iStar, jStar, ni, nj)
		p.Join(jStar, iStar)
		events = append(events, MergeEvent{Into: id[iStar], From: id[jStar], Delta: best})

		last := len(nc) - 1
		nc[jStar] = nc[last]
		id[jStar] = id[last]
		nc = nc[:last]
		id = id[:last]
		for k := range nc {
			if k == iStar {
				recompute(k)
				continue
			}
			switch nc[k].j {
			case iStar, jStar:
				recompute(k)
			case last:
				if jStar != last {
					nc[k].j = jStar
				} else {
					recompute(k)
				}
			}
		}
	}
	return events
}

// RemoveEmptyClusters folds every empty cluster's (vacant) slot away by
// joining the current last cluster into it, shrinking K by one each time,
// until no cluster is empty.
func RemoveEmptyClusters[TF matrix.Elem, TS partition.Number](p *partition.Stats[TF, TS], M *matrix.Resizable[TF]) {
	for {
		k := p.K()
		empty := -1
		for i := 0; i < k; i++ {
			if p.Count(i) == 0 {
				empty = i
				break
			}
		}
		if empty == -1 {
			return
		}
		last := k - 1
		p.Join(last, empty)
		M.RemoveRow(empty)
	}
}

// PNNFast is the common wrapper variable-K drivers call after a mutation
// may have left empty clusters: strip empties, run the greedy PNN merge
// down to kTarget, then clamp K to kTarget as a final safety net.
func PNNFast[TF matrix.Elem, TS partition.Number](p *partition.Stats[TF, TS], M *matrix.Resizable[TF], kTarget int) []MergeEvent {
	RemoveEmptyClusters(p, M)
	events := PNNMerge(p, M, kTarget)
	if p.K() > kTarget {
		p.Resize(kTarget)
	}
	return events
}
