// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ga

import (
	"github.com/kortschak/leac/matrix"
	"github.com/kortschak/leac/partition"
)

// Accumulator stages the (ΔS, Δn, changed-mask) of a generation's
// single-gene mutations, deferring their application to a single
// IncrementalUpdate call, the IGKA/FGKA incremental-evaluation contract.
type Accumulator[TF, TS partition.Number] struct {
	k, d     int
	deltaSum [][]TS
	deltaN   []int
	changed  []bool
	moves    []move
}

type move struct {
	p, from, to int
}

// NewAccumulator allocates an empty accumulator over k clusters of
// d-dimensional features.
func NewAccumulator[TF, TS partition.Number](k, d int) *Accumulator[TF, TS] {
	a := &Accumulator[TF, TS]{
		k: k, d: d,
		deltaSum: make([][]TS, k),
		deltaN:   make([]int, k),
		changed:  make([]bool, k),
	}
	for i := range a.deltaSum {
		a.deltaSum[i] = make([]TS, d)
	}
	return a
}

// AccumulateUpdate stages the move of point p from cluster "from" to
// cluster "to", with the given feature vector and frequency, without
// mutating the partition. Call once per staged mutation in a generation.
func (a *Accumulator[TF, TS]) AccumulateUpdate(p, from, to int, feat []TF, freq int) {
	a.moves = append(a.moves, move{p, from, to})
	a.changed[from] = true
	a.changed[to] = true
	rowFrom, rowTo := a.deltaSum[from], a.deltaSum[to]
	f := TS(freq)
	for i, v := range feat {
		rowFrom[i] -= f * TS(v)
		rowTo[i] += f * TS(v)
	}
	a.deltaN[from]--
	a.deltaN[to]++
}

// reset clears all staged state so the accumulator can be reused next
// generation.
func (a *Accumulator[TF, TS]) reset() {
	a.moves = a.moves[:0]
	for i := range a.changed {
		a.changed[i] = false
		a.deltaN[i] = 0
		for j := range a.deltaSum[i] {
			a.deltaSum[i][j] = 0
		}
	}
}

// IncrementalUpdate commits every staged move's (S, n) delta, relinks the
// partition's membership lists, and recomputes the centroid of every
// changed cluster only. It returns the sorted list of
// changed cluster indices so the caller can refresh a chromosome's IGKA
// distance cache (chromosome.RefreshIGKACache) over the same set.
func IncrementalUpdate[TF matrix.Elem, TS partition.Number](a *Accumulator[TF, TS], p *partition.Stats[TF, TS], M *matrix.Dense[TF]) []int {
	for _, mv := range a.moves {
		p.Relink(mv.to, mv.p)
	}
	var changed []int
	for k := 0; k < a.k; k++ {
		if !a.changed[k] {
			continue
		}
		p.ApplyDelta(k, a.deltaSum[k], a.deltaN[k])
		changed = append(changed, k)
	}
	for _, k := range changed {
		p.MeanOf(k, M.Row(k))
	}
	a.reset()
	return changed
}
