// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ga implements the genetic operator library shared by every
// driver: initialization, selection, crossover, mutation, replacement, and
// the IGKA incremental-evaluation accumulator. Every stochastic draw is
// threaded through a caller-owned *rand.Rand, the only mutable resource a
// run carries.
package ga

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kortschak/leac/chromosome"
	"github.com/kortschak/leac/dataset"
	"github.com/kortschak/leac/kernel"
	"github.com/kortschak/leac/matrix"
	"github.com/kortschak/leac/partition"
	"github.com/kortschak/leac/vecops"
)

// InitLabel draws every gene independently and uniformly from [0, K).
func InitLabel(l *chromosome.Label, rng *rand.Rand) {
	for i := range l.Genes {
		l.Genes[i] = int32(rng.Intn(l.K))
	}
}

// InitCentroid picks K distinct random points from ds (rejection sampling
// without replacement) and copies their features into c's rows.
func InitCentroid[TF matrix.Elem](c *chromosome.Centroid[TF], ds *dataset.Dataset[TF], rng *rand.Rand) {
	k := c.K()
	n := ds.N()
	chosen := make(map[int]bool, k)
	for i := 0; i < k; i++ {
		p := distinctIndex(rng, n, chosen)
		chosen[p] = true
		c.Rows.CopyRow(i, ds.Feat(p))
	}
}

// InitMedoid sets every bit independently Bernoulli(pInit).
func InitMedoid(m *chromosome.Medoid, pInit float64, rng *rand.Rand) {
	b := distuv.Bernoulli{P: pInit, Src: rng}
	n := m.N()
	for p := 0; p < n; p++ {
		m.Set(p, b.Rand() == 1)
	}
}

// DefaultMedoidProbInit returns K/N, the medoid driver's default p_init
// when the caller does not configure one explicitly.
func DefaultMedoidProbInit(k, n int) float64 {
	return float64(k) / float64(n)
}

// InitCodebook draws K uniformly from [KMin, KMax], picks K distinct
// dataset points as the initial rows, and assigns every point to its
// nearest row to build the initial partition.
func InitCodebook[TF matrix.Elem, TS partition.Number](cb *chromosome.Codebook[TF, TS], ds *dataset.Dataset[TF], dist vecops.Dist[TF], rng *rand.Rand) {
	kNew := cb.KMin
	if cb.KMax > cb.KMin {
		kNew = cb.KMin + rng.Intn(cb.KMax-cb.KMin+1)
	}
	cb.Rows = matrix.NewResizable[TF](ds.D(), cb.KMax)
	chosen := make(map[int]bool, kNew)
	for i := 0; i < kNew; i++ {
		p := distinctIndex(rng, ds.N(), chosen)
		chosen[p] = true
		cb.Rows.PushRow(ds.Feat(p))
	}
	cb.Partition = kernel.AssignAllResizable[TF, TS](cb.Rows, ds, dist)
}

// InitCrisp assigns every column independently and uniformly to a row in
// [0, K), mirroring InitLabel over the crisp-bit-matrix encoding.
func InitCrisp(c *chromosome.Crisp, rng *rand.Rand) {
	k, n := c.M.Dims()
	for p := 0; p < n; p++ {
		c.M.SetMember(p, rng.Intn(k))
	}
}

func distinctIndex(rng *rand.Rand, n int, chosen map[int]bool) int {
	for {
		p := rng.Intn(n)
		if !chosen[p] {
			return p
		}
	}
}
