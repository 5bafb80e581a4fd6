// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/kortschak/leac/chromosome"
	"github.com/kortschak/leac/dataset"
	"github.com/kortschak/leac/matrix"
	"github.com/kortschak/leac/partition"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestInitLabelRange(t *testing.T) {
	l := chromosome.NewLabel(20, 3)
	InitLabel(l, newRNG(1))
	for _, g := range l.Genes {
		assert.GreaterOrEqual(t, g, int32(0))
		assert.Less(t, g, int32(3))
	}
}

func TestLabelOnePointProducesMix(t *testing.T) {
	p1 := chromosome.NewLabel(6, 2)
	p2 := chromosome.NewLabel(6, 2)
	for i := range p1.Genes {
		p1.Genes[i] = 0
		p2.Genes[i] = 1
	}
	c1, c2 := chromosome.NewLabel(6, 2), chromosome.NewLabel(6, 2)
	LabelOnePoint(c1, c2, p1, p2, newRNG(2))
	// Every gene of c1 is either all-0-prefix/all-1-suffix or the inverse in c2.
	for i := range c1.Genes {
		assert.NotEqual(t, c1.Genes[i], c2.Genes[i])
	}
}

func TestLabelSingleGeneNeverEmptiesACluster(t *testing.T) {
	l := chromosome.NewLabel(5, 3)
	l.Genes[0], l.Genes[1], l.Genes[2], l.Genes[3], l.Genes[4] = 0, 0, 1, 1, 2
	rng := newRNG(3)
	for i := 0; i < 200; i++ {
		mutated, _ := LabelSingleGene(l, 1.0, rng)
		counts := l.CountOccupancy()
		for _, n := range counts {
			assert.Greater(t, n, 0)
		}
		_ = mutated
	}
}

func TestAdaptiveMutationRateEndpointE6(t *testing.T) {
	n := 100
	a := AdaptiveMutationRate{PM0: 0.1, Denominator: n}
	genMax := 50
	pm := a.At(genMax, genMax)
	assert.InDelta(t, 1.0/float64(n), pm, 1e-12)
}

func TestRouletteIndexFavorsFitter(t *testing.T) {
	pop := []chromosome.Label{{Base: chromosome.Base{Fitness: 0.001}}, {Base: chromosome.Base{Fitness: 1000}}}
	rng := newRNG(4)
	counts := [2]int{}
	for i := 0; i < 500; i++ {
		counts[RouletteIndex(pop, rng)]++
	}
	assert.Greater(t, counts[1], counts[0])
}

func TestRouletteIndexAllInvalidFallsBackUniform(t *testing.T) {
	pop := []chromosome.Label{{}, {}, {}}
	for i := range pop {
		pop[i].MarkInvalid()
	}
	rng := newRNG(5)
	idx := RouletteIndex(pop, rng)
	assert.True(t, idx >= 0 && idx < len(pop))
}

func TestCentroidOnePointAlignedRespectsRowBoundary(t *testing.T) {
	p1 := chromosome.NewCentroid[float64](3, 2)
	p2 := chromosome.NewCentroid[float64](3, 2)
	for i := 0; i < 3; i++ {
		p1.Rows.CopyRow(i, []float64{float64(i), float64(i)})
		p2.Rows.CopyRow(i, []float64{float64(i) + 10, float64(i) + 10})
	}
	c1, c2 := chromosome.NewCentroid[float64](3, 2), chromosome.NewCentroid[float64](3, 2)
	CentroidOnePointAligned[float64](c1, c2, p1, p2, newRNG(6))
	// Every row of c1 is intact from one parent (never split mid-row).
	for i := 0; i < 3; i++ {
		row := c1.Rows.Row(i)
		assert.Equal(t, row[0], row[1])
	}
}

func TestMedoidUniformOnlyTouchesDisagreements(t *testing.T) {
	p1 := chromosome.NewMedoid(8, 3)
	p2 := chromosome.NewMedoid(8, 3)
	for i := 0; i < 4; i++ {
		p1.Set(i, true)
	}
	for i := 4; i < 8; i++ {
		p2.Set(i, true)
	}
	c1, c2 := chromosome.NewMedoid(8, 3), chromosome.NewMedoid(8, 3)
	MedoidUniform(c1, c2, p1, p2, 1.0, newRNG(7))
	// pc=1.0: every disagreement swaps, so c1 should end up identical to p2 and vice versa.
	for i := 0; i < 8; i++ {
		assert.Equal(t, p2.Get(i), c1.Get(i))
		assert.Equal(t, p1.Get(i), c2.Get(i))
	}
}

func TestIncrementalUpdateMatchesFromScratchE5(t *testing.T) {
	ds, err := dataset.New([]dataset.Point[float64]{
		dataset.NewPoint([]float64{0}),
		dataset.NewPoint([]float64{1}),
		dataset.NewPoint([]float64{2}),
		dataset.NewPoint([]float64{10}),
		dataset.NewPoint([]float64{11}),
		dataset.NewPoint([]float64{12}),
	})
	require.NoError(t, err)

	M := matrix.NewDense[float64](2, 1)
	M.Set(0, 0, 1)
	M.Set(1, 0, 11)
	p := partition.NewStats[float64, float64](6, 2, 1)
	for i := 0; i < 3; i++ {
		p.Add(0, i, ds.Feat(i), 1)
	}
	for i := 3; i < 6; i++ {
		p.Add(1, i, ds.Feat(i), 1)
	}

	acc := NewAccumulator[float64, float64](2, 1)
	acc.AccumulateUpdate(2, 0, 1, ds.Feat(2), 1)
	acc.AccumulateUpdate(3, 1, 0, ds.Feat(3), 1)
	changed := IncrementalUpdate(acc, p, M)
	assert.ElementsMatch(t, []int{0, 1}, changed)

	wantSum0 := ds.Feat(0)[0] + ds.Feat(1)[0] + ds.Feat(3)[0]
	wantSum1 := ds.Feat(2)[0] + ds.Feat(4)[0] + ds.Feat(5)[0]
	assert.InDelta(t, wantSum0, p.Sum(0)[0], 1e-9)
	assert.InDelta(t, wantSum1, p.Sum(1)[0], 1e-9)
	assert.Equal(t, 3, p.Count(0))
	assert.Equal(t, 3, p.Count(1))
	assert.InDelta(t, wantSum0/3, M.At(0, 0), 1e-9)
	assert.InDelta(t, wantSum1/3, M.At(1, 0), 1e-9)
}

func TestDistanceBasedTwoPointMedoidWordAligned(t *testing.T) {
	p1 := chromosome.NewMedoid(128, 4)
	p2 := chromosome.NewMedoid(128, 4)
	for i := 0; i < 64; i++ {
		p1.Set(i, true)
	}
	for i := 64; i < 128; i++ {
		p2.Set(i, true)
	}
	c1, c2 := chromosome.NewMedoid(128, 4), chromosome.NewMedoid(128, 4)
	rng := newRNG(8)
	for i := 0; i < 20; i++ {
		DistanceBasedTwoPointMedoid(c1, c2, p1, p2, rng)
	}
	assert.Equal(t, 128, c1.N())
}
