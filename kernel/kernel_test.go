// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kortschak/leac/dataset"
	"github.com/kortschak/leac/matrix"
	"github.com/kortschak/leac/partition"
	"github.com/kortschak/leac/vecops"
)

func toyDataset(t *testing.T) *dataset.Dataset[float64] {
	t.Helper()
	pts := []dataset.Point[float64]{
		dataset.NewPoint([]float64{1}),
		dataset.NewPoint([]float64{2}),
		dataset.NewPoint([]float64{3}),
		dataset.NewPoint([]float64{10}),
		dataset.NewPoint([]float64{11}),
		dataset.NewPoint([]float64{12}),
	}
	ds, err := dataset.New(pts)
	require.NoError(t, err)
	return ds
}

func TestNearestCentroidTieBreakLowestIndex(t *testing.T) {
	M := matrix.NewDense[float64](2, 1)
	M.Set(0, 0, 0)
	M.Set(1, 0, 0)
	k, d := NearestCentroid([]float64{5}, M, vecops.Euclidean[float64])
	assert.Equal(t, 0, k)
	assert.Equal(t, 5.0, d)
}

func TestNearestCentroidSkipsDeletedRow(t *testing.T) {
	M := matrix.NewDense[float64](2, 1)
	M.Set(0, 0, posInf())
	M.Set(1, 0, 100)
	k, _ := NearestCentroid([]float64{5}, M, vecops.Euclidean[float64])
	assert.Equal(t, 1, k)
}

func posInf() float64 {
	var z float64
	return 1 / z
}

func TestAssignAllE1TwoClusters(t *testing.T) {
	ds := toyDataset(t)
	M := matrix.NewDense[float64](2, 1)
	M.Set(0, 0, 2)
	M.Set(1, 0, 11)
	p := AssignAll[float64, float64](M, ds, vecops.Euclidean[float64])
	assert.Equal(t, 3, p.Count(0))
	assert.Equal(t, 3, p.Count(1))
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0, p.Member(i))
	}
	for i := 3; i < 6; i++ {
		assert.Equal(t, 1, p.Member(i))
	}
}

func TestRecomputeCentroidsMatchesMean(t *testing.T) {
	ds := toyDataset(t)
	M := matrix.NewDense[float64](2, 1)
	M.Set(0, 0, 2)
	M.Set(1, 0, 11)
	p := AssignAll[float64, float64](M, ds, vecops.Euclidean[float64])
	empty := RecomputeCentroids(M, p)
	assert.Equal(t, 0, empty)
	assert.Equal(t, 2.0, M.At(0, 0))
	assert.Equal(t, 11.0, M.At(1, 0))
}

func TestReassignConverges(t *testing.T) {
	ds := toyDataset(t)
	M := matrix.NewDense[float64](2, 1)
	M.Set(0, 0, 1)
	M.Set(1, 0, 12)
	p := AssignAll[float64, float64](M, ds, vecops.Euclidean[float64])
	RecomputeCentroids(M, p)
	changed, _ := Reassign(p, M, ds, vecops.Euclidean[float64])
	assert.Equal(t, 0, changed)
}

func TestFillEmptyPicksFarthestSingleton(t *testing.T) {
	ds := toyDataset(t)
	M := matrix.NewDense[float64](2, 1)
	M.Set(0, 0, 6.5)
	M.Set(1, 0, 1000) // cluster 1 starts empty relative to ds.
	p := partition.NewStats[float64, float64](ds.N(), 2, 1)
	for i := 0; i < ds.N(); i++ {
		p.Add(0, i, ds.Feat(i), 1)
	}
	FillEmpty(p, M, ds, vecops.Euclidean[float64])
	assert.Equal(t, 1, p.Count(1))
	assert.Equal(t, 5, p.Count(0))
	// The farthest point from 6.5 among {1,2,3,10,11,12} is 12 (dist 5.5) or 1 (dist 5.5);
	// ties broken by smallest index, so point 0 (feature 1) should move.
	assert.Equal(t, 1, p.Member(0))
}

func TestPNNMergeE4AdjacentLineClusters(t *testing.T) {
	const k0 = 10
	p := partition.NewStats[float64, float64](k0, k0, 1)
	M := matrix.NewResizable[float64](1, k0)
	for i := 0; i < k0; i++ {
		M.PushRow([]float64{float64(i)})
		p.Add(i, i, []float64{float64(i)}, 1)
	}
	events := PNNMerge[float64, float64](p, M, 3)
	assert.Equal(t, 7, len(events))
	assert.Equal(t, 3, p.K())
	assert.Equal(t, 3, M.Rows())

	total := 0
	for _, n := range clusterSizes(p) {
		assert.Greater(t, n, 0)
		total += n
	}
	assert.Equal(t, k0, total)
	for i := 0; i < M.Rows(); i++ {
		v := M.Row(i)[0]
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, float64(k0-1))
	}
}

func clusterSizes(p *partition.Stats[float64, float64]) []int {
	var sizes []int
	for k := 0; k < p.K(); k++ {
		sizes = append(sizes, p.Count(k))
	}
	return sizes
}

func TestRemoveEmptyClustersCompacts(t *testing.T) {
	p := partition.NewStats[float64, float64](3, 3, 1)
	p.Add(0, 0, []float64{1}, 1)
	p.Add(2, 1, []float64{2}, 1)
	p.Add(2, 2, []float64{3}, 1)
	M := matrix.NewResizable[float64](1, 3)
	M.PushRow([]float64{1})
	M.PushRow([]float64{0})
	M.PushRow([]float64{2.5})
	RemoveEmptyClusters(p, M)
	require.Equal(t, 2, p.K())
	assert.Equal(t, 1, p.Count(0))
	assert.Equal(t, 2, p.Count(1))
}

func TestSupervisedMeasuresPerfectPartitionScoresOne(t *testing.T) {
	pts := []dataset.Point[float64]{
		{Feat: []float64{0}, Class: "a", Frequency: 1},
		{Feat: []float64{0}, Class: "a", Frequency: 1},
		{Feat: []float64{9}, Class: "b", Frequency: 1},
		{Feat: []float64{9}, Class: "b", Frequency: 1},
	}
	ds, err := dataset.New(pts)
	require.NoError(t, err)
	assign := []int{0, 0, 1, 1}
	rand, ari, f := SupervisedMeasures(assign, ds)
	assert.InDelta(t, 1.0, rand, 1e-9)
	assert.InDelta(t, 1.0, ari, 1e-9)
	assert.InDelta(t, 1.0, f, 1e-9)
}
