// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func points() [][]float64 {
	return [][]float64{{1}, {2}, {3}, {10}, {11}, {12}}
}

func TestAddSubInvariants(t *testing.T) {
	pts := points()
	s := NewStats[float64, float64](len(pts), 2, 1)
	s.Add(0, 0, pts[0], 1)
	s.Add(0, 1, pts[1], 1)
	s.Add(0, 2, pts[2], 1)
	s.Add(1, 3, pts[3], 1)
	s.Add(1, 4, pts[4], 1)
	s.Add(1, 5, pts[5], 1)

	assert.Equal(t, 3, s.Count(0))
	assert.Equal(t, 3, s.Count(1))
	assert.InDeltaSlice(t, []float64{6}, s.Sum(0), 1e-9)
	assert.InDeltaSlice(t, []float64{33}, s.Sum(1), 1e-9)
	assertListMatchesMember(t, s, pts)

	s.Sub(1, pts[1], 1)
	assert.Equal(t, 2, s.Count(0))
	assert.InDeltaSlice(t, []float64{4}, s.Sum(0), 1e-9)
	assert.Equal(t, Unknown, s.Member(1))
	assertListMatchesMember(t, s, pts)

	s.ChangeMember(1, 0, pts[0], 1)
	assert.Equal(t, 1, s.Member(0))
	assert.Equal(t, 1, s.Count(0))
	assert.Equal(t, 4, s.Count(1))
	assertListMatchesMember(t, s, pts)
}

func TestMeanCentroidsRoundsForIntegerFeatures(t *testing.T) {
	s := NewStats[int, int](2, 1, 1)
	s.Add(0, 0, []int{1}, 1)
	s.Add(0, 1, []int{2}, 1)
	out := [][]int{{0}}
	empty := s.MeanCentroids(out)
	assert.Equal(t, 0, empty)
	assert.Equal(t, 2, out[0][0]) // mean 1.5 rounds to 2
}

func TestJoinCompactsClusters(t *testing.T) {
	pts := points()
	s := NewStats[float64, float64](len(pts), 3, 1)
	s.Add(0, 0, pts[0], 1)
	s.Add(1, 1, pts[1], 1)
	s.Add(1, 2, pts[2], 1)
	s.Add(2, 3, pts[3], 1)
	s.Add(2, 4, pts[4], 1)
	s.Add(2, 5, pts[5], 1)

	s.Join(0, 1) // merge cluster 0 into 1; cluster 2 becomes cluster 0.
	require.Equal(t, 2, s.K())
	assert.Equal(t, 3, s.Count(0)) // former cluster 2
	assert.Equal(t, 3, s.Count(1)) // cluster 1 gained cluster 0's point
	assertListMatchesMember(t, s, pts)
}

func assertListMatchesMember(t *testing.T, s *Stats[float64, float64], pts [][]float64) {
	t.Helper()
	for k := 0; k < s.K(); k++ {
		var sum float64
		listed := s.Iterator(k)
		for _, p := range listed {
			require.Equal(t, k, s.Member(p))
			sum += pts[p][0]
		}
		assert.Equal(t, s.Count(k), len(listed))
		assert.InDelta(t, s.Sum(k)[0], sum, 1e-9)
	}
}
