// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runstate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestBudgetExceededByGenerationCount(t *testing.T) {
	b := &Budget{MaxGenerations: 5}
	b.Start()
	assert.False(t, b.Exceeded(4))
	assert.True(t, b.Exceeded(5))
}

func TestBudgetExceededByWallClock(t *testing.T) {
	b := &Budget{MaxWallClock: 10 * time.Millisecond}
	b.Start()
	assert.False(t, b.Exceeded(0))
	time.Sleep(15 * time.Millisecond)
	assert.True(t, b.Exceeded(0))
}

func TestBudgetUnboundedNeverExceeds(t *testing.T) {
	b := &Budget{}
	b.Start()
	assert.False(t, b.Exceeded(1_000_000))
}

func TestSummarizeMatchesHandComputedStats(t *testing.T) {
	g := Summarize(3, []float64{1, 2, 3, 4})
	assert.Equal(t, 3, g.Index)
	assert.InDelta(t, 1, g.Best, 1e-9)
	assert.InDelta(t, 1, g.Min, 1e-9)
	assert.InDelta(t, 4, g.Max, 1e-9)
	assert.InDelta(t, 2.5, g.Mean, 1e-9)
}

func TestHistoryBestOverallPicksMinimumAcrossGenerations(t *testing.T) {
	var h History
	h.Append(Summarize(0, []float64{10, 12}))
	h.Append(Summarize(1, []float64{5, 6}))
	h.Append(Summarize(2, []float64{7, 8}))
	gen, best, ok := h.BestOverall()
	require.True(t, ok)
	assert.Equal(t, 1, gen)
	assert.InDelta(t, 5, best, 1e-9)
}

func TestHistoryBestOverallEmpty(t *testing.T) {
	var h History
	_, _, ok := h.BestOverall()
	assert.False(t, ok)
}

func TestStorePutLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenStore(dir + "/history.db")
	require.NoError(t, err)
	defer s.Close()

	rng := rand.New(rand.NewSource(42))
	run := NewRunID(RandReader{Rng: rng}, 1700000000000)
	for gen := 0; gen < 3; gen++ {
		g := Summarize(gen, []float64{float64(gen) + 1, float64(gen) + 2})
		require.NoError(t, s.Put(run, g))
	}

	got, err := s.Load(run)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, g := range got {
		assert.Equal(t, i, g.Index)
	}
}
