// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New[float64](nil)
	assert.True(t, errors.Is(err, ErrEmptyDataset))
}

func TestNewRejectsDimensionMismatch(t *testing.T) {
	_, err := New([]Point[float64]{
		NewPoint([]float64{1, 2}),
		NewPoint([]float64{1}),
	})
	require.Error(t, err)
}

func TestNewDefaultsFrequencyToOne(t *testing.T) {
	ds, err := New([]Point[float64]{
		{Feat: []float64{1, 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ds.At(0).Frequency)
}

func TestDatasetAccessors(t *testing.T) {
	ds, err := New([]Point[float64]{
		NewPoint([]float64{1, 2}),
		NewPoint([]float64{3, 4}),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.N())
	assert.Equal(t, 2, ds.D())
	assert.Equal(t, []float64{3, 4}, ds.Feat(1))
	assert.Equal(t, 2, ds.TotalWeight())
}

func TestHasLabels(t *testing.T) {
	unlabeled, err := New([]Point[float64]{NewPoint([]float64{1})})
	require.NoError(t, err)
	assert.False(t, unlabeled.HasLabels())

	labeled, err := New([]Point[float64]{
		{Feat: []float64{1}, Class: "a", Frequency: 1},
		{Feat: []float64{2}, Frequency: 1},
	})
	require.NoError(t, err)
	assert.True(t, labeled.HasLabels())
}

func TestTotalWeightSumsFrequency(t *testing.T) {
	ds, err := New([]Point[float64]{
		{Feat: []float64{1}, Frequency: 3},
		{Feat: []float64{2}, Frequency: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, ds.TotalWeight())
}
