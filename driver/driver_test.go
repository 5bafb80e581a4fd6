// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kortschak/leac/dataset"
	"github.com/kortschak/leac/vecops"
)

// twoBlobDataset returns six points forming two well-separated clusters
// around 2 and 11, the same toy shape kernel_test.go uses.
func twoBlobDataset(t *testing.T) *dataset.Dataset[float64] {
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

func basicParams() Params[float64] {
	return Params[float64]{
		PopulationSize:    10,
		NumGenerationsMax: 25,
		MaxExecTime:       time.Second,
		NumClustersK:      2,
		ProbCrossover:     0.8,
		ProbMutation:      0.1,
		RandomSeed:        "driver-test-seed",
		Dist:              vecops.Euclidean[float64],
	}
}

func TestRunLabelFindsTwoClusters(t *testing.T) {
	res, err := RunLabel(twoBlobDataset(t), basicParams())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Output.NumClustersK)
	assert.True(t, res.Best.Valid)
	assert.Less(t, res.Output.ObjectiveValue, 10.0)
	assert.NotEmpty(t, res.History.Records)
}

func TestRunLabelRejectsBadParams(t *testing.T) {
	p := basicParams()
	p.NumClustersK = 0
	_, err := RunLabel(twoBlobDataset(t), p)
	require.Error(t, err)
}

func TestRunMedoidFindsTwoClusters(t *testing.T) {
	p := basicParams()
	p.Alpha = 5
	res, err := RunMedoid(twoBlobDataset(t), p)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Best.K)
	assert.NotEmpty(t, res.History.Records)
}

func TestRunCentroidFindsTwoClusters(t *testing.T) {
	res, err := RunCentroid(twoBlobDataset(t), basicParams())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Best.K())
	assert.True(t, res.Best.Valid)
	assert.Less(t, res.Output.ObjectiveValue, 10.0)
}

func TestRunCrispFindsTwoClusters(t *testing.T) {
	res, err := RunCrisp(twoBlobDataset(t), basicParams())
	require.NoError(t, err)
	assert.True(t, res.Best.Valid)
	assert.Less(t, res.Output.ObjectiveValue, 10.0)
}

func TestRunIGKAFindsTwoClusters(t *testing.T) {
	res, err := RunIGKA(twoBlobDataset(t), basicParams())
	require.NoError(t, err)
	assert.True(t, res.Best.Valid)
	assert.Less(t, res.Output.ObjectiveValue, 10.0)
}

func TestRunCodebookRespectsKRange(t *testing.T) {
	p := ParamsVariableK[float64]{
		PopulationSize:    10,
		NumGenerationsMax: 25,
		MaxExecTime:       time.Second,
		KMin:              1,
		KMax:              3,
		ProbCrossover:     0.7,
		ProbMutation:      0.1,
		ProbSplit:         0.3,
		ProbMerge:         0.3,
		RandomSeed:        "codebook-test-seed",
		Dist:              vecops.Euclidean[float64],
	}
	res, err := RunCodebook(twoBlobDataset(t), p)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Output.NumClustersK, 1)
	assert.LessOrEqual(t, res.Output.NumClustersK, 3)
	assert.NotEmpty(t, res.History.Records)
}

func TestRunMedoidInsufficientData(t *testing.T) {
	p := basicParams()
	p.NumClustersK = 100
	_, err := RunMedoid(twoBlobDataset(t), p)
	require.Error(t, err)
}

func TestElitismMonotoneAcrossGenerations(t *testing.T) {
	res, err := RunLabel(twoBlobDataset(t), basicParams())
	require.NoError(t, err)
	best := res.History.Records[0].Best
	for _, g := range res.History.Records[1:] {
		assert.LessOrEqual(t, g.Best, best)
		best = g.Best
	}
}
