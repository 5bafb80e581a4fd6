// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vecops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestAxpyInt(t *testing.T) {
	y := []int{1, 2, 3}
	x := []int{10, 20, 30}
	Axpy(y, 2, x)
	assert.Equal(t, []int{21, 42, 63}, y)
}

func TestAxpyFloat(t *testing.T) {
	y := []float64{1, 2, 3}
	x := []float64{10, 20, 30}
	Axpy(y, 0.5, x)
	assert.InDeltaSlice(t, []float64{6, 12, 18}, y, 1e-12)
}

func TestScalInvZeroIsNoop(t *testing.T) {
	x := []float64{1, 2, 3}
	ScalInv(x, 0)
	assert.Equal(t, []float64{1, 2, 3}, x)
}

func TestDotSum(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{4, 5, 6}
	assert.InDelta(t, 32.0, Dot(x, y), 1e-12)
	assert.InDelta(t, 6.0, Sum(x), 1e-12)
}

func TestEuclidean(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{3, 4}
	assert.InDelta(t, 5.0, Euclidean(a, b), 1e-12)
	assert.InDelta(t, 25.0, EuclideanSq(a, b), 1e-12)
}

func TestEuclideanArgminAgreesWithSquared(t *testing.T) {
	centroids := [][]float64{{0, 0}, {10, 0}, {3, 3}}
	p := []float64{2, 2}
	bestI, bestD := -1, -1.0
	bestSqI, bestSqD := -1, -1.0
	for i, c := range centroids {
		d := Euclidean(p, c)
		if bestI == -1 || d < bestD {
			bestI, bestD = i, d
		}
		sq := EuclideanSq(p, c)
		if bestSqI == -1 || sq < bestSqD {
			bestSqI, bestSqD = i, sq
		}
	}
	assert.Equal(t, bestI, bestSqI)
}

func TestInducedMatchesEuclideanForIdentity(t *testing.T) {
	w := mat.NewSymDense(2, []float64{1, 0, 0, 1})
	d := Induced[float64](w)
	a := []float64{1, 2}
	b := []float64{4, 6}
	require.InDelta(t, Euclidean(a, b), d(a, b), 1e-9)
}

func TestAasxpaBroadcast(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	x := []float64{1, 1}
	Aasxpa(0.5, a, 2, 2, x)
	assert.InDeltaSlice(t, []float64{1, 2.5, 4, 5.5}, a, 1e-12)
}
