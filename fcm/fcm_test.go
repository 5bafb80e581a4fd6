// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kortschak/leac/matrix"
)

func TestMembershipRowsSumToOne(t *testing.T) {
	X := matrix.NewDense[float64](4, 1)
	X.CopyRow(0, []float64{0})
	X.CopyRow(1, []float64{1})
	X.CopyRow(2, []float64{9})
	X.CopyRow(3, []float64{10})

	M := matrix.NewDense[float64](2, 1)
	M.Set(0, 0, 0)
	M.Set(1, 0, 10)

	U := Membership[float64](X, M, 2.0)
	n, k := U.Dims()
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < k; j++ {
			sum += U.At(i, j)
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestMembershipExactMatchIsCrisp(t *testing.T) {
	X := matrix.NewDense[float64](1, 1)
	X.Set(0, 0, 10)
	M := matrix.NewDense[float64](2, 1)
	M.Set(0, 0, 0)
	M.Set(1, 0, 10)

	U := Membership[float64](X, M, 2.0)
	assert.InDelta(t, 0.0, U.At(0, 0), 1e-12)
	assert.InDelta(t, 1.0, U.At(0, 1), 1e-12)
}

func TestRecomputeWeightsTowardHigherMembership(t *testing.T) {
	X := matrix.NewDense[float64](2, 1)
	X.Set(0, 0, 0)
	X.Set(1, 0, 10)

	U := matrix.NewDense[float64](2, 1)
	U.Set(0, 0, 0.9)
	U.Set(1, 0, 0.1)

	out := matrix.NewDense[float64](1, 1)
	Recompute[float64](X, U, 2.0, out)
	assert.Less(t, out.At(0, 0), 5.0)
}
