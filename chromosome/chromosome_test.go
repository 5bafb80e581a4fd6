// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chromosome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelValidFromCounts(t *testing.T) {
	assert.True(t, ValidFromCounts([]int{3, 2, 1}))
	assert.False(t, ValidFromCounts([]int{3, 0, 1}))
	assert.True(t, ValidFromCounts(nil))
}

func TestLabelCountOccupancyAndCloneCopy(t *testing.T) {
	l := NewLabel(5, 2)
	l.Genes = []int32{0, 1, 0, 1, 1}
	counts := l.CountOccupancy()
	require.Equal(t, []int{2, 3}, counts)

	clone := l.Clone()
	clone.Genes[0] = 1
	assert.Equal(t, int32(0), l.Genes[0], "Clone must deep-copy the gene slice")

	dst := NewLabel(5, 2)
	dst.MarkValid(4.5)
	dst.CopyFrom(l)
	assert.Equal(t, l.Genes, dst.Genes)
	assert.False(t, dst.Valid, "CopyFrom replaces Base, so an unevaluated source leaves dst not-yet-valid")
}

func TestCentroidKAndGenesFlattening(t *testing.T) {
	c := NewCentroid[float64](2, 3)
	c.Rows.Set(0, 0, 1)
	c.Rows.Set(0, 1, 2)
	c.Rows.Set(0, 2, 3)
	c.Rows.Set(1, 0, 4)
	c.Rows.Set(1, 1, 5)
	c.Rows.Set(1, 2, 6)

	assert.Equal(t, 2, c.K())
	assert.Equal(t, 3, c.D())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, c.Genes())

	clone := c.Clone()
	clone.Rows.Set(0, 0, 99)
	assert.Equal(t, float64(1), c.Rows.At(0, 0), "Clone must deep-copy the backing matrix")
}

func TestMedoidValidByPopCount(t *testing.T) {
	m := NewMedoid(6, 2)
	assert.False(t, m.ValidByPopCount(), "no bits set yet")

	m.Set(1, true)
	m.Set(4, true)
	assert.True(t, m.ValidByPopCount())
	assert.Equal(t, []int{1, 4}, m.Prototypes())

	m.Set(5, true)
	assert.False(t, m.ValidByPopCount(), "popcount 3 != K 2")

	clone := m.Clone()
	clone.Set(0, true)
	assert.False(t, m.Get(0), "Clone must deep-copy the bitmask")
}

func TestCrispComputeValid(t *testing.T) {
	c := NewCrisp(2, 4)
	assert.False(t, c.ComputeValid(), "no columns assigned yet, both rows empty")

	c.M.SetMember(0, 0)
	c.M.SetMember(1, 0)
	c.M.SetMember(2, 0)
	c.M.SetMember(3, 0)
	assert.False(t, c.ComputeValid(), "every column in row 0, row 1 still empty")

	c.M.SetMember(3, 1)
	assert.True(t, c.ComputeValid())

	clone := c.Clone()
	clone.M.SetMember(0, 1)
	assert.Equal(t, 0, c.M.Member(0), "Clone must deep-copy the membership matrix")
}

func TestCodebookComputeValidRespectsKRange(t *testing.T) {
	cb := NewCodebook[float64, float64](6, 2, 2, 1, 3)
	for p := 0; p < 6; p++ {
		cb.Partition.Add(p%2, p, []float64{float64(p), float64(p)}, 1)
	}
	assert.True(t, cb.ComputeValid())

	cb.KMax = 1
	assert.False(t, cb.ComputeValid(), "K=2 exceeds KMax=1")
}

func TestCodebookCloneIsIndependent(t *testing.T) {
	cb := NewCodebook[float64, float64](4, 2, 2, 1, 2)
	cb.Partition.Add(0, 0, []float64{1, 1}, 1)
	cb.Partition.Add(1, 1, []float64{2, 2}, 1)
	cb.Optimality = OptimalityBoth

	clone := cb.Clone()
	clone.Optimality = OptimalityNone
	clone.Partition.Add(0, 2, []float64{3, 3}, 1)

	assert.Equal(t, OptimalityBoth, cb.Optimality)
	assert.Equal(t, 1, cb.Partition.Count(0), "mutating the clone's partition must not affect the source")
	assert.Equal(t, 2, clone.Partition.Count(0))
}

func TestBaseMarkValidAndInvalid(t *testing.T) {
	var b Base
	b.MarkValid(2.0)
	assert.True(t, b.Valid)
	assert.Equal(t, 0.5, b.Fitness)

	b.MarkValid(0)
	assert.True(t, b.Valid)
	assert.True(t, b.Fitness > 1e300, "zero objective should map to +Inf fitness")

	b.MarkInvalid()
	assert.False(t, b.Valid)
	assert.True(t, b.Fitness < -1e300, "invalid chromosomes carry -Inf fitness")
}
