// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenseRowSwapCopy(t *testing.T) {
	d := NewDense[float64](2, 3)
	d.CopyRow(0, []float64{1, 2, 3})
	d.CopyRow(1, []float64{4, 5, 6})
	d.SwapRows(0, 1)
	assert.Equal(t, []float64{4, 5, 6}, d.Row(0))
	assert.Equal(t, []float64{1, 2, 3}, d.Row(1))
}

func TestDenseInverseIdentity(t *testing.T) {
	d := Identity[float64](3)
	inv, err := d.Inverse()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, inv.At(i, j), 1e-9)
		}
	}
}

func TestDenseInverseSingular(t *testing.T) {
	d := NewDense[float64](2, 2)
	d.CopyRow(0, []float64{1, 2})
	d.CopyRow(1, []float64{2, 4})
	_, err := d.Inverse()
	require.ErrorIs(t, err, ErrSingular)
}

func TestDenseEigenSymAscending(t *testing.T) {
	d := NewDense[float64](2, 2)
	d.CopyRow(0, []float64{2, 0})
	d.CopyRow(1, []float64{0, 5})
	vals, _, err := d.EigenSym()
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.InDelta(t, 2.0, vals[0], 1e-9)
	assert.InDelta(t, 5.0, vals[1], 1e-9)
}

func TestTriangularAccess(t *testing.T) {
	tr := NewTriangular[float64](4)
	tr.Set(3, 1, 9.5)
	assert.Equal(t, 9.5, tr.At(3, 1))
	assert.Panics(t, func() { tr.At(1, 3) })
}

func TestBitMatrixPopCountAndAlignment(t *testing.T) {
	b := NewBitMatrix(2, 130)
	b.Set(0, 0, true)
	b.Set(0, 64, true)
	b.Set(0, 129, true)
	assert.Equal(t, 3, b.PopCountRow(0))
	assert.Equal(t, []int{0, 64, 128, 130}, b.AlignedCutPoints())
}

func TestCrispMatrixSetMemberInvariant(t *testing.T) {
	c := NewCrispMatrix(3, 5)
	for col := 0; col < 5; col++ {
		c.SetMember(col, col%3)
	}
	c.SetMember(2, 0)
	assert.Equal(t, 0, c.Member(2))
	assert.False(t, c.At(2, 2))
	assert.True(t, c.At(0, 2))
	for col := 0; col < 5; col++ {
		assert.Equal(t, 1, countSetColumn(c, col))
	}
}

func countSetColumn(c *CrispMatrix, col int) int {
	m, _ := c.Dims()
	n := 0
	for row := 0; row < m; row++ {
		if c.At(row, col) {
			n++
		}
	}
	return n
}

func TestResizableMergeTwoRows(t *testing.T) {
	r := NewResizable[float64](2, 4)
	r.PushRow([]float64{0, 0})
	r.PushRow([]float64{10, 0})
	r.PushRow([]float64{100, 0})
	r.MergeTwoRows(0, 1, 1, 3)
	assert.InDeltaSlice(t, []float64{7.5, 0}, r.Row(0), 1e-9)
	assert.Equal(t, 2, r.Rows())
}

func TestResizableMergeTwoRowsIntegerRounds(t *testing.T) {
	r := NewResizable[int](1, 4)
	r.PushRow([]int{1})
	r.PushRow([]int{2})
	r.MergeTwoRows(0, 1, 1, 1)
	assert.Equal(t, 2, r.Row(0)[0]) // (1+2)/2 = 1.5 -> rounds to 2
}

func TestWithRowNullDeleteRestore(t *testing.T) {
	w := NewWithRowNull[float64](3, 2)
	assert.True(t, w.Valid(1))
	w.Delete(1)
	assert.False(t, w.Valid(1))
	assert.Equal(t, 2, w.CountValid())
	w.Restore(1)
	assert.Equal(t, 3, w.CountValid())
}
