// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chromosome

import "github.com/kortschak/leac/matrix"

// Crisp is the K×N crisp-bit-matrix encoding: column p has exactly one set
// bit indicating the cluster of point p. Valid iff every row has at least
// one set bit.
type Crisp struct {
	Base
	M *matrix.CrispMatrix
}

// NewCrisp allocates a k×n Crisp chromosome with no columns assigned.
func NewCrisp(k, n int) *Crisp {
	return &Crisp{M: matrix.NewCrispMatrix(k, n)}
}

// ComputeValid reports whether every row (cluster) owns at least one column.
func (c *Crisp) ComputeValid() bool {
	m, _ := c.M.Dims()
	for k := 0; k < m; k++ {
		if !c.M.RowHasMember(k) {
			return false
		}
	}
	return true
}

// CopyFrom deep-copies src into c in place.
func (c *Crisp) CopyFrom(src *Crisp) {
	c.Base = src.Base
	m, n := src.M.Dims()
	if cm, cn := c.M.Dims(); cm != m || cn != n {
		c.M = matrix.NewCrispMatrix(m, n)
	}
	for p := 0; p < n; p++ {
		if row := src.M.Member(p); row >= 0 {
			c.M.SetMember(p, row)
		}
	}
}

// Clone returns a deep copy.
func (c *Crisp) Clone() *Crisp {
	m, n := c.M.Dims()
	out := NewCrisp(m, n)
	out.Base = c.Base
	for p := 0; p < n; p++ {
		if row := c.M.Member(p); row >= 0 {
			out.M.SetMember(p, row)
		}
	}
	return out
}
