// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chromosome

import "github.com/kortschak/leac/matrix"

// Medoid is the length-N bit-array encoding: bit p = 1 means point p is a
// chosen prototype. Valid iff popcount == K.
type Medoid struct {
	Base
	Bits *matrix.BitMatrix // single row, n columns.
	K    int
}

// NewMedoid allocates a Medoid chromosome over n points choosing k
// prototypes, with no bits set.
func NewMedoid(n, k int) *Medoid {
	return &Medoid{Bits: matrix.NewBitMatrix(1, n), K: k}
}

// N returns the number of points.
func (m *Medoid) N() int { _, n := m.Bits.Dims(); return n }

// Get reports whether point p is a prototype.
func (m *Medoid) Get(p int) bool { return m.Bits.At(0, p) }

// Set marks point p as a prototype or not.
func (m *Medoid) Set(p int, v bool) { m.Bits.Set(0, p, v) }

// PopCount returns the number of selected prototypes.
func (m *Medoid) PopCount() int { return m.Bits.PopCountRow(0) }

// ValidByPopCount reports whether popcount == K.
func (m *Medoid) ValidByPopCount() bool { return m.PopCount() == m.K }

// Prototypes returns the indices of every selected point.
func (m *Medoid) Prototypes() []int {
	var idx []int
	n := m.N()
	for p := 0; p < n; p++ {
		if m.Get(p) {
			idx = append(idx, p)
		}
	}
	return idx
}

// Clone returns a deep copy.
func (m *Medoid) Clone() *Medoid {
	out := NewMedoid(m.N(), m.K)
	out.Base = m.Base
	copy(out.Bits.Words(0), m.Bits.Words(0))
	return out
}

// CopyFrom deep-copies src into m in place.
func (m *Medoid) CopyFrom(src *Medoid) {
	m.Base = src.Base
	m.K = src.K
	if m.N() != src.N() {
		m.Bits = matrix.NewBitMatrix(1, src.N())
	}
	copy(m.Bits.Words(0), src.Bits.Words(0))
}
