// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

import "math/bits"

const wordBits = 64

// BitMatrix packs an m×n bit matrix into words of 64 bits, row-major.
type BitMatrix struct {
	m, n        int
	wordsPerRow int
	data        []uint64
}

// NewBitMatrix allocates a zeroed m×n bit matrix.
func NewBitMatrix(m, n int) *BitMatrix {
	wpr := (n + wordBits - 1) / wordBits
	return &BitMatrix{m: m, n: n, wordsPerRow: wpr, data: make([]uint64, m*wpr)}
}

// Dims returns the row and column count.
func (b *BitMatrix) Dims() (m, n int) { return b.m, b.n }

func (b *BitMatrix) rowWords(i int) []uint64 {
	return b.data[i*b.wordsPerRow : (i+1)*b.wordsPerRow]
}

// Words returns a mutable view of row i's packed words, for bulk copy.
func (b *BitMatrix) Words(i int) []uint64 { return b.rowWords(i) }

// At reports whether bit (i, j) is set.
func (b *BitMatrix) At(i, j int) bool {
	w := b.rowWords(i)
	return w[j/wordBits]&(1<<uint(j%wordBits)) != 0
}

// Set sets or clears bit (i, j).
func (b *BitMatrix) Set(i, j int, v bool) {
	w := b.rowWords(i)
	mask := uint64(1) << uint(j%wordBits)
	if v {
		w[j/wordBits] |= mask
	} else {
		w[j/wordBits] &^= mask
	}
}

// PopCountRow returns the number of set bits in row i.
func (b *BitMatrix) PopCountRow(i int) int {
	n := 0
	for _, w := range b.rowWords(i) {
		n += bits.OnesCount64(w)
	}
	return n
}

// CopyAligned copies a word-aligned column range [colStart, colStart+colCount)
// of src's row srcRow into row dstRow of b, starting at the same column
// range. colStart must be a multiple of 64: only word-aligned cut points
// preserve the bit-level crossover axioms exactly.
func (b *BitMatrix) CopyAligned(src *BitMatrix, srcRow, dstRow, colStart, colCount int) {
	if colStart%wordBits != 0 {
		panic("matrix: CopyAligned requires a word-aligned column start")
	}
	w0 := colStart / wordBits
	nWords := (colCount + wordBits - 1) / wordBits
	srcWords := src.rowWords(srcRow)
	dstWords := b.rowWords(dstRow)
	copy(dstWords[w0:w0+nWords], srcWords[w0:w0+nWords])
}

// AlignedCutPoints returns the set of word-aligned column indices in
// [0, n] that are valid crossover cut points.
func (b *BitMatrix) AlignedCutPoints() []int {
	cuts := []int{0}
	for c := wordBits; c < b.n; c += wordBits {
		cuts = append(cuts, c)
	}
	if cuts[len(cuts)-1] != b.n {
		cuts = append(cuts, b.n)
	}
	return cuts
}

// CrispMatrix is a BitMatrix with the invariant that each column has
// exactly one set bit, used by the crisp-bit-matrix chromosome encoding.
type CrispMatrix struct {
	*BitMatrix
	member []int32 // member[col] = row, or -1 if unset.
}

// NewCrispMatrix allocates an m×n crisp matrix with no columns assigned.
func NewCrispMatrix(m, n int) *CrispMatrix {
	mem := make([]int32, n)
	for i := range mem {
		mem[i] = -1
	}
	return &CrispMatrix{BitMatrix: NewBitMatrix(m, n), member: mem}
}

// Member returns the row owning column col, or -1 if unassigned.
func (c *CrispMatrix) Member(col int) int {
	return int(c.member[col])
}

// SetMember clears the previous owning bit of column col (if any) and sets
// row as its new, sole owner.
func (c *CrispMatrix) SetMember(col, row int) {
	if old := c.member[col]; old >= 0 {
		c.BitMatrix.Set(int(old), col, false)
	}
	c.BitMatrix.Set(row, col, true)
	c.member[col] = int32(row)
}

// RowHasMember reports whether row has at least one column assigned to it.
// Cost is O(n); callers evaluating validity for every row should instead
// tally from Member directly to stay O(n) total rather than O(mn).
func (c *CrispMatrix) RowHasMember(row int) bool {
	return c.PopCountRow(row) > 0
}
