// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ga

import (
	"sort"

	"golang.org/x/exp/rand"

	"github.com/kortschak/leac/chromosome"
	"github.com/kortschak/leac/matrix"
)

// LabelOnePoint draws a cut point c ~ U{1, N-1} and writes
// child1 = parent1[:c]⊕parent2[c:], child2 = parent2[:c]⊕parent1[c:].
func LabelOnePoint(child1, child2, parent1, parent2 *chromosome.Label, rng *rand.Rand) {
	n := len(parent1.Genes)
	c := 1 + rng.Intn(n-1)
	child1.K, child2.K = parent1.K, parent2.K
	ensureLabelLen(child1, n)
	ensureLabelLen(child2, n)
	copy(child1.Genes[:c], parent1.Genes[:c])
	copy(child1.Genes[c:], parent2.Genes[c:])
	copy(child2.Genes[:c], parent2.Genes[:c])
	copy(child2.Genes[c:], parent1.Genes[c:])
}

func ensureLabelLen(l *chromosome.Label, n int) {
	if cap(l.Genes) < n {
		l.Genes = make([]int32, n)
	} else {
		l.Genes = l.Genes[:n]
	}
}

// LabelKPoint generalizes LabelOnePoint to k distinct cut points in
// [1, N-1], alternating parent for each resulting segment.
func LabelKPoint(child1, child2, parent1, parent2 *chromosome.Label, k int, rng *rand.Rand) {
	n := len(parent1.Genes)
	child1.K, child2.K = parent1.K, parent2.K
	ensureLabelLen(child1, n)
	ensureLabelLen(child2, n)
	cuts := distinctSortedInts(rng, k, 1, n-1)
	cuts = append(cuts, n)
	from1, from2 := parent1.Genes, parent2.Genes
	toggle := false
	prev := 0
	for _, c := range cuts {
		if !toggle {
			copy(child1.Genes[prev:c], from1[prev:c])
			copy(child2.Genes[prev:c], from2[prev:c])
		} else {
			copy(child1.Genes[prev:c], from2[prev:c])
			copy(child2.Genes[prev:c], from1[prev:c])
		}
		toggle = !toggle
		prev = c
	}
}

// LabelOnePointWithRepair retries LabelOnePoint with fresh cut points up
// to 100 times until both children satisfy valid; if a child is still
// invalid after that, it is replaced by a uniformly-chosen parent.
func LabelOnePointWithRepair(child1, child2, parent1, parent2 *chromosome.Label, rng *rand.Rand, valid func(*chromosome.Label) bool) {
	const maxAttempts = 100
	for attempt := 0; attempt < maxAttempts; attempt++ {
		LabelOnePoint(child1, child2, parent1, parent2, rng)
		if valid(child1) && valid(child2) {
			return
		}
	}
	if !valid(child1) {
		repairFromParent(child1, parent1, parent2, rng)
	}
	if !valid(child2) {
		repairFromParent(child2, parent1, parent2, rng)
	}
}

func repairFromParent(child, parent1, parent2 *chromosome.Label, rng *rand.Rand) {
	if rng.Intn(2) == 0 {
		child.CopyFrom(parent1)
	} else {
		child.CopyFrom(parent2)
	}
}

// CentroidOnePoint cuts at an arbitrary gene index (not rounded to a
// d-boundary), reproducing the cited paper's "mixed centroid" crossover
// exactly.
func CentroidOnePoint[TF matrix.Elem](child1, child2, parent1, parent2 *chromosome.Centroid[TF], rng *rand.Rand) {
	n := parent1.K() * parent1.D()
	c := 1 + rng.Intn(n-1)
	crossCentroidGenes(child1, child2, parent1, parent2, c)
}

// CentroidOnePointAligned is CentroidOnePoint with the cut rounded to a
// whole-centroid (d-aligned) boundary, the corrected behavior for callers
// who do not need the original paper's compatibility quirk.
func CentroidOnePointAligned[TF matrix.Elem](child1, child2, parent1, parent2 *chromosome.Centroid[TF], rng *rand.Rand) {
	k, d := parent1.K(), parent1.D()
	cutRow := 1 + rng.Intn(k-1)
	crossCentroidGenes(child1, child2, parent1, parent2, cutRow*d)
}

func crossCentroidGenes[TF matrix.Elem](child1, child2, parent1, parent2 *chromosome.Centroid[TF], c int) {
	g1, g2 := parent1.Genes(), parent2.Genes()
	out1, out2 := child1.Genes(), child2.Genes()
	copy(out1[:c], g1[:c])
	copy(out1[c:], g2[c:])
	copy(out2[:c], g2[:c])
	copy(out2[c:], g1[c:])
	// A crossed child's genes no longer match either parent exactly, so its
	// inherited Objective is only an estimate until the caller re-evaluates
	// it. Seed it from the parent average rather than leaving whatever
	// value was left over from the chromosome that previously occupied
	// this slot, so a mutation pass run before re-evaluation sees a
	// plausible standing.
	mid := (parent1.Objective + parent2.Objective) / 2
	child1.Objective, child1.Valid = mid, false
	child2.Objective, child2.Valid = mid, false
}

// CrispOnePoint draws a cut point c ~ U{1, N-1} over the column axis and
// writes child1 = parent1[:,:c]⊕parent2[:,c:], child2 the mirror image,
// the crisp-bit-matrix analogue of LabelOnePoint.
func CrispOnePoint(child1, child2, parent1, parent2 *chromosome.Crisp, rng *rand.Rand) {
	_, n := parent1.M.Dims()
	c := 1 + rng.Intn(n-1)
	for col := 0; col < n; col++ {
		if col < c {
			child1.M.SetMember(col, parent1.M.Member(col))
			child2.M.SetMember(col, parent2.M.Member(col))
		} else {
			child1.M.SetMember(col, parent2.M.Member(col))
			child2.M.SetMember(col, parent1.M.Member(col))
		}
	}
}

// MedoidUniform swaps, for every bit position where the parents disagree,
// the bit between children with probability pc; positions where the
// parents agree are left untouched.
func MedoidUniform(child1, child2, parent1, parent2 *chromosome.Medoid, pc float64, rng *rand.Rand) {
	child1.CopyFrom(parent1)
	child2.CopyFrom(parent2)
	n := parent1.N()
	for p := 0; p < n; p++ {
		a, b := parent1.Get(p), parent2.Get(p)
		if a != b && rng.Float64() < pc {
			child1.Set(p, b)
			child2.Set(p, a)
		}
	}
}

// DistanceBasedTwoPointMedoid draws an unordered pair of word-aligned
// column cuts (a, b) uniformly and swaps the interval [a, b) of bits
// between children, a distance-based two-point crossover for bit
// encodings.
func DistanceBasedTwoPointMedoid(child1, child2, parent1, parent2 *chromosome.Medoid, rng *rand.Rand) {
	child1.CopyFrom(parent1)
	child2.CopyFrom(parent2)
	cuts := parent1.Bits.AlignedCutPoints()
	a, b := cuts[rng.Intn(len(cuts))], cuts[rng.Intn(len(cuts))]
	if a > b {
		a, b = b, a
	}
	if colCount := b - a; colCount > 0 {
		child1.Bits.CopyAligned(parent2.Bits, 0, 0, a, colCount)
		child2.Bits.CopyAligned(parent1.Bits, 0, 0, a, colCount)
	}
}

// distinctSortedInts draws k distinct integers from [lo, hi] and returns
// them sorted ascending.
func distinctSortedInts(rng *rand.Rand, k, lo, hi int) []int {
	span := hi - lo + 1
	chosen := make(map[int]bool, k)
	out := make([]int, 0, k)
	for len(out) < k && len(out) < span {
		v := lo + rng.Intn(span)
		if !chosen[v] {
			chosen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}
