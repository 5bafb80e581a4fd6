// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ga

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kortschak/leac/chromosome"
	"github.com/kortschak/leac/matrix"
)

// maxMutationRollbacks bounds the label single-gene mutation's
// rollback-and-retry loop, mirroring the 100-attempt cap the crossover
// validity repair uses for consistency.
const maxMutationRollbacks = 100

// LabelSingleGene mutates l with probability pm: it picks gene j ~ U{0,
// N-1} and reassigns it to a cluster drawn uniformly from [0,K)\{old}. If
// the mutation empties the old cluster (old no longer appears anywhere in
// the gene vector), it is rolled back and retried. Returns whether a
// mutation was committed and how many rollbacks it took.
func LabelSingleGene(l *chromosome.Label, pm float64, rng *rand.Rand) (mutated bool, rollbacks int) {
	if rng.Float64() >= pm || l.K <= 1 {
		return false, 0
	}
	for rollbacks = 0; rollbacks < maxMutationRollbacks; rollbacks++ {
		j := rng.Intn(len(l.Genes))
		old := l.Genes[j]
		newK := int32(rng.Intn(l.K - 1))
		if newK >= old {
			newK++
		}
		l.Genes[j] = newK
		if geneStillPresent(l.Genes, old) {
			return true, rollbacks
		}
		l.Genes[j] = old
	}
	return false, rollbacks
}

// CrispSingleGene is LabelSingleGene over the crisp-bit-matrix encoding:
// with probability pm it reassigns one random column to a different row,
// rolling back and retrying if doing so would empty the row it left.
func CrispSingleGene(c *chromosome.Crisp, pm float64, rng *rand.Rand) (mutated bool, rollbacks int) {
	k, n := c.M.Dims()
	if rng.Float64() >= pm || k <= 1 {
		return false, 0
	}
	for rollbacks = 0; rollbacks < maxMutationRollbacks; rollbacks++ {
		col := rng.Intn(n)
		old := c.M.Member(col)
		newRow := rng.Intn(k - 1)
		if newRow >= old {
			newRow++
		}
		c.M.SetMember(col, newRow)
		if c.M.RowHasMember(old) {
			return true, rollbacks
		}
		c.M.SetMember(col, old)
	}
	return false, rollbacks
}

func geneStillPresent(genes []int32, v int32) bool {
	for _, g := range genes {
		if g == v {
			return true
		}
	}
	return false
}

// AdaptiveMutationRate computes p_m(t) = p_m(0) + (t/T_max)·(1/Denominator
// - p_m(0)). Denominator is explicit rather than hard-coded to K·d or N:
// the label, medoid, crisp and IGKA drivers pass N; the centroid KGA driver
// passes K·d, matching the cited paper's code. The codebook driver does not
// use an adaptive rate.
type AdaptiveMutationRate struct {
	PM0         float64
	Denominator int
}

// At returns p_m(gen) for a run whose final generation is genMax.
func (a AdaptiveMutationRate) At(gen, genMax int) float64 {
	if genMax <= 0 {
		return a.PM0
	}
	return a.PM0 + (float64(gen)/float64(genMax))*(1/float64(a.Denominator)-a.PM0)
}

// BiDirectionalH applies the bi-directional H-mutation used by the
// centroid KGA driver to every gene of c: with probability 0.5, x' = x +
// δ·(max-x), else x' = x - δ·(x-min); δ = 1 - r^(1-d(M)), r ~ U(0,1),
// d(M) the chromosome's objective normalized against the population's best
// and worst objective (0 at the best chromosome). minFeat/maxFeat are
// per-dimension bounds, repeated cyclically over the K·d flattened genes.
func BiDirectionalH[TF matrix.Elem](c *chromosome.Centroid[TF], minFeat, maxFeat []TF, objective, bestObjective, worstObjective float64, rng *rand.Rand) {
	dM := 0.0
	if span := worstObjective - bestObjective; span > 0 {
		dM = (objective - bestObjective) / span
		dM = math.Max(0, math.Min(1, dM))
	}
	r := distuv.Uniform{Min: 0, Max: 1, Src: rng}.Rand()
	delta := 1 - math.Pow(r, 1-dM)
	genes := c.Genes()
	d := len(minFeat)
	for i := range genes {
		j := i % d
		x := float64(genes[i])
		if rng.Float64() < 0.5 {
			x += delta * (float64(maxFeat[j]) - x)
		} else {
			x -= delta * (x - float64(minFeat[j]))
		}
		genes[i] = matrix.Round[TF](x)
	}
}

// BitFlip toggles every bit of row independently with probability pm.
func BitFlip(bits *matrix.BitMatrix, row int, pm float64, rng *rand.Rand) {
	_, n := bits.Dims()
	for j := 0; j < n; j++ {
		if rng.Float64() < pm {
			bits.Set(row, j, !bits.At(row, j))
		}
	}
}
