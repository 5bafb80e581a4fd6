// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/kortschak/leac/chromosome"
	"github.com/kortschak/leac/dataset"
	"github.com/kortschak/leac/ga"
	"github.com/kortschak/leac/kernel"
	"github.com/kortschak/leac/matrix"
	"github.com/kortschak/leac/partition"
	"github.com/kortschak/leac/runstate"
	"github.com/kortschak/leac/vecops"
)

// RunCodebook runs the variable-K codebook driver: K
// floats in [KMin, KMax], crossover operates on the partition's per-point
// membership (where K-differences between parents are natural), and a
// dedicated split/merge mutation pair grows or shrinks K by one, repaired
// back to validity by remove_empty_clusters.
func RunCodebook[TF matrix.Elem](ds *dataset.Dataset[TF], p ParamsVariableK[TF]) (Result[chromosome.Codebook[TF, float64]], error) {
	var zero Result[chromosome.Codebook[TF, float64]]
	if err := validateCommon(p.PopulationSize, p.NumGenerationsMax, p.ProbCrossover, p.ProbMutation); err != nil {
		return zero, err
	}
	if p.KMin <= 0 || p.KMax < p.KMin {
		return zero, newErr(InvalidParameter, "need 0 < k_min <= k_max, got [%d,%d]", p.KMin, p.KMax)
	}
	n := ds.N()
	if n == 0 {
		return zero, newErr(EmptyDataset, "dataset has no points")
	}
	if n < p.KMax {
		return zero, newErr(InsufficientData, "N=%d < k_max=%d", n, p.KMax)
	}

	rng := newRNG(p.RandomSeed)
	start := time.Now()
	d := ds.D()
	popSize := p.PopulationSize

	pop := make([]*chromosome.Codebook[TF, float64], popSize)
	for i := range pop {
		pop[i] = chromosome.NewCodebook[TF, float64](n, d, p.KMin, p.KMin, p.KMax)
		ga.InitCodebook[TF, float64](pop[i], ds, p.Dist, rng)
	}

	var totalInvalid int
	for i := range pop {
		evaluateCodebook(pop[i], ds, p.Dist)
		if !pop[i].Valid {
			totalInvalid++
		}
	}

	var hist runstate.History
	genMax := p.NumGenerationsMax
	budget := &runstate.Budget{MaxGenerations: genMax, MaxWallClock: p.MaxExecTime}
	budget.Start()

	elite := pop[ga.BestIndex(toFitterSlice(pop))].Clone()
	bestGen := 0
	bestElapsed := time.Since(start).Seconds()

	recordObjectives := func() []float64 {
		obj := make([]float64, popSize)
		for i, c := range pop {
			obj[i] = c.Objective
		}
		return obj
	}
	hist.Append(runstate.Summarize(0, recordObjectives()))

	offspring := make([]*chromosome.Codebook[TF, float64], popSize)
	for i := range offspring {
		offspring[i] = chromosome.NewCodebook[TF, float64](n, d, p.KMin, p.KMin, p.KMax)
	}

	gen := 0
	for !budget.Exceeded(gen) {
		gen++
		fitterPop := toFitterSlice(pop)
		for i := 0; i < popSize; i += 2 {
			pa := pop[ga.RouletteIndex(fitterPop, rng)]
			if i+1 >= popSize {
				offspring[i].CopyFrom(pa)
				break
			}
			j := i + 1
			pb := pop[ga.RouletteIndex(fitterPop, rng)]
			if rng.Float64() < p.ProbCrossover {
				crossCodebook(offspring[i], pa, pb, ds, rng)
				crossCodebook(offspring[j], pb, pa, ds, rng)
			} else {
				offspring[i].CopyFrom(pa)
				offspring[j].CopyFrom(pb)
			}
		}
		for i := range offspring {
			switch {
			case rng.Float64() < p.ProbSplit:
				mutateSplit(offspring[i], ds, p.Dist, rng)
			case rng.Float64() < p.ProbMerge:
				mutateMerge(offspring[i], ds, p.Dist)
			}
		}
		for i := range offspring {
			evaluateCodebook(offspring[i], ds, p.Dist)
			if !offspring[i].Valid {
				totalInvalid++
			}
		}
		pop, offspring = offspring, pop

		worst := ga.WorstIndex(toFitterSlice(pop))
		if pop[worst].FitnessValue() < elite.FitnessValue() {
			pop[worst].CopyFrom(elite)
		}
		curBest := ga.BestIndex(toFitterSlice(pop))
		if pop[curBest].FitnessValue() > elite.FitnessValue() {
			elite.CopyFrom(pop[curBest])
			bestGen = gen
			bestElapsed = time.Since(start).Seconds()
		}
		hist.Append(runstate.Summarize(gen, recordObjectives()))
	}
	ending := MaxGenerations
	if budget.MaxWallClock > 0 && time.Since(start) >= budget.MaxWallClock && gen < genMax {
		ending = Timeout
	}

	out := Output{
		NumClustersK:          elite.K(),
		ObjectiveValue:        elite.Objective,
		Fitness:               elite.Fitness,
		NumTotalGenerations:   gen,
		IterationBestFound:    bestGen,
		RuntimeSecondsToBest:  bestElapsed,
		RuntimeSecondsTotal:   time.Since(start).Seconds(),
		TotalInvalidOffspring: totalInvalid,
		EndingCondition:       ending,
	}
	return Result[chromosome.Codebook[TF, float64]]{Output: out, History: hist, Best: *elite}, nil
}

// evaluateCodebook repairs any empty clusters left by a crossover or
// mutation, recomputes every surviving row as its cluster's mean, and
// marks cb valid iff its repaired K still lies in [KMin, KMax].
func evaluateCodebook[TF matrix.Elem](cb *chromosome.Codebook[TF, float64], ds *dataset.Dataset[TF], dist vecops.Dist[TF]) {
	kernel.RemoveEmptyClusters(cb.Partition, cb.Rows)
	kernel.RecomputeResizable[TF, float64](cb.Rows, cb.Partition)
	cb.Optimality = chromosome.OptimalityBoth
	if !cb.ComputeValid() {
		cb.MarkInvalid()
		return
	}
	var sse float64
	n := ds.N()
	for i := 0; i < n; i++ {
		k := cb.Partition.Member(i)
		if k == partition.Unknown {
			continue
		}
		dd := dist(ds.Feat(i), cb.Rows.Row(k))
		sse += float64(ds.At(i).Frequency) * dd * dd
	}
	cb.MarkValid(sse)
}

// crossCodebook builds dst from a one-point crossover of primary and
// secondary's per-point membership vectors, cut at a uniformly random
// position. Positions inherited from secondary are folded modulo
// primary's K, since the two parents' cluster counts may differ and
// primary's row count is what dst's cluster ids must index into; the
// resulting partition is repaired to validity during evaluateCodebook.
func crossCodebook[TF matrix.Elem](dst, primary, secondary *chromosome.Codebook[TF, float64], ds *dataset.Dataset[TF], rng *rand.Rand) {
	n, d := ds.N(), ds.D()
	kA := primary.K()
	cut := 1
	if n > 2 {
		cut = 1 + rng.Intn(n-1)
	}

	rows := matrix.NewResizable[TF](d, dst.KMax)
	for i := 0; i < kA; i++ {
		rows.PushRow(primary.Rows.Row(i))
	}

	dst.Partition = partition.NewStats[TF, float64](n, kA, d)
	for i := 0; i < n; i++ {
		var g int
		if i < cut {
			g = primary.Partition.Member(i)
		} else {
			g = secondary.Partition.Member(i) % kA
		}
		if g < 0 {
			g = 0
		}
		dst.Partition.Add(g, i, ds.Feat(i), ds.At(i).Frequency)
	}
	dst.Rows = rows
	dst.KMin, dst.KMax = primary.KMin, primary.KMax
}

// mutateSplit picks a random cluster and, when it has at least two members,
// seeds a 2-means split from its two farthest-apart members and grows K by
// one. A chosen cluster with fewer than two members, or a codebook already
// at KMax, leaves the codebook untouched.
func mutateSplit[TF matrix.Elem](cb *chromosome.Codebook[TF, float64], ds *dataset.Dataset[TF], dist vecops.Dist[TF], rng *rand.Rand) {
	if cb.K() >= cb.KMax {
		return
	}
	k := rng.Intn(cb.K())
	members := collectMembersOf(cb.Partition, k)
	if len(members) < 2 {
		return
	}
	seedA, seedB := farthestPair(members, ds, dist)

	newK := cb.K()
	cb.Partition.Resize(newK + 1)
	cb.Rows.PushRow(cb.Rows.Row(k))

	for _, pt := range members {
		if pt == seedA {
			continue
		}
		dA := dist(ds.Feat(pt), ds.Feat(seedA))
		dB := dist(ds.Feat(pt), ds.Feat(seedB))
		if dB < dA && pt != seedB {
			cb.Partition.ChangeMember(newK, pt, ds.Feat(pt), ds.At(pt).Frequency)
		}
	}
	if cb.Partition.Member(seedB) != newK {
		cb.Partition.ChangeMember(newK, seedB, ds.Feat(seedB), ds.At(seedB).Frequency)
	}

	cb.Partition.MeanOf(k, cb.Rows.Row(k))
	cb.Partition.MeanOf(newK, cb.Rows.Row(newK))
}

// mutateMerge folds the single pair of clusters the PNN criterion judges
// most similar into one, shrinking K by one. A codebook already at KMin is
// left untouched.
func mutateMerge[TF matrix.Elem](cb *chromosome.Codebook[TF, float64], ds *dataset.Dataset[TF], dist vecops.Dist[TF]) {
	if cb.K() <= cb.KMin {
		return
	}
	kernel.PNNMerge[TF, float64](cb.Partition, cb.Rows, cb.K()-1)
}

// collectMembersOf walks cluster k's linked list into a plain slice of
// point indices.
func collectMembersOf[TF matrix.Elem](p *partition.Stats[TF, float64], k int) []int {
	return p.Iterator(k)
}

// farthestPair returns the two points within members whose distance is
// largest, the seed pair a 2-means split grows from.
func farthestPair[TF matrix.Elem](members []int, ds *dataset.Dataset[TF], dist vecops.Dist[TF]) (a, b int) {
	a, b = members[0], members[1]
	best := dist(ds.Feat(a), ds.Feat(b))
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			d := dist(ds.Feat(members[i]), ds.Feat(members[j]))
			if d > best {
				a, b, best = members[i], members[j], d
			}
		}
	}
	return a, b
}
