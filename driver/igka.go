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
)

// igkaIndividual pairs a Label chromosome with the centroid matrix,
// partition and distance cache a generation's incremental update needs at
// hand; RunLabel's individuals carry only the Label itself because its
// evaluation always rebuilds from scratch.
type igkaIndividual[TF matrix.Elem] struct {
	L     *chromosome.Label
	M     *matrix.Dense[TF]
	P     *partition.Stats[TF, float64]
	Cache *chromosome.IGKACache
	Acc   *ga.Accumulator[TF, float64]
}

// RunIGKA runs the incremental label-encoding driver: crossover still
// rewrites many genes at once and forces a full
// re-evaluation, but the per-generation single-gene mutation pass is
// staged through a ga.Accumulator and committed with ga.IncrementalUpdate,
// touching only the clusters whose membership actually changed, with
// chromosome.RefreshIGKACache kept in step over the same set.
func RunIGKA[TF matrix.Elem](ds *dataset.Dataset[TF], p Params[TF]) (Result[chromosome.Label], error) {
	var zero Result[chromosome.Label]
	if err := validateCommon(p.PopulationSize, p.NumGenerationsMax, p.ProbCrossover, p.ProbMutation); err != nil {
		return zero, err
	}
	if p.NumClustersK <= 0 {
		return zero, newErr(InvalidParameter, "num_clusters_k must be > 0, got %d", p.NumClustersK)
	}
	n := ds.N()
	if n == 0 {
		return zero, newErr(EmptyDataset, "dataset has no points")
	}
	if n < p.NumClustersK {
		return zero, newErr(InsufficientData, "N=%d < K=%d", n, p.NumClustersK)
	}

	rng := newRNG(p.RandomSeed)
	start := time.Now()
	d := ds.D()
	popSize := p.PopulationSize
	k := p.NumClustersK

	newIndividual := func() *igkaIndividual[TF] {
		return &igkaIndividual[TF]{
			L:   chromosome.NewLabel(n, k),
			M:   matrix.NewDense[TF](k, d),
			Acc: ga.NewAccumulator[TF, float64](k, d),
		}
	}

	pop := make([]*igkaIndividual[TF], popSize)
	for i := range pop {
		pop[i] = newIndividual()
		ga.InitLabel(pop[i].L, rng)
		fullEvaluateIGKA(pop[i], ds, p.Dist)
	}

	adapt := ga.AdaptiveMutationRate{PM0: p.ProbMutation, Denominator: n}
	var totalInvalid int
	for _, ind := range pop {
		if !ind.L.Valid {
			totalInvalid++
		}
	}

	labelFitters := func(pop []*igkaIndividual[TF]) []ga.Fitter {
		out := make([]ga.Fitter, len(pop))
		for i, ind := range pop {
			out[i] = ind.L
		}
		return out
	}

	var hist runstate.History
	genMax := p.NumGenerationsMax
	budget := &runstate.Budget{MaxGenerations: genMax, MaxWallClock: p.MaxExecTime}
	budget.Start()

	eliteIdx := ga.BestIndex(labelFitters(pop))
	elite := pop[eliteIdx].L.Clone()
	bestGen := 0
	bestElapsed := time.Since(start).Seconds()

	recordObjectives := func() []float64 {
		obj := make([]float64, popSize)
		for i, ind := range pop {
			obj[i] = ind.L.Objective
		}
		return obj
	}
	hist.Append(runstate.Summarize(0, recordObjectives()))

	offspring := make([]*igkaIndividual[TF], popSize)
	for i := range offspring {
		offspring[i] = newIndividual()
	}

	gen := 0
	for !budget.Exceeded(gen) {
		gen++
		fitterPop := labelFitters(pop)
		for i := 0; i < popSize; i += 2 {
			pa := pop[ga.RouletteIndex(fitterPop, rng)]
			if i+1 >= popSize {
				offspring[i].L.CopyFrom(pa.L)
				fullEvaluateIGKA(offspring[i], ds, p.Dist)
				break
			}
			j := i + 1
			pb := pop[ga.RouletteIndex(fitterPop, rng)]
			if rng.Float64() < p.ProbCrossover {
				ga.LabelOnePointWithRepair(offspring[i].L, offspring[j].L, pa.L, pb.L, rng, func(l *chromosome.Label) bool {
					return chromosome.ValidFromCounts(l.CountOccupancy())
				})
			} else {
				offspring[i].L.CopyFrom(pa.L)
				offspring[j].L.CopyFrom(pb.L)
			}
			fullEvaluateIGKA(offspring[i], ds, p.Dist)
			fullEvaluateIGKA(offspring[j], ds, p.Dist)
		}

		pm := adapt.At(gen, genMax)
		for _, ind := range offspring {
			incrementalMutateIGKA(ind, ds, p.Dist, pm, rng)
			if !ind.L.Valid {
				totalInvalid++
			}
		}
		pop, offspring = offspring, pop

		fitterPop = labelFitters(pop)
		worst := ga.WorstIndex(fitterPop)
		if pop[worst].L.FitnessValue() < elite.FitnessValue() {
			pop[worst].L.CopyFrom(elite)
			fullEvaluateIGKA(pop[worst], ds, p.Dist)
		}
		curBest := ga.BestIndex(labelFitters(pop))
		if pop[curBest].L.FitnessValue() > elite.FitnessValue() {
			elite.CopyFrom(pop[curBest].L)
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
		NumClustersK:          k,
		ObjectiveValue:        elite.Objective,
		Fitness:               elite.Fitness,
		NumTotalGenerations:   gen,
		IterationBestFound:    bestGen,
		RuntimeSecondsToBest:  bestElapsed,
		RuntimeSecondsTotal:   time.Since(start).Seconds(),
		TotalInvalidOffspring: totalInvalid,
		EndingCondition:       ending,
	}
	return Result[chromosome.Label]{Output: out, History: hist, Best: *elite}, nil
}

// fullEvaluateIGKA rebuilds ind's partition, centroids and distance cache
// from scratch against its Label's current gene vector; used after
// initialization and after crossover, both of which can rewrite many
// genes in one step.
func fullEvaluateIGKA[TF matrix.Elem](ind *igkaIndividual[TF], ds *dataset.Dataset[TF], dist func([]TF, []TF) float64) {
	n, d := ds.N(), ds.D()
	l := ind.L
	ind.P = partition.NewStats[TF, float64](n, l.K, d)
	for i := 0; i < n; i++ {
		g := int(l.Genes[i])
		if g < 0 || g >= l.K {
			g = 0
			l.Genes[i] = 0
		}
		ind.P.Add(g, i, ds.Feat(i), ds.At(i).Frequency)
	}
	empty := kernel.RecomputeCentroids(ind.M, ind.P)
	if empty > 0 {
		l.MarkInvalid()
		ind.Cache = chromosome.BuildIGKACache(ds, ind.M, dist)
		return
	}
	l.MarkValid(kernel.Objective(ind.P, ind.M, ds, dist))
	ind.Cache = chromosome.BuildIGKACache(ds, ind.M, dist)
}

// incrementalMutateIGKA stages a single-gene mutation pass over ind's
// entire gene vector into ind.Acc, commits it in one ga.IncrementalUpdate
// call, and refreshes only the distance-cache entries whose own or
// cached-extremum cluster moved. A cluster left empty by the batch is
// handled the same way every other driver handles an invalid offspring:
// marked invalid, not rolled back.
func incrementalMutateIGKA[TF matrix.Elem](ind *igkaIndividual[TF], ds *dataset.Dataset[TF], dist func([]TF, []TF) float64, pm float64, rng *rand.Rand) {
	l := ind.L
	if l.K <= 1 {
		return
	}
	var any bool
	for i, g := range l.Genes {
		if rng.Float64() >= pm {
			continue
		}
		newK := int32(rng.Intn(l.K - 1))
		if newK >= g {
			newK++
		}
		ind.Acc.AccumulateUpdate(i, int(g), int(newK), ds.Feat(i), ds.At(i).Frequency)
		l.Genes[i] = newK
		any = true
	}
	if !any {
		return
	}
	changed := ga.IncrementalUpdate[TF, float64](ind.Acc, ind.P, ind.M)
	for _, k := range changed {
		if ind.P.Count(k) == 0 {
			l.MarkInvalid()
			return
		}
	}
	chromosome.RefreshIGKACache(ind.Cache, ds, ind.M, dist, changed, ind.P.Member)
	l.MarkValid(kernel.Objective(ind.P, ind.M, ds, dist))
}
