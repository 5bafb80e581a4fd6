// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"time"

	"github.com/kortschak/leac/chromosome"
	"github.com/kortschak/leac/dataset"
	"github.com/kortschak/leac/ga"
	"github.com/kortschak/leac/kernel"
	"github.com/kortschak/leac/matrix"
	"github.com/kortschak/leac/partition"
	"github.com/kortschak/leac/runstate"
)

// RunCrisp runs the fixed-K crisp-bit-matrix driver: a
// K×N bit matrix with exactly one set bit per column stands in for the
// label encoding's gene vector, crossed and mutated column-wise by
// ga.CrispOnePoint/ga.CrispSingleGene, and evaluated the same way RunLabel
// evaluates its gene vector.
func RunCrisp[TF matrix.Elem](ds *dataset.Dataset[TF], p Params[TF]) (Result[chromosome.Crisp], error) {
	var zero Result[chromosome.Crisp]
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

	pop := make([]*chromosome.Crisp, popSize)
	mats := make([]*matrix.Dense[TF], popSize)
	for i := range pop {
		pop[i] = chromosome.NewCrisp(k, n)
		ga.InitCrisp(pop[i], rng)
		mats[i] = matrix.NewDense[TF](k, d)
	}

	adapt := ga.AdaptiveMutationRate{PM0: p.ProbMutation, Denominator: n}
	var totalInvalid int
	for i := range pop {
		evaluateCrisp(pop[i], mats[i], ds, p.Dist)
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

	offspring := make([]*chromosome.Crisp, popSize)
	offMats := make([]*matrix.Dense[TF], popSize)
	for i := range offspring {
		offspring[i] = chromosome.NewCrisp(k, n)
		offMats[i] = matrix.NewDense[TF](k, d)
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
				ga.CrispOnePoint(offspring[i], offspring[j], pa, pb, rng)
			} else {
				offspring[i].CopyFrom(pa)
				offspring[j].CopyFrom(pb)
			}
		}
		pm := adapt.At(gen, genMax)
		for i := range offspring {
			ga.CrispSingleGene(offspring[i], pm, rng)
		}
		for i := range offspring {
			evaluateCrisp(offspring[i], offMats[i], ds, p.Dist)
			if !offspring[i].Valid {
				totalInvalid++
			}
		}
		pop, offspring = offspring, pop
		mats, offMats = offMats, mats

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
	return Result[chromosome.Crisp]{Output: out, History: hist, Best: *elite}, nil
}

// evaluateCrisp rebuilds the partition and centroids implied by c's column
// memberships, recomputes M, and marks c valid/invalid.
func evaluateCrisp[TF matrix.Elem](c *chromosome.Crisp, M *matrix.Dense[TF], ds *dataset.Dataset[TF], dist func([]TF, []TF) float64) {
	n, d := ds.N(), ds.D()
	k, _ := c.M.Dims()
	p := partition.NewStats[TF, float64](n, k, d)
	for i := 0; i < n; i++ {
		g := c.M.Member(i)
		if g < 0 || g >= k {
			g = 0
			c.M.SetMember(i, 0)
		}
		p.Add(g, i, ds.Feat(i), ds.At(i).Frequency)
	}
	empty := kernel.RecomputeCentroids(M, p)
	if empty > 0 {
		c.MarkInvalid()
		return
	}
	c.MarkValid(kernel.Objective(p, M, ds, dist))
}
