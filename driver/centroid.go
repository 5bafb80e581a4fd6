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
	"github.com/kortschak/leac/runstate"
)

// RunCentroid runs the fixed-K centroid-encoding KGA:
// chromosomes hold K·d genes directly (no partition at rest), evaluation
// assigns every point to its nearest gene-row and recomputes the objective,
// and mutation is the bi-directional H-mutation scaled by each
// chromosome's normalized standing against the population's best/worst
// objective.
func RunCentroid[TF matrix.Elem](ds *dataset.Dataset[TF], p Params[TF]) (Result[chromosome.Centroid[TF]], error) {
	var zero Result[chromosome.Centroid[TF]]
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

	minFeat, maxFeat := featureBounds(ds)

	pop := make([]*chromosome.Centroid[TF], popSize)
	for i := range pop {
		pop[i] = chromosome.NewCentroid[TF](k, d)
		ga.InitCentroid(pop[i], ds, rng)
	}

	adapt := ga.AdaptiveMutationRate{PM0: p.ProbMutation, Denominator: k * d}
	var totalInvalid int
	for i := range pop {
		evaluateCentroid(pop[i], ds, p.Dist)
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

	offspring := make([]*chromosome.Centroid[TF], popSize)
	for i := range offspring {
		offspring[i] = chromosome.NewCentroid[TF](k, d)
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
				ga.CentroidOnePoint[TF](offspring[i], offspring[j], pa, pb, rng)
			} else {
				offspring[i].CopyFrom(pa)
				offspring[j].CopyFrom(pb)
			}
		}

		bestObj, worstObj := populationExtent(pop)
		pm := adapt.At(gen, genMax)
		for i := range offspring {
			if rng.Float64() < pm {
				ga.BiDirectionalH(offspring[i], minFeat, maxFeat, offspring[i].Objective, bestObj, worstObj, rng)
			}
		}
		for i := range offspring {
			evaluateCentroid(offspring[i], ds, p.Dist)
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
	return Result[chromosome.Centroid[TF]]{Output: out, History: hist, Best: *elite}, nil
}

// evaluateCentroid assigns every dataset point to its nearest row of c and
// marks c invalid iff some row attracted no point.
func evaluateCentroid[TF matrix.Elem](c *chromosome.Centroid[TF], ds *dataset.Dataset[TF], dist func([]TF, []TF) float64) {
	p := kernel.AssignAll[TF, float64](c.Rows, ds, dist)
	for k := 0; k < c.K(); k++ {
		if p.Count(k) == 0 {
			c.MarkInvalid()
			return
		}
	}
	c.MarkValid(kernel.Objective(p, c.Rows, ds, dist))
}

// featureBounds returns the per-dimension [min, max] of every feature
// across ds, the bounds BiDirectionalH clamps mutated genes against.
func featureBounds[TF matrix.Elem](ds *dataset.Dataset[TF]) (min, max []TF) {
	d := ds.D()
	min = make([]TF, d)
	max = make([]TF, d)
	copy(min, ds.Feat(0))
	copy(max, ds.Feat(0))
	for i := 1; i < ds.N(); i++ {
		feat := ds.Feat(i)
		for j, v := range feat {
			if v < min[j] {
				min[j] = v
			}
			if v > max[j] {
				max[j] = v
			}
		}
	}
	return min, max
}

// populationExtent returns the best (lowest) and worst (highest) objective
// currently in pop, the normalization bounds BiDirectionalH's d(M) term
// needs.
func populationExtent[TF matrix.Elem](pop []*chromosome.Centroid[TF]) (best, worst float64) {
	best, worst = pop[0].Objective, pop[0].Objective
	for _, c := range pop[1:] {
		if c.Objective < best {
			best = c.Objective
		}
		if c.Objective > worst {
			worst = c.Objective
		}
	}
	return best, worst
}
