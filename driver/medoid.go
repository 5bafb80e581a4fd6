// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"math"
	"time"

	"github.com/kortschak/leac/chromosome"
	"github.com/kortschak/leac/dataset"
	"github.com/kortschak/leac/ga"
	"github.com/kortschak/leac/matrix"
	"github.com/kortschak/leac/runstate"
	"github.com/kortschak/leac/vecops"
)

// RunMedoid runs the fixed-K medoid (GA-Prototypes) driver: chromosomes
// are bitmasks over the dataset, validity is soft
// (a popcount ≠ K is penalized by alpha·(|p|-K)², not rejected outright),
// and the objective is the sum of squared distances from every point to
// its nearest selected prototype.
func RunMedoid[TF matrix.Elem](ds *dataset.Dataset[TF], p Params[TF]) (Result[chromosome.Medoid], error) {
	var zero Result[chromosome.Medoid]
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
	popSize := p.PopulationSize
	k := p.NumClustersK
	pInit := p.ProbInit
	if pInit <= 0 {
		pInit = ga.DefaultMedoidProbInit(k, n)
	}

	pop := make([]*chromosome.Medoid, popSize)
	for i := range pop {
		pop[i] = chromosome.NewMedoid(n, k)
		ga.InitMedoid(pop[i], pInit, rng)
	}

	adapt := ga.AdaptiveMutationRate{PM0: p.ProbMutation, Denominator: n}
	var totalInvalid int
	for i := range pop {
		evaluateMedoid(pop[i], ds, p.Dist, p.Alpha)
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

	offspring := make([]*chromosome.Medoid, popSize)
	for i := range offspring {
		offspring[i] = chromosome.NewMedoid(n, k)
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
				ga.DistanceBasedTwoPointMedoid(offspring[i], offspring[j], pa, pb, rng)
			} else {
				offspring[i].CopyFrom(pa)
				offspring[j].CopyFrom(pb)
			}
		}
		pm := adapt.At(gen, genMax)
		for i := range offspring {
			ga.BitFlip(offspring[i].Bits, 0, pm, rng)
		}
		for i := range offspring {
			evaluateMedoid(offspring[i], ds, p.Dist, p.Alpha)
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
		NumClustersK:          elite.PopCount(),
		ObjectiveValue:        elite.Objective,
		Fitness:               elite.Fitness,
		NumTotalGenerations:   gen,
		IterationBestFound:    bestGen,
		RuntimeSecondsToBest:  bestElapsed,
		RuntimeSecondsTotal:   time.Since(start).Seconds(),
		TotalInvalidOffspring: totalInvalid,
		EndingCondition:       ending,
	}
	return Result[chromosome.Medoid]{Output: out, History: hist, Best: *elite}, nil
}

// evaluateMedoid assigns every dataset point to its nearest selected
// prototype, sums squared distances, adds the alpha·(|p|-K)² soft
// cardinality penalty, and marks m valid unless it has no prototypes at
// all (an empty prototype set has no well-defined assignment).
func evaluateMedoid[TF matrix.Elem](m *chromosome.Medoid, ds *dataset.Dataset[TF], dist vecops.Dist[TF], alpha float64) {
	protos := m.Prototypes()
	if len(protos) == 0 {
		m.MarkInvalid()
		return
	}
	var sse float64
	n := ds.N()
	for i := 0; i < n; i++ {
		feat := ds.Feat(i)
		best := math.Inf(1)
		for _, pr := range protos {
			d := dist(feat, ds.Feat(pr))
			if d < best {
				best = d
			}
		}
		freq := float64(ds.At(i).Frequency)
		sse += freq * best * best
	}
	penalty := alpha * math.Pow(float64(len(protos)-m.K), 2)
	m.MarkValid(sse + penalty)
}
