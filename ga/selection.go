// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ga

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Fitter is satisfied by every chromosome variant through its embedded
// Base, letting selection operate generically over any of them.
type Fitter interface {
	FitnessValue() float64
}

// rouletteWeight clamps a raw fitness value for roulette-wheel sampling:
// negative or -Inf (an invalid chromosome) carries zero probability mass;
// +Inf (a perfect, zero-objective chromosome) is capped at a large finite
// sentinel so the cumulative distribution stays arithmetic.
func rouletteWeight(f float64) float64 {
	switch {
	case f < 0, math.IsInf(f, -1):
		return 0
	case math.IsInf(f, 1):
		return 1e300
	default:
		return f
	}
}

// RouletteIndex draws one population index with probability proportional
// to (clamped) fitness, via a cumulative distribution binary search. If
// every chromosome is invalid (total mass zero), it falls back to a
// uniform draw so the caller always receives an index.
func RouletteIndex[T Fitter](pop []T, rng *rand.Rand) int {
	cum := make([]float64, len(pop))
	var total float64
	for i, c := range pop {
		total += rouletteWeight(c.FitnessValue())
		cum[i] = total
	}
	if total <= 0 {
		return rng.Intn(len(pop))
	}
	u := distuv.Uniform{Min: 0, Max: total, Src: rng}.Rand()
	idx := sort.Search(len(cum), func(i int) bool { return cum[i] >= u })
	if idx == len(cum) {
		idx = len(cum) - 1
	}
	return idx
}

// TournamentIndex draws k indices with replacement and returns the one
// with the largest fitness.
func TournamentIndex[T Fitter](pop []T, k int, rng *rand.Rand) int {
	best := rng.Intn(len(pop))
	bestF := pop[best].FitnessValue()
	for i := 1; i < k; i++ {
		idx := rng.Intn(len(pop))
		if f := pop[idx].FitnessValue(); f > bestF {
			best, bestF = idx, f
		}
	}
	return best
}

// BestIndex returns the index of the fittest chromosome in pop.
func BestIndex[T Fitter](pop []T) int {
	best := 0
	for i := 1; i < len(pop); i++ {
		if pop[i].FitnessValue() > pop[best].FitnessValue() {
			best = i
		}
	}
	return best
}

// WorstIndex returns the index of the least-fit chromosome in pop.
func WorstIndex[T Fitter](pop []T) int {
	worst := 0
	for i := 1; i < len(pop); i++ {
		if pop[i].FitnessValue() < pop[worst].FitnessValue() {
			worst = i
		}
	}
	return worst
}
