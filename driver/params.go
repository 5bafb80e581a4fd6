// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"time"

	"github.com/kortschak/leac/vecops"
)

// DistanceKind tags the distance function a driver is configured with.
type DistanceKind int

const (
	Euclidean DistanceKind = iota
	EuclideanSquared
	Induced
)

// EndingCondition reports why a driver's generation loop stopped.
type EndingCondition int

const (
	MaxGenerations EndingCondition = iota
	Timeout
	ConvergedK
	RunError
)

func (e EndingCondition) String() string {
	switch e {
	case MaxGenerations:
		return "MaxGenerations"
	case Timeout:
		return "Timeout"
	case ConvergedK:
		return "ConvergedK"
	case RunError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Params is the common input-parameter record shared by every fixed-K
// driver. Variable-K drivers use ParamsVariableK instead.
type Params[T vecops.Scalar] struct {
	PopulationSize    int
	NumGenerationsMax int
	MaxExecTime       time.Duration
	NumClustersK      int
	ProbCrossover     float64
	ProbMutation      float64
	ProbInit          float64 // medoid drivers only; 0 selects the K/N default.
	Alpha             float64 // medoid drivers' k-penalty weight.
	RandomSeed        string
	Dist              vecops.Dist[T]
	PlotEnabled       bool
	PlotOutputPath    string
}

// ParamsVariableK is the input-parameter record for the codebook driver,
// replacing NumClustersK with a [KMin, KMax] range.
type ParamsVariableK[T vecops.Scalar] struct {
	PopulationSize    int
	NumGenerationsMax int
	MaxExecTime       time.Duration
	KMin, KMax        int
	ProbCrossover     float64
	ProbMutation      float64
	ProbSplit         float64
	ProbMerge         float64
	RandomSeed        string
	Dist              vecops.Dist[T]
	PlotEnabled       bool
	PlotOutputPath    string
}

// Output is the common output-metrics record returned alongside the best
// chromosome.
type Output struct {
	NumClustersK           int
	ObjectiveValue         float64
	Fitness                float64
	NumTotalGenerations    int
	IterationBestFound     int
	RuntimeSecondsToBest   float64
	RuntimeSecondsTotal    float64
	TotalInvalidOffspring  int
	EndingCondition        EndingCondition
}

// validateCommon checks the parameter-range invariants every driver
// shares (population, generations, probabilities); driver-specific checks
// (K ranges, N vs K) are layered on by each constructor.
func validateCommon(popSize, genMax int, pc, pm float64) error {
	if popSize <= 1 {
		return newErr(InvalidParameter, "population_size must be > 1, got %d", popSize)
	}
	if genMax <= 0 {
		return newErr(InvalidParameter, "num_generations_max must be > 0, got %d", genMax)
	}
	if pc < 0 || pc > 1 {
		return newErr(InvalidParameter, "prob_crossover must be in [0,1], got %v", pc)
	}
	if pm < 0 || pm > 1 {
		return newErr(InvalidParameter, "prob_mutation must be in [0,1], got %v", pm)
	}
	return nil
}
