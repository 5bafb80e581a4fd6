// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ga

// GenerationalElitism implements generational elitism: after
// offspring evaluation, if the population's worst chromosome has lower
// fitness than eliteFitness, copyElite(worst) is called to overwrite that
// slot with the elite (commonly a held-out elite copy outside pop, or the
// previous generation's best survivor); copyElite performs the
// variant-specific deep copy. Returns the index replaced, or -1 if no
// replacement occurred.
func GenerationalElitism[T Fitter](pop []T, eliteFitness float64, copyElite func(dst int)) int {
	worst := WorstIndex(pop)
	if pop[worst].FitnessValue() < eliteFitness {
		copyElite(worst)
		return worst
	}
	return -1
}

// SteadyStateReplace implements the PNN-based variants' steady-state
// replacement: an offspring replaces the population's current worst
// member iff its fitness is strictly better. Returns whether the
// replacement happened.
func SteadyStateReplace[T Fitter](pop []T, offspringFitness float64, copyOffspringInto func(dst int)) bool {
	worst := WorstIndex(pop)
	if offspringFitness > pop[worst].FitnessValue() {
		copyOffspringInto(worst)
		return true
	}
	return false
}
