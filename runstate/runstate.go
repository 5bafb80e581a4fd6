// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runstate tracks a GA run's progress: the generation counter and
// wall-clock budget that bound a driver loop, the per-generation objective
// summary recorded for reporting, and an on-disk history store for runs
// that outlive a single process.
package runstate

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Budget bounds a run by whichever of generation count or wall-clock
// duration is reached first; either limit may be left zero to disable it.
type Budget struct {
	MaxGenerations int
	MaxWallClock   time.Duration

	start time.Time
}

// Start records the budget's wall-clock origin. Call once before the
// driver's generation loop begins.
func (b *Budget) Start() {
	b.start = time.Now()
}

// Exceeded reports whether generation gen (0-based, about to run) falls
// outside the budget.
func (b *Budget) Exceeded(gen int) bool {
	if b.MaxGenerations > 0 && gen >= b.MaxGenerations {
		return true
	}
	if b.MaxWallClock > 0 && !b.start.IsZero() && time.Since(b.start) >= b.MaxWallClock {
		return true
	}
	return false
}

// Generation is a single generation's objective-value summary, the unit
// record of a run's plot history.
type Generation struct {
	Index  int
	Best   float64
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize builds a Generation record from a population's objective
// values (lower is better), mirroring the driver's per-generation bookkeeping.
func Summarize(gen int, objectives []float64) Generation {
	mean, stdDev := stat.MeanStdDev(objectives, nil)
	return Generation{
		Index:  gen,
		Best:   floats.Min(objectives),
		Mean:   mean,
		StdDev: stdDev,
		Min:    floats.Min(objectives),
		Max:    floats.Max(objectives),
	}
}

// History accumulates the Generation records of a run in memory, in
// generation order.
type History struct {
	Records []Generation
}

// Append adds g to the history. Callers append once per generation, in
// increasing generation order.
func (h *History) Append(g Generation) {
	h.Records = append(h.Records, g)
}

// BestOverall returns the lowest Best objective seen across every recorded
// generation, and the generation it occurred at. It reports ok=false for an
// empty history.
func (h *History) BestOverall() (gen int, best float64, ok bool) {
	if len(h.Records) == 0 {
		return 0, 0, false
	}
	best = h.Records[0].Best
	gen = h.Records[0].Index
	for _, r := range h.Records[1:] {
		if r.Best < best {
			best = r.Best
			gen = r.Index
		}
	}
	return gen, best, true
}
