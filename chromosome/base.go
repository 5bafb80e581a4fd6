// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chromosome implements the five inequivalent partition encodings:
// Label, Centroid, Medoid (bitmask), Crisp (bit matrix), and Codebook
// (variable-K). Every variant embeds Base, which carries the
// objective/fitness/valid triple common to all encodings.
package chromosome

import "math"

// Base carries the fields every chromosome variant shares: by convention
// Objective is minimized and Fitness is a monotone decreasing transform of
// it (e.g. 1/Objective). An invalid chromosome holds Objective = +Inf,
// Fitness = -Inf: it is never discarded, only dominated in selection.
type Base struct {
	Objective float64
	Fitness   float64
	Valid     bool
}

// FitnessValue returns Fitness, letting callers select across chromosome
// variants through a single Fitter interface without depending on the
// concrete encoding.
func (b Base) FitnessValue() float64 { return b.Fitness }

// MarkInvalid sets the invalid-offspring sentinel values.
func (b *Base) MarkInvalid() {
	b.Objective = math.Inf(1)
	b.Fitness = math.Inf(-1)
	b.Valid = false
}

// MarkValid records an evaluated objective and derives fitness as 1/objective
// (0 maps to +Inf fitness, matching a perfect, zero-distortion partition).
func (b *Base) MarkValid(objective float64) {
	b.Objective = objective
	b.Valid = true
	if objective == 0 {
		b.Fitness = math.Inf(1)
		return
	}
	b.Fitness = 1 / objective
}
