// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"github.com/kortschak/leac/dataset"
	"github.com/kortschak/leac/kernel"
	"github.com/kortschak/leac/vecops"
)

// WithSupervisedMeasures scores assign (a per-point cluster assignment,
// typically read off the winning chromosome) against ds's ground-truth
// class labels and fills in s's supervised fields. It is a no-op, leaving
// s.HasSupervised false, when ds carries no labels.
func WithSupervisedMeasures[T vecops.Scalar](s Summary, assign []int, ds *dataset.Dataset[T]) Summary {
	if !ds.HasLabels() {
		return s
	}
	rand, adjRand, f := kernel.SupervisedMeasures(assign, ds)
	s.RandIndex = rand
	s.AdjustedRandIndex = adjRand
	s.FMeasure = f
	s.HasSupervised = true
	return s
}
