// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"github.com/kortschak/leac/dataset"
	"github.com/kortschak/leac/vecops"
)

// SupervisedMeasures scores a partition's agreement with the dataset's
// ground-truth class labels (supplied via dataset.Point.Class), where
// available. It is a reporting add-on only: it never feeds back into a
// driver's objective.
//
// rand and adjustedRand are the (adjusted) Rand index over point pairs;
// fMeasure is the pair-counting F-measure (harmonic mean of pairwise
// precision and recall). Returns all-zero if ds carries no labels.
func SupervisedMeasures[T vecops.Scalar](assign []int, ds *dataset.Dataset[T]) (rand, adjustedRand, fMeasure float64) {
	if !ds.HasLabels() {
		return 0, 0, 0
	}
	n := ds.N()
	classID := make(map[string]int)
	class := make([]int, n)
	for i := 0; i < n; i++ {
		c := ds.At(i).Class
		id, ok := classID[c]
		if !ok {
			id = len(classID)
			classID[c] = id
		}
		class[i] = id
	}

	var maxCluster, maxClass int
	for i := 0; i < n; i++ {
		if assign[i]+1 > maxCluster {
			maxCluster = assign[i] + 1
		}
		if class[i]+1 > maxClass {
			maxClass = class[i] + 1
		}
	}

	table := make([][]int, maxCluster)
	for i := range table {
		table[i] = make([]int, maxClass)
	}
	for i := 0; i < n; i++ {
		table[assign[i]][class[i]]++
	}

	clusterSize := make([]int, maxCluster)
	classSize := make([]int, maxClass)
	var sumPairs float64
	for i, row := range table {
		for j, nij := range row {
			clusterSize[i] += nij
			classSize[j] += nij
			sumPairs += choose2(nij)
		}
	}
	var sumCluster, sumClass float64
	for _, ni := range clusterSize {
		sumCluster += choose2(ni)
	}
	for _, nj := range classSize {
		sumClass += choose2(nj)
	}
	total := choose2(n)

	a := sumPairs
	b := sumCluster - a
	c := sumClass - a
	d := total - a - b - c
	if total > 0 {
		rand = (a + d) / total
	}

	expected := sumCluster * sumClass / maxOf(total, 1)
	maxIndex := 0.5 * (sumCluster + sumClass)
	if denom := maxIndex - expected; denom != 0 {
		adjustedRand = (a - expected) / denom
	}

	if a+b > 0 && a+c > 0 {
		precision := a / (a + b)
		recall := a / (a + c)
		if precision+recall > 0 {
			fMeasure = 2 * precision * recall / (precision + recall)
		}
	}
	return rand, adjustedRand, fMeasure
}

func choose2(n int) float64 {
	return float64(n*(n-1)) / 2
}

func maxOf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
