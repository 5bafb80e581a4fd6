// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fcm implements the fuzzy-partition-matrix update shared as a
// utility alongside the evolutionary core: it is not itself a GA, but
// reuses the matrix and distance layers those drivers are built on.
package fcm

import (
	"math"

	"github.com/kortschak/leac/matrix"
	"github.com/kortschak/leac/vecops"
)

// Membership computes the fuzzy partition matrix U (n×k) for dataset
// points X against centroids M, using fuzzifier m (m > 1):
//
//	u_ji = 1 / Σ_l (d_ji/d_li)^(1/(m-1))
//
// over squared distances d. When a point coincides exactly with a
// centroid (d == 0), that point's membership is set to 1 for the
// coincident centroid and 0 elsewhere, avoiding the division's 0/0.
func Membership[T matrix.Elem](X, M *matrix.Dense[T], m float64) *matrix.Dense[float64] {
	n, _ := X.Dims()
	k, _ := M.Dims()
	exponent := 1 / (m - 1)

	U := matrix.NewDense[float64](n, k)
	d2 := make([]float64, k)
	for i := 0; i < n; i++ {
		xi := X.Row(i)
		exact := -1
		for j := 0; j < k; j++ {
			d2[j] = vecops.EuclideanSq(xi, M.Row(j))
			if d2[j] == 0 {
				exact = j
			}
		}
		if exact >= 0 {
			for j := 0; j < k; j++ {
				if j == exact {
					U.Set(i, j, 1)
				} else {
					U.Set(i, j, 0)
				}
			}
			continue
		}
		for j := 0; j < k; j++ {
			var denom float64
			for l := 0; l < k; l++ {
				denom += math.Pow(d2[j]/d2[l], exponent)
			}
			U.Set(i, j, 1/denom)
		}
	}
	return U
}

// Recompute returns the fuzzified centroid update M' given membership U and
// dataset X, weighting each point by u_ji^m:
//
//	M'_j = Σ_i u_ji^m x_i / Σ_i u_ji^m
func Recompute[T matrix.Elem](X, U *matrix.Dense[float64], m float64, out *matrix.Dense[T]) {
	n, d := X.Dims()
	k, _ := U.Dims()
	weight := make([]float64, k)
	sum := make([][]float64, k)
	for j := range sum {
		sum[j] = make([]float64, d)
	}
	for i := 0; i < n; i++ {
		xi := X.Row(i)
		for j := 0; j < k; j++ {
			w := math.Pow(U.At(i, j), m)
			weight[j] += w
			row := sum[j]
			for f, v := range xi {
				row[f] += w * float64(v)
			}
		}
	}
	for j := 0; j < k; j++ {
		if weight[j] == 0 {
			continue
		}
		for f := 0; f < d; f++ {
			out.Set(j, f, T(sum[j][f]/weight[j]))
		}
	}
}
