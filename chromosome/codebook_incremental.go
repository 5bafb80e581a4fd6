// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chromosome

import (
	"math"

	"github.com/kortschak/leac/dataset"
	"github.com/kortschak/leac/matrix"
	"github.com/kortschak/leac/vecops"
)

// IGKACache holds, per dataset instance, the cached distance to its
// nearest and farthest centroid and the indices those extrema were found
// at. Incremental drivers rescan an instance's extrema only when its own
// cluster's centroid moved, or when one of its cached extrema pointed at a
// cluster that moved.
type IGKACache struct {
	DistToNearest  []float64
	DistToFarthest []float64
	ArgNearest     []int32
	ArgFarthest    []int32
}

// NewIGKACache allocates an empty cache for n instances.
func NewIGKACache(n int) *IGKACache {
	return &IGKACache{
		DistToNearest:  make([]float64, n),
		DistToFarthest: make([]float64, n),
		ArgNearest:     make([]int32, n),
		ArgFarthest:    make([]int32, n),
	}
}

// BuildIGKACache computes every instance's extrema from scratch against
// every row of M.
func BuildIGKACache[TF matrix.Elem](ds *dataset.Dataset[TF], M *matrix.Dense[TF], dist vecops.Dist[TF]) *IGKACache {
	c := NewIGKACache(ds.N())
	k, _ := M.Dims()
	for i := 0; i < ds.N(); i++ {
		rescanInstance(c, i, ds.Feat(i), M, dist, k)
	}
	return c
}

// RefreshIGKACache rescans only instances whose own assigned cluster (via
// member) or cached extremum cluster is in changed, visiting each such
// instance once.
func RefreshIGKACache[TF matrix.Elem](c *IGKACache, ds *dataset.Dataset[TF], M *matrix.Dense[TF], dist vecops.Dist[TF], changed []int, member func(i int) int) {
	if len(changed) == 0 {
		return
	}
	isChanged := make(map[int]bool, len(changed))
	for _, k := range changed {
		isChanged[k] = true
	}
	k, _ := M.Dims()
	for i := range c.DistToNearest {
		if !isChanged[member(i)] && !isChanged[int(c.ArgNearest[i])] && !isChanged[int(c.ArgFarthest[i])] {
			continue
		}
		rescanInstance(c, i, ds.Feat(i), M, dist, k)
	}
}

func rescanInstance[TF matrix.Elem](c *IGKACache, i int, feat []TF, M *matrix.Dense[TF], dist vecops.Dist[TF], k int) {
	minD, maxD := math.Inf(1), math.Inf(-1)
	var argMin, argMax int
	for kk := 0; kk < k; kk++ {
		d := dist(feat, M.Row(kk))
		if d < minD {
			minD, argMin = d, kk
		}
		if d > maxD {
			maxD, argMax = d, kk
		}
	}
	c.DistToNearest[i] = minD
	c.DistToFarthest[i] = maxD
	c.ArgNearest[i] = int32(argMin)
	c.ArgFarthest[i] = int32(argMax)
}
