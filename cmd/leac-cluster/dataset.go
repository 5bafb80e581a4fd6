// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kortschak/leac/dataset"
)

// synthesizeDataset builds an in-memory Gaussian-blob dataset per cfg:
// cfg.NumBlobs cluster centers placed on a circle of radius proportional to
// cfg.BlobSpread, cfg.NumPoints drawn uniformly across blobs with per-blob
// isotropic Gaussian noise. Every point's Class is set to its generating
// blob's label, so report.WithSupervisedMeasures has ground truth to score
// against.
func synthesizeDataset(cfg DatasetConfig) (*dataset.Dataset[float64], error) {
	if cfg.NumBlobs <= 0 {
		return nil, fmt.Errorf("dataset: num_blobs must be > 0, got %d", cfg.NumBlobs)
	}
	if cfg.NumPoints < cfg.NumBlobs {
		return nil, fmt.Errorf("dataset: num_points (%d) must be >= num_blobs (%d)", cfg.NumPoints, cfg.NumBlobs)
	}
	if cfg.Dims <= 0 {
		return nil, fmt.Errorf("dataset: dims must be > 0, got %d", cfg.Dims)
	}

	rng := rand.New(rand.NewSource(uint64(cfg.Seed)))
	centers := make([][]float64, cfg.NumBlobs)
	radius := 4 * cfg.BlobSpread
	for b := range centers {
		centers[b] = make([]float64, cfg.Dims)
		// Spread blob centers around a circle of that radius in the first two
		// dimensions; any remaining dimensions are centered at zero.
		theta := 2 * math.Pi * float64(b) / float64(cfg.NumBlobs)
		centers[b][0] = radius * math.Cos(theta)
		if cfg.Dims > 1 {
			centers[b][1] = radius * math.Sin(theta)
		}
	}

	noise := distuv.Normal{Mu: 0, Sigma: cfg.BlobSpread, Src: rng}
	pts := make([]dataset.Point[float64], cfg.NumPoints)
	for i := range pts {
		b := i % cfg.NumBlobs
		feat := make([]float64, cfg.Dims)
		for j := range feat {
			feat[j] = centers[b][j] + noise.Rand()
		}
		p := dataset.NewPoint(feat)
		p.Class = fmt.Sprintf("blob-%d", b)
		pts[i] = p
	}
	return dataset.New(pts)
}
