// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the TOML-loaded configuration for a single demo run: which
// driver to exercise, how to synthesize the dataset it runs against, and
// the driver's own parameters.
type Config struct {
	Driver string `toml:"driver"` // one of: label, medoid, centroid, codebook, igka, crisp

	Dataset DatasetConfig `toml:"dataset"`
	GA      GAConfig      `toml:"ga"`
	Report  ReportConfig  `toml:"report"`
}

// DatasetConfig describes a synthetic Gaussian-blob dataset; this tool
// only ever generates or is handed an in-memory dataset, never parsing
// one from an external format.
type DatasetConfig struct {
	NumPoints  int     `toml:"num_points"`
	NumBlobs   int     `toml:"num_blobs"`
	Dims       int     `toml:"dims"`
	BlobSpread float64 `toml:"blob_spread"`
	Seed       int64   `toml:"seed"`
}

// GAConfig mirrors driver.Params/driver.ParamsVariableK's fields in their
// TOML-friendly string/number form.
type GAConfig struct {
	PopulationSize     int     `toml:"population_size"`
	NumGenerationsMax  int     `toml:"num_generations_max"`
	MaxExecTimeSeconds float64 `toml:"max_exec_time_seconds"`
	NumClustersK       int     `toml:"num_clusters_k"`
	KMin               int     `toml:"k_min"`
	KMax               int     `toml:"k_max"`
	ProbCrossover      float64 `toml:"prob_crossover"`
	ProbMutation       float64 `toml:"prob_mutation"`
	ProbInit           float64 `toml:"prob_init"`
	Alpha              float64 `toml:"alpha"`
	ProbSplit          float64 `toml:"prob_split"`
	ProbMerge          float64 `toml:"prob_merge"`
	RandomSeed         string  `toml:"random_seed"`
}

// ReportConfig names where run output is written.
type ReportConfig struct {
	OutputPath string `toml:"output_path"` // .txt or .xlsx; empty disables writing
}

// DefaultConfig returns the configuration this tool runs with when no
// -config file is given.
func DefaultConfig() Config {
	return Config{
		Driver: "label",
		Dataset: DatasetConfig{
			NumPoints:  300,
			NumBlobs:   4,
			Dims:       2,
			BlobSpread: 1.0,
			Seed:       1,
		},
		GA: GAConfig{
			PopulationSize:     40,
			NumGenerationsMax:  150,
			MaxExecTimeSeconds: 10,
			NumClustersK:       4,
			KMin:               2,
			KMax:               8,
			ProbCrossover:      0.8,
			ProbMutation:       0.05,
			ProbInit:           0,
			Alpha:              1,
			ProbSplit:          0.1,
			ProbMerge:          0.1,
			RandomSeed:         "leac-cluster-demo",
		},
		Report: ReportConfig{
			OutputPath: "run-history.txt",
		},
	}
}

// LoadConfig reads and parses a TOML config file at path, falling back to
// DefaultConfig if the file does not exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
