// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// leac-cluster is a demonstration program exercising every driver of the
// clustering library against a synthetic dataset, optionally showing a
// live playback of the run's recorded history in a terminal UI. It never
// parses an external dataset format; datasets are synthesized in-memory
// or built programmatically by a caller embedding this package's pieces.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kortschak/leac/dataset"
	"github.com/kortschak/leac/driver"
	"github.com/kortschak/leac/report"
	"github.com/kortschak/leac/runstate"
	"github.com/kortschak/leac/vecops"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (optional; defaults built in)")
	useTUI := flag.Bool("tui", false, "show a live playback of the run history in a terminal UI")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  %[1]s [-config run.toml] [-tui]

Runs one of the library's genetic-algorithm clustering drivers
(label, medoid, centroid, codebook, igka, crisp) against a synthesized
dataset and writes its run history to the configured report path.

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("leac-cluster: %v", err)
	}

	ds, err := synthesizeDataset(cfg.Dataset)
	if err != nil {
		log.Fatalf("leac-cluster: %v", err)
	}

	summary, hist, err := runDriver(cfg, ds)
	if err != nil {
		log.Fatalf("leac-cluster: run failed: %v", err)
	}

	if err := writeReport(cfg.Report.OutputPath, summary, hist); err != nil {
		log.Fatalf("leac-cluster: writing report: %v", err)
	}

	if *useTUI {
		if err := RunProgressTUI(cfg.Driver, hist); err != nil {
			log.Fatalf("leac-cluster: tui: %v", err)
		}
		return
	}

	printSummary(cfg.Driver, summary)
}

// runDriver dispatches cfg.Driver to the matching driver.RunX call and
// returns a report.Summary (enriched with supervised measures against the
// dataset's synthetic ground truth) plus the run's history.
func runDriver(cfg Config, ds *dataset.Dataset[float64]) (report.Summary, runstate.History, error) {
	dist := vecops.Dist[float64](vecops.Euclidean[float64])
	g := cfg.GA

	switch strings.ToLower(cfg.Driver) {
	case "label":
		p := driver.Params[float64]{
			PopulationSize: g.PopulationSize, NumGenerationsMax: g.NumGenerationsMax,
			MaxExecTime: seconds(g.MaxExecTimeSeconds), NumClustersK: g.NumClustersK,
			ProbCrossover: g.ProbCrossover, ProbMutation: g.ProbMutation,
			RandomSeed: g.RandomSeed, Dist: dist,
		}
		res, err := driver.RunLabel(ds, p)
		if err != nil {
			return report.Summary{}, runstate.History{}, err
		}
		assign := assignFromLabel(&res.Best)
		return buildSummary(res.Output, assign, ds), res.History, nil

	case "medoid":
		probInit := g.ProbInit
		p := driver.Params[float64]{
			PopulationSize: g.PopulationSize, NumGenerationsMax: g.NumGenerationsMax,
			MaxExecTime: seconds(g.MaxExecTimeSeconds), NumClustersK: g.NumClustersK,
			ProbCrossover: g.ProbCrossover, ProbMutation: g.ProbMutation,
			ProbInit: probInit, Alpha: g.Alpha,
			RandomSeed: g.RandomSeed, Dist: dist,
		}
		res, err := driver.RunMedoid(ds, p)
		if err != nil {
			return report.Summary{}, runstate.History{}, err
		}
		assign := assignFromMedoid(&res.Best, ds, dist)
		return buildSummary(res.Output, assign, ds), res.History, nil

	case "centroid":
		p := driver.Params[float64]{
			PopulationSize: g.PopulationSize, NumGenerationsMax: g.NumGenerationsMax,
			MaxExecTime: seconds(g.MaxExecTimeSeconds), NumClustersK: g.NumClustersK,
			ProbCrossover: g.ProbCrossover, ProbMutation: g.ProbMutation,
			RandomSeed: g.RandomSeed, Dist: dist,
		}
		res, err := driver.RunCentroid(ds, p)
		if err != nil {
			return report.Summary{}, runstate.History{}, err
		}
		assign := assignFromCentroid(&res.Best, ds, dist)
		return buildSummary(res.Output, assign, ds), res.History, nil

	case "codebook":
		p := driver.ParamsVariableK[float64]{
			PopulationSize: g.PopulationSize, NumGenerationsMax: g.NumGenerationsMax,
			MaxExecTime: seconds(g.MaxExecTimeSeconds), KMin: g.KMin, KMax: g.KMax,
			ProbCrossover: g.ProbCrossover, ProbMutation: g.ProbMutation,
			ProbSplit: g.ProbSplit, ProbMerge: g.ProbMerge,
			RandomSeed: g.RandomSeed, Dist: dist,
		}
		res, err := driver.RunCodebook(ds, p)
		if err != nil {
			return report.Summary{}, runstate.History{}, err
		}
		assign := assignFromCodebook(&res.Best)
		return buildSummary(res.Output, assign, ds), res.History, nil

	case "igka":
		p := driver.Params[float64]{
			PopulationSize: g.PopulationSize, NumGenerationsMax: g.NumGenerationsMax,
			MaxExecTime: seconds(g.MaxExecTimeSeconds), NumClustersK: g.NumClustersK,
			ProbCrossover: g.ProbCrossover, ProbMutation: g.ProbMutation,
			RandomSeed: g.RandomSeed, Dist: dist,
		}
		res, err := driver.RunIGKA(ds, p)
		if err != nil {
			return report.Summary{}, runstate.History{}, err
		}
		assign := assignFromLabel(&res.Best)
		return buildSummary(res.Output, assign, ds), res.History, nil

	case "crisp":
		p := driver.Params[float64]{
			PopulationSize: g.PopulationSize, NumGenerationsMax: g.NumGenerationsMax,
			MaxExecTime: seconds(g.MaxExecTimeSeconds), NumClustersK: g.NumClustersK,
			ProbCrossover: g.ProbCrossover, ProbMutation: g.ProbMutation,
			RandomSeed: g.RandomSeed, Dist: dist,
		}
		res, err := driver.RunCrisp(ds, p)
		if err != nil {
			return report.Summary{}, runstate.History{}, err
		}
		assign := assignFromCrisp(&res.Best)
		return buildSummary(res.Output, assign, ds), res.History, nil

	default:
		return report.Summary{}, runstate.History{}, fmt.Errorf("unknown driver %q (want one of label, medoid, centroid, codebook, igka, crisp)", cfg.Driver)
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func buildSummary(out driver.Output, assign []int, ds *dataset.Dataset[float64]) report.Summary {
	s := report.Summary{
		NumClustersK:          out.NumClustersK,
		ObjectiveValue:        out.ObjectiveValue,
		Fitness:               out.Fitness,
		NumTotalGenerations:   out.NumTotalGenerations,
		IterationBestFound:    out.IterationBestFound,
		RuntimeSecondsToBest:  out.RuntimeSecondsToBest,
		RuntimeSecondsTotal:   out.RuntimeSecondsTotal,
		TotalInvalidOffspring: out.TotalInvalidOffspring,
		EndingCondition:       out.EndingCondition.String(),
	}
	return report.WithSupervisedMeasures(s, assign, ds)
}

func writeReport(path string, s report.Summary, h runstate.History) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return report.WriteXLSX(f, s, h)
	}
	return report.WriteHistoryText(f, h)
}

func printSummary(driverName string, s report.Summary) {
	fmt.Printf("driver: %s\n", driverName)
	fmt.Printf("num_clusters_k: %d\n", s.NumClustersK)
	fmt.Printf("objective_value: %.10g\n", s.ObjectiveValue)
	fmt.Printf("fitness: %.10g\n", s.Fitness)
	fmt.Printf("num_total_generations: %d\n", s.NumTotalGenerations)
	fmt.Printf("iteration_best_found: %d\n", s.IterationBestFound)
	fmt.Printf("runtime_seconds_to_best: %.6g\n", s.RuntimeSecondsToBest)
	fmt.Printf("runtime_seconds_total: %.6g\n", s.RuntimeSecondsTotal)
	fmt.Printf("total_invalid_offspring: %d\n", s.TotalInvalidOffspring)
	fmt.Printf("ending_condition: %s\n", s.EndingCondition)
	if s.HasSupervised {
		fmt.Printf("rand_index: %.6g\n", s.RandIndex)
		fmt.Printf("adjusted_rand_index: %.6g\n", s.AdjustedRandIndex)
		fmt.Printf("f_measure: %.6g\n", s.FMeasure)
	}
}
