// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report writes a driver's run history and supervised-measure
// outcomes to disk, in two formats: a whitespace-delimited text table and
// an .xlsx workbook. Neither format feeds back into a driver; both are
// consumed only after a run completes.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kortschak/leac/runstate"
)

// WriteHistoryText writes h to w in a plain-text plot history format:
// one header line, then one line per generation with whitespace-separated
// columns (generation index; best; mean; stdev; min; max of the
// population's objective), floats formatted to at least 10 significant
// digits.
func WriteHistoryText(w io.Writer, h runstate.History) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "generation\tbest\tmean\tstdev\tmin\tmax"); err != nil {
		return err
	}
	for _, r := range h.Records {
		_, err := fmt.Fprintf(bw, "%d\t%.10g\t%.10g\t%.10g\t%.10g\t%.10g\n",
			r.Index, r.Best, r.Mean, r.StdDev, r.Min, r.Max)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// HistoryTextString is a convenience wrapper over WriteHistoryText for
// callers that want the formatted table as a string rather than writing
// it directly.
func HistoryTextString(h runstate.History) (string, error) {
	var sb strings.Builder
	if err := WriteHistoryText(&sb, h); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Summary is the subset of a driver's Output record worth surfacing in an
// .xlsx export alongside its history, independent of chromosome encoding.
type Summary struct {
	NumClustersK          int
	ObjectiveValue        float64
	Fitness               float64
	NumTotalGenerations   int
	IterationBestFound    int
	RuntimeSecondsToBest  float64
	RuntimeSecondsTotal   float64
	TotalInvalidOffspring int
	EndingCondition       string

	// Supervised measures, populated only when the source dataset carried
	// ground-truth class labels (kernel.SupervisedMeasures); left zero
	// otherwise.
	RandIndex         float64
	AdjustedRandIndex float64
	FMeasure          float64
	HasSupervised     bool
}

// WriteXLSX writes an .xlsx workbook to w with two sheets: "Summary" (one
// row of key/value pairs from s) and "History" (the same columns
// WriteHistoryText emits, one row per generation).
func WriteXLSX(w io.Writer, s Summary, h runstate.History) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	f.SetSheetName(f.GetSheetName(0), summarySheet)
	writeSummarySheet(f, summarySheet, s)

	const historySheet = "History"
	if _, err := f.NewSheet(historySheet); err != nil {
		return err
	}
	if err := writeHistorySheet(f, historySheet, h); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeSummarySheet(f *excelize.File, sheet string, s Summary) {
	rows := []struct {
		key string
		val any
	}{
		{"num_clusters_k", s.NumClustersK},
		{"objective_value", s.ObjectiveValue},
		{"fitness", s.Fitness},
		{"num_total_generations", s.NumTotalGenerations},
		{"iteration_best_found", s.IterationBestFound},
		{"runtime_seconds_to_best", s.RuntimeSecondsToBest},
		{"runtime_seconds_total", s.RuntimeSecondsTotal},
		{"total_invalid_offspring", s.TotalInvalidOffspring},
		{"ending_condition", s.EndingCondition},
	}
	if s.HasSupervised {
		rows = append(rows,
			struct {
				key string
				val any
			}{"rand_index", s.RandIndex},
			struct {
				key string
				val any
			}{"adjusted_rand_index", s.AdjustedRandIndex},
			struct {
				key string
				val any
			}{"f_measure", s.FMeasure},
		)
	}
	for i, r := range rows {
		row := i + 1
		f.SetCellValue(sheet, cellRef(1, row), r.key)
		f.SetCellValue(sheet, cellRef(2, row), r.val)
	}
}

func writeHistorySheet(f *excelize.File, sheet string, h runstate.History) error {
	headers := []string{"generation", "best", "mean", "stdev", "min", "max"}
	for col, name := range headers {
		if err := f.SetCellValue(sheet, cellRef(col+1, 1), name); err != nil {
			return err
		}
	}
	for i, r := range h.Records {
		row := i + 2
		values := []any{r.Index, r.Best, r.Mean, r.StdDev, r.Min, r.Max}
		for col, v := range values {
			if err := f.SetCellValue(sheet, cellRef(col+1, row), v); err != nil {
				return err
			}
		}
	}
	return nil
}

// cellRef converts a 1-based (col, row) pair to an A1-style cell
// reference, e.g. (1,1) -> "A1", (2,3) -> "B3".
func cellRef(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		// col, row are always small positive integers constructed above;
		// CoordinatesToCellName only errors on out-of-range coordinates.
		panic(err)
	}
	return name
}
