// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kortschak/leac/dataset"
	"github.com/kortschak/leac/runstate"
)

func toyHistory() runstate.History {
	var h runstate.History
	h.Append(runstate.Summarize(0, []float64{4, 2, 6}))
	h.Append(runstate.Summarize(1, []float64{3, 2, 5}))
	return h
}

func TestWriteHistoryTextHeaderAndRowCount(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistoryText(&buf, toyHistory()))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "generation\tbest\tmean\tstdev\tmin\tmax", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0\t"))
	assert.True(t, strings.HasPrefix(lines[2], "1\t"))
}

func TestWriteHistoryTextSignificantDigits(t *testing.T) {
	var h runstate.History
	h.Append(runstate.Summarize(0, []float64{1.0 / 3, 2.0 / 3}))
	s, err := HistoryTextString(h)
	require.NoError(t, err)
	fields := strings.Fields(strings.Split(s, "\n")[1])
	require.Len(t, fields, 6)
	// 1/3 printed to at least 10 significant digits has more than 10
	// characters once the "0." prefix is accounted for.
	assert.Greater(t, len(fields[1]), 10)
}

func TestWriteXLSXProducesNonEmptyWorkbook(t *testing.T) {
	s := Summary{
		NumClustersK:        3,
		ObjectiveValue:      12.5,
		EndingCondition:     "MaxGenerations",
		NumTotalGenerations: 2,
	}
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, s, toyHistory()))
	assert.Greater(t, buf.Len(), 0)
}

func TestWithSupervisedMeasuresNoLabelsIsNoop(t *testing.T) {
	pts := []dataset.Point[float64]{
		dataset.NewPoint([]float64{1}),
		dataset.NewPoint([]float64{2}),
	}
	ds, err := dataset.New(pts)
	require.NoError(t, err)
	s := WithSupervisedMeasures(Summary{}, []int{0, 1}, ds)
	assert.False(t, s.HasSupervised)
}

func TestWithSupervisedMeasuresWithLabels(t *testing.T) {
	pts := []dataset.Point[float64]{
		dataset.NewPoint([]float64{1}),
		dataset.NewPoint([]float64{2}),
		dataset.NewPoint([]float64{10}),
		dataset.NewPoint([]float64{11}),
	}
	pts[0].Class = "a"
	pts[1].Class = "a"
	pts[2].Class = "b"
	pts[3].Class = "b"
	ds, err := dataset.New(pts)
	require.NoError(t, err)
	assign := []int{0, 0, 1, 1}
	s := WithSupervisedMeasures(Summary{}, assign, ds)
	require.True(t, s.HasSupervised)
	assert.InDelta(t, 1.0, s.RandIndex, 1e-9)
	assert.InDelta(t, 1.0, s.FMeasure, 1e-9)
}
