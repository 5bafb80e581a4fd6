// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// ExportMergeTree renders a completed PNNMerge run's sequence of pairwise
// merges as a DOT graph, one node per original cluster index, one weighted
// edge per merge step labeled with its Δ cost. This is a debugging aid,
// not part of the clustering contract.
func ExportMergeTree(events []MergeEvent) ([]byte, error) {
	g := simple.NewWeightedDirectedGraph(0, 0)
	idFor := func(k int) int64 { return int64(k) }
	for _, e := range events {
		from := mergeNode{id: idFor(e.From)}
		into := mergeNode{id: idFor(e.Into)}
		if g.Node(from.id) == nil {
			g.AddNode(from)
		}
		if g.Node(into.id) == nil {
			g.AddNode(into)
		}
		g.SetWeightedEdge(mergeEdge{f: from, t: into, w: e.Delta})
	}
	return dot.Marshal(g, "merges", "", "\t")
}

type mergeNode struct{ id int64 }

func (n mergeNode) ID() int64     { return n.id }
func (n mergeNode) DOTID() string { return fmt.Sprintf("c%d", n.id) }

type mergeEdge struct {
	f, t graph.Node
	w    float64
}

func (e mergeEdge) From() graph.Node         { return e.f }
func (e mergeEdge) To() graph.Node           { return e.t }
func (e mergeEdge) ReversedEdge() graph.Edge { return mergeEdge{f: e.t, t: e.f, w: e.w} }
func (e mergeEdge) Weight() float64          { return e.w }
func (e mergeEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "weight", Value: fmt.Sprint(e.w)}}
}
