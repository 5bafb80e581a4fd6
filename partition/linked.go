// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package partition implements PartitionLinked: circular doubly-linked
// lists of point indices keyed by cluster id, plus per-cluster running sum
// and count statistics maintained incrementally under single-point
// mutation. The linked structure is an arena of size N addressed by
// integer index rather than pointer.
package partition

import (
	"golang.org/x/exp/constraints"
)

// Unknown is the cluster index used for an unassigned point.
const Unknown = -1

// nilPoint marks an empty circular list.
const nilPoint = -1

// Linked is the bare PartitionLinked structure: head/next/prev/member
// arrays with no accompanying statistics. Stats wraps this with per-cluster
// sum and count.
type Linked struct {
	head   []int32 // head[k]: first point of cluster k, or nilPoint.
	next   []int32 // next[p]: next point in p's cluster list.
	prev   []int32 // prev[p]: previous point in p's cluster list.
	member []int32 // member[p]: cluster of point p, or Unknown.
}

// NewLinked allocates an empty partition over n points and k clusters; all
// points start Unknown and all clusters start empty.
func NewLinked(n, k int) *Linked {
	l := &Linked{
		head:   make([]int32, k),
		next:   make([]int32, n),
		prev:   make([]int32, n),
		member: make([]int32, n),
	}
	for i := range l.head {
		l.head[i] = nilPoint
	}
	for p := range l.member {
		l.member[p] = Unknown
		l.next[p] = nilPoint
		l.prev[p] = nilPoint
	}
	return l
}

// N returns the number of points.
func (l *Linked) N() int { return len(l.member) }

// K returns the number of clusters.
func (l *Linked) K() int { return len(l.head) }

// Member returns the cluster of point p, or Unknown.
func (l *Linked) Member(p int) int { return int(l.member[p]) }

// Head returns the first point of cluster k, or -1 if empty.
func (l *Linked) Head(k int) int { return int(l.head[k]) }

// Next returns the point following p in its cluster's circular list (the
// last point's successor is the head), or -1 if p is in no list.
func (l *Linked) Next(p int) int {
	n := l.next[p]
	if n == nilPoint {
		return -1
	}
	return int(n)
}

// spliceOut removes p from cluster k's circular list, fixing up neighbor
// pointers and head[k]; it neither reads nor changes member[p], which the
// caller updates.
func (l *Linked) spliceOut(k, p int) {
	pn, pp := l.next[p], l.prev[p]
	if pn == int32(p) { // sole member
		l.head[k] = nilPoint
	} else {
		l.next[pp] = pn
		l.prev[pn] = pp
		if l.head[k] == int32(p) {
			l.head[k] = pn
		}
	}
	l.next[p] = nilPoint
	l.prev[p] = nilPoint
}

// spliceInHead inserts p at the head of cluster k's circular list.
func (l *Linked) spliceInHead(k, p int) {
	h := l.head[k]
	if h == nilPoint {
		l.next[p] = int32(p)
		l.prev[p] = int32(p)
	} else {
		tail := l.prev[h]
		l.next[p] = h
		l.prev[p] = tail
		l.next[tail] = int32(p)
		l.prev[h] = int32(p)
	}
	l.head[k] = int32(p)
}

// iterate calls fn for every point in cluster k's list, in list order.
func (l *Linked) iterate(k int, fn func(p int)) {
	h := l.head[k]
	if h == nilPoint {
		return
	}
	p := h
	for {
		fn(int(p))
		p = l.next[p]
		if p == h {
			break
		}
	}
}

// Iterator returns every point currently in cluster k, in list order.
func (l *Linked) Iterator(k int) []int {
	var pts []int
	l.iterate(k, func(p int) { pts = append(pts, p) })
	return pts
}

// Number is the set of feature/sum scalar types usable by a Stats
// partition.
type Number interface {
	constraints.Integer | constraints.Float
}
