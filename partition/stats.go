// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import "github.com/kortschak/leac/vecops"

// Stats wraps a Linked partition with per-cluster running sum (S, K×d of
// T_S) and count (n, K of int), maintained incrementally under
// Add/Sub/ChangeMember.
//
// Invariant defended by every exported method: after any sequence of calls,
// for every cluster k, traversal via Head(k)/Next visits exactly Count(k)
// points, all with Member(p) == k, whose features sum (ignoring frequency
// weighting) to Sum(k).
type Stats[TF, TS Number] struct {
	*Linked
	d     int
	sum   []TS // K×d row-major.
	count []int32
}

// NewStats allocates an empty Stats partition over n points, k clusters and
// d-dimensional features.
func NewStats[TF, TS Number](n, k, d int) *Stats[TF, TS] {
	return &Stats[TF, TS]{
		Linked: NewLinked(n, k),
		d:      d,
		sum:    make([]TS, k*d),
		count:  make([]int32, k),
	}
}

// D returns the feature dimensionality.
func (s *Stats[TF, TS]) D() int { return s.d }

// Clone returns a deep copy of the partition, including its linked-list
// arena and running statistics.
func (s *Stats[TF, TS]) Clone() *Stats[TF, TS] {
	out := &Stats[TF, TS]{
		Linked: &Linked{
			head:   append([]int32(nil), s.head...),
			next:   append([]int32(nil), s.next...),
			prev:   append([]int32(nil), s.prev...),
			member: append([]int32(nil), s.member...),
		},
		d:     s.d,
		sum:   append([]TS(nil), s.sum...),
		count: append([]int32(nil), s.count...),
	}
	return out
}

// Count returns n[k], the number of points assigned to cluster k.
func (s *Stats[TF, TS]) Count(k int) int { return int(s.count[k]) }

// Sum returns a view of S[k], the running feature sum of cluster k.
func (s *Stats[TF, TS]) Sum(k int) []TS { return s.sum[k*s.d : k*s.d+s.d] }

// Add assigns point p, with the given features and integer frequency, to
// cluster k: splices p to the head of k's list, and updates S[k] += freq·feat,
// n[k] += 1, member[p] = k.
func (s *Stats[TF, TS]) Add(k, p int, feat []TF, freq int) {
	if s.Member(p) != Unknown {
		panic("partition: Add called on a point that is already assigned")
	}
	s.spliceInHead(k, p)
	s.member[p] = int32(k)
	s.count[k]++
	row := s.Sum(k)
	f := TS(freq)
	for i, v := range feat {
		row[i] += f * TS(v)
	}
}

// Sub removes point p from its current cluster (a no-op if p is already
// Unknown): splices p out of its list, and updates S[k] -= freq·feat,
// n[k] -= 1, member[p] = Unknown.
func (s *Stats[TF, TS]) Sub(p int, feat []TF, freq int) {
	k := s.Member(p)
	if k == Unknown {
		return
	}
	s.spliceOut(k, p)
	s.member[p] = Unknown
	s.count[k]--
	row := s.Sum(k)
	f := TS(freq)
	for i, v := range feat {
		row[i] -= f * TS(v)
	}
}

// ChangeMember moves p from its current cluster to kNew: Sub then Add.
func (s *Stats[TF, TS]) ChangeMember(kNew, p int, feat []TF, freq int) {
	s.Sub(p, feat, freq)
	s.Add(kNew, p, feat, freq)
}

// ChangeSum adjusts S and n for a stats-only migration of an entire
// cluster's mass from kFrom to kTo, without touching the linked list (used
// when a whole cluster of points migrates in bulk, e.g. PNN's merge step
// before the linked-list rewrite has caught up).
func (s *Stats[TF, TS]) ChangeSum(kFrom, kTo int, feat []TF, freq int) {
	rowFrom, rowTo := s.Sum(kFrom), s.Sum(kTo)
	f := TS(freq)
	for i, v := range feat {
		rowFrom[i] -= f * TS(v)
		rowTo[i] += f * TS(v)
	}
	s.count[kFrom]--
	s.count[kTo]++
}

// Join appends kFrom's point list onto kTo's, transferring every point's
// member and accumulating kFrom's stats into kTo, then compacts by moving
// the current last cluster into kFrom's now-empty slot and shrinking K by
// one. After Join, there is no empty slot at position kFrom: the caller
// must treat cluster indices as having been renumbered (the former last
// cluster is now kFrom).
func (s *Stats[TF, TS]) Join(kFrom, kTo int) {
	var pts []int
	s.iterate(kFrom, func(p int) { pts = append(pts, p) })
	for _, p := range pts {
		s.spliceOut(kFrom, p)
		s.spliceInHead(kTo, p)
		s.member[p] = int32(kTo)
	}
	rowFrom, rowTo := s.Sum(kFrom), s.Sum(kTo)
	for i := range rowTo {
		rowTo[i] += rowFrom[i]
	}
	s.count[kTo] += s.count[kFrom]

	last := s.K() - 1
	if kFrom != last {
		s.head[kFrom] = s.head[last]
		copy(s.Sum(kFrom), s.Sum(last))
		s.count[kFrom] = s.count[last]
		// Every point in the relocated cluster now reports member==last;
		// repoint them at kFrom.
		var moved []int
		s.iterate(kFrom, func(p int) { moved = append(moved, p) })
		for _, p := range moved {
			s.member[p] = int32(kFrom)
		}
	}
	s.resizeK(last)
}

// resizeK truncates or zero-extends the head and stats arrays to kNew
// clusters.
func (s *Stats[TF, TS]) resizeK(kNew int) {
	if kNew <= len(s.head) {
		s.head = s.head[:kNew]
		s.sum = s.sum[:kNew*s.d]
		s.count = s.count[:kNew]
		return
	}
	grow := kNew - len(s.head)
	for i := 0; i < grow; i++ {
		s.head = append(s.head, nilPoint)
		s.count = append(s.count, 0)
		s.sum = append(s.sum, make([]TS, s.d)...)
	}
}

// Resize truncates or zero-extends the partition to kNew clusters. Growing
// adds empty clusters; shrinking discards trailing clusters (which must
// already be empty — callers shrink via Join/PNN, not Resize, when a
// cluster holds points).
func (s *Stats[TF, TS]) Resize(kNew int) {
	s.resizeK(kNew)
}

// MeanCentroids writes, for every non-empty cluster k, mOut[k] = S[k]/n[k]
// (rounded to the nearest integer when TF is an integer type). It returns
// the number of empty clusters found.
func (s *Stats[TF, TS]) MeanCentroids(mOut [][]TF) (emptyCount int) {
	for k := 0; k < s.K(); k++ {
		n := s.Count(k)
		if n == 0 {
			emptyCount++
			continue
		}
		row := s.Sum(k)
		out := mOut[k]
		for i, v := range row {
			out[i] = roundMean[TF](v, n)
		}
	}
	return emptyCount
}

// Relink moves point p to cluster kNew in the linked-list arena only,
// without touching S or n: the caller (an incremental/staged update) is
// responsible for applying the corresponding delta via ApplyDelta.
func (s *Stats[TF, TS]) Relink(kNew, p int) {
	if kOld := s.Member(p); kOld != Unknown {
		s.spliceOut(kOld, p)
	}
	s.spliceInHead(kNew, p)
	s.member[p] = int32(kNew)
}

// ApplyDelta adds a staged (ΔS, Δn) pair to cluster k's running stats.
func (s *Stats[TF, TS]) ApplyDelta(k int, deltaSum []TS, deltaN int) {
	row := s.Sum(k)
	for i, v := range deltaSum {
		row[i] += v
	}
	s.count[k] += int32(deltaN)
}

// MeanOf writes S[k]/n[k] into out (rounded for integer TF). It is a
// no-op if cluster k is empty.
func (s *Stats[TF, TS]) MeanOf(k int, out []TF) {
	n := s.Count(k)
	if n == 0 {
		return
	}
	row := s.Sum(k)
	for i, v := range row {
		out[i] = roundMean[TF](v, n)
	}
}

func roundMean[TF, TS Number](sum TS, n int) TF {
	mean := float64(sum) / float64(n)
	var zero TF
	switch any(zero).(type) {
	case float32, float64:
		return TF(mean)
	default:
		return TF(vecops.RoundHalfAwayFromZero(mean))
	}
}
