// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

import "math"

// roundTo converts v to T, rounding to the nearest integer when T is an
// integer type, and passing through unchanged when T is a floating-point
// type.
func roundTo[T Elem](v float64) T {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return T(v)
	default:
		return T(math.Round(v))
	}
}

// Round converts v to T, exposing roundTo to callers outside this package
// that need the same DATATYPE_CENTROIDS_ROUND behavior (e.g. the
// bi-directional H-mutation operator, which writes rounded genes back into
// an integer-typed Centroid chromosome).
func Round[T Elem](v float64) T {
	return roundTo[T](v)
}
