// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver implements the family of evolutionary clustering loops
// that compose the vector-op, matrix, partition, chromosome, kernel and ga
// layers with run-time budgets, population bookkeeping, an elitism policy
// and an adaptive mutation schedule. Every driver shares the same
// skeleton: seed, initialize, evaluate, loop{select, crossover, mutate,
// evaluate, replace, record}, finalize.
package driver

import (
	"errors"
	"fmt"
)

// Kind distinguishes the categories of error a driver run can fail with.
type Kind int

const (
	// InvalidParameter: k ≤ 0, population ≤ 1, probabilities out of
	// range, k_max < k_min, d = 0.
	InvalidParameter Kind = iota
	// Singular: matrix inverse attempted on a singular matrix (raised
	// only by the induced-distance setup).
	Singular
	// EmptyDataset: N = 0.
	EmptyDataset
	// InsufficientData: N < K.
	InsufficientData
	// NumericOverflow: integer accumulators would wrap.
	NumericOverflow
)

func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "InvalidParameter"
	case Singular:
		return "Singular"
	case EmptyDataset:
		return "EmptyDataset"
	case InsufficientData:
		return "InsufficientData"
	case NumericOverflow:
		return "NumericOverflow"
	default:
		return "Unknown"
	}
}

// Error is a driver-level error tagged with its Kind, so callers can
// distinguish the sum type with errors.As rather than string matching.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("driver: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("driver: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target names the same Kind, letting callers write
// errors.Is(err, driver.ErrSingular) and friends.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// newErr constructs an *Error with the given kind and message.
func newErr(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// ErrSingular, ErrEmptyDataset, ... are kind-only sentinels usable with
// errors.Is: errors.Is(err, driver.ErrEmptyDataset).
var (
	ErrInvalidParameter = &Error{Kind: InvalidParameter}
	ErrSingular         = &Error{Kind: Singular}
	ErrEmptyDataset     = &Error{Kind: EmptyDataset}
	ErrInsufficientData = &Error{Kind: InsufficientData}
	ErrNumericOverflow  = &Error{Kind: NumericOverflow}
)
