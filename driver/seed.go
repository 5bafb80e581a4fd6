// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"hash/fnv"

	"golang.org/x/exp/rand"
)

// newRNG tokenizes a printable seed string into a numeric seed via FNV-1a,
// so the same seed string always reproduces the same run.
func newRNG(seed string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(seed))
	return rand.New(rand.NewSource(h.Sum64()))
}
