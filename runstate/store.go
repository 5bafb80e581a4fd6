// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runstate

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/oklog/ulid/v2"
	"golang.org/x/exp/rand"
	"modernc.org/kv"
)

var order = binary.BigEndian

// NewRunID mints a sortable run identifier from rng and the millisecond
// timestamp now, used to key a run's records in Store.
func NewRunID(rng io.Reader, now uint64) ulid.ULID {
	entropy := ulid.Monotonic(rng, 0)
	return ulid.MustNew(now, entropy)
}

// RandReader adapts a *rand.Rand to the io.Reader ulid.Monotonic wants,
// so a run's single PRNG is also the entropy source for its run ID,
// rather than reaching for crypto/rand.
type RandReader struct{ Rng *rand.Rand }

func (r RandReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.Rng.Intn(256))
	}
	return len(p), nil
}

// recordKey orders by run ID then generation, so a run's history is a
// contiguous, generation-ordered range in the store (mirroring the
// BLAST-indexing store's grouped-range key layout).
func recordKey(run ulid.ULID, gen int) []byte {
	var buf bytes.Buffer
	buf.Write(run[:])
	var g [8]byte
	order.PutUint64(g[:], uint64(gen))
	buf.Write(g[:])
	return buf.Bytes()
}

// CompareRecordKeys is the kv.Options.Compare function for a Store's
// underlying database: byte-lexicographic order already sorts run ID then
// generation correctly, since both are fixed-width big-endian fields.
func CompareRecordKeys(x, y []byte) int {
	return bytes.Compare(x, y)
}

// Store persists a run's Generation history to disk via an ordered
// key-value database, keyed by (run ID, generation), so a long-running or
// resumed driver does not have to hold its whole history in memory
// (adapted from the BLAST hit-indexing store's kv.DB usage).
type Store struct {
	db *kv.DB
}

// OpenStore creates (or opens, if it already exists) the history database
// at path.
func OpenStore(path string) (*Store, error) {
	opts := &kv.Options{Compare: CompareRecordKeys}
	db, err := kv.Create(path, opts)
	if err != nil {
		db, err = kv.Open(path, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("runstate: open history store %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put appends a generation record for run to the store.
func (s *Store) Put(run ulid.ULID, g Generation) error {
	v, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("runstate: marshal generation record: %w", err)
	}
	if err := s.db.BeginTransaction(); err != nil {
		return fmt.Errorf("runstate: begin transaction: %w", err)
	}
	if err := s.db.Set(recordKey(run, g.Index), v); err != nil {
		s.db.Rollback()
		return fmt.Errorf("runstate: put generation record: %w", err)
	}
	return s.db.Commit()
}

// Load returns every generation record stored for run, in generation
// order. Records for every run in the store are ordered by run ID first,
// and a run's history is read back once, not under time pressure, so a
// full forward scan skipping to the matching prefix is sufficient and
// keeps this to the SeekFirst/Next enumerator contract exercised by the
// rest of the store layer.
func (s *Store) Load(run ulid.ULID) ([]Generation, error) {
	prefix := run[:]
	it, err := s.db.SeekFirst()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("runstate: seek history store: %w", err)
	}
	var out []Generation
	for {
		k, v, err := it.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("runstate: scan history store: %w", err)
		}
		if !bytes.HasPrefix(k, prefix) {
			if len(out) > 0 {
				break
			}
			continue
		}
		var g Generation
		if err := json.Unmarshal(v, &g); err != nil {
			return nil, fmt.Errorf("runstate: unmarshal generation record: %w", err)
		}
		out = append(out, g)
	}
	return out, nil
}
