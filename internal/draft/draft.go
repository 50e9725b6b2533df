// FormFlow - Terminal Registration Wizard
// Copyright (C) 2026 FormFlow Labs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package draft persists the in-progress registration record between
// sessions in a BadgerDB-backed single-slot store.
package draft

import (
	"encoding/json"
	"strings"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/formflow/formflow/internal/schema"
)

// snapshotKey is the single slot the draft lives under. Only one in-flight
// draft exists at a time.
var snapshotKey = []byte("draft")

// Options configures a Store.
type Options struct {
	Dir      string // on-disk directory (ignored when InMemory is true)
	InMemory bool   // use in-memory storage (for tests)
}

// Store is the durable draft slot.
type Store struct {
	db *badger.DB
}

// Open creates or opens the draft store. If the WAL is corrupted (e.g. from
// an unclean shutdown), it recovers by opening once in write mode to allow
// truncation before retrying.
func Open(opts Options) (*Store, error) {
	bopts := badgerOptions(opts)

	db, err := badger.Open(bopts)
	if err != nil && !opts.InMemory && needsTruncation(err) {
		rdb, rerr := badger.Open(badgerOptions(Options{Dir: opts.Dir}))
		if rerr != nil {
			return nil, err // return original error if recovery fails
		}
		if cerr := rdb.Close(); cerr != nil {
			return nil, cerr
		}
		db, err = badger.Open(bopts)
	}
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func badgerOptions(opts Options) badger.Options {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = nil // suppress badger logs
	return bopts
}

// needsTruncation checks if a BadgerDB open error indicates WAL truncation is needed.
func needsTruncation(err error) bool {
	return strings.Contains(err.Error(), "Log truncate required") ||
		strings.Contains(err.Error(), "MANIFEST has unsupported version")
}

// Load returns the persisted snapshot, or the default-empty record when no
// snapshot exists or the stored bytes are unparseable. Corruption never
// surfaces as an error; it falls back to defaults.
func (s *Store) Load() schema.FormValues {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey)
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return schema.Defaults()
	}

	var v schema.FormValues
	if err := json.Unmarshal(raw, &v); err != nil {
		return schema.Defaults()
	}
	// Snapshots written by Save carry no secrets; blank them anyway so a
	// hand-edited or foreign snapshot cannot smuggle them in.
	return v.WithoutSecrets()
}

// Save overwrites the snapshot with the given record, password fields
// blanked.
func (s *Store) Save(v schema.FormValues) error {
	data, err := json.Marshal(v.WithoutSecrets())
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey, data)
	})
}

// Clear removes the snapshot; future Load calls return defaults.
func (s *Store) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(snapshotKey)
	})
}

// Close runs value log GC and then closes the underlying database.
func (s *Store) Close() error {
	// A 0.5 discard ratio rewrites a vlog file when at least half of its
	// space is reclaimable.
	for s.db.RunValueLogGC(0.5) == nil {
	}
	return s.db.Close()
}
