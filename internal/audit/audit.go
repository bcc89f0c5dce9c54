// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

// Package audit persists every mutation event to an append-only BadgerDB
// log, keyed by a monotonic sequence. It is purely observational: it
// never feeds entries back into anything, has no confirm/retry/lease
// workflow, and plays no part in crash recovery of the Store's own
// state.
package audit

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/stremin/accountengine/internal/eventprocessor"
	"github.com/stremin/accountengine/internal/logging"
)

const seqKey = "audit:seq"

// Log is an append-only record of every successful mutation.
type Log struct {
	db  *badger.DB
	seq *badger.Sequence
}

// Open opens (creating if necessary) a BadgerDB-backed audit log at
// path.
func Open(path string) (*Log, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}

	seq, err := db.GetSequence([]byte(seqKey), 100)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init audit sequence: %w", err)
	}

	return &Log{db: db, seq: seq}, nil
}

// Record is the on-disk shape of one audit entry.
type Record struct {
	Seq       uint64                   `json:"seq"`
	Kind      eventprocessor.MutationKind `json:"kind"`
	AccountID int32                    `json:"account_id"`
}

// Append writes one record under the next sequence number.
func (l *Log) Append(m eventprocessor.Mutation) error {
	n, err := l.seq.Next()
	if err != nil {
		return fmt.Errorf("next audit sequence: %w", err)
	}

	rec := Record{Seq: n, Kind: m.Kind, AccountID: m.AccountID}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(seqToKey(n), data)
	})
}

// Follow consumes mutation events from pub until ctx is cancelled,
// appending each to the log. Append errors are logged and do not stop
// the loop: a missed audit entry must not take down the mutation path.
func (l *Log) Follow(ctx context.Context, pub *eventprocessor.Publisher) error {
	events, err := pub.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe for audit: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-events:
			if !ok {
				return nil
			}
			if err := l.Append(m); err != nil {
				logging.Error().Err(err).Msg("failed to append audit record")
			}
		}
	}
}

// Close releases the sequence lease and closes the database.
func (l *Log) Close() error {
	if err := l.seq.Release(); err != nil {
		logging.Error().Err(err).Msg("failed to release audit sequence")
	}
	return l.db.Close()
}

func seqToKey(n uint64) []byte {
	return []byte(fmt.Sprintf("audit:%020d", n))
}
