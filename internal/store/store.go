// Package store persists the poll document in a single named storage slot.
// The whole document is the unit of persistence: it is loaded once at
// startup and rewritten in full, synchronously, after every committed
// mutation. No batching, no retry.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lalegende/sondage/internal/poll"
)

// slotKey is the fixed key of the one slot the poll lives under.
const slotKey = "legend3_poll_store_v1"

// Store holds the current document in memory and mirrors every committed
// mutation to the storage slot. Commits are serialized by a mutex; when two
// editors race, the last write wins. There is no merge policy.
type Store struct {
	db     *sql.DB
	logger *slog.Logger

	mu  sync.Mutex
	doc poll.Document
}

// Open creates the slot table if needed and loads the document. An absent or
// unparsable slot is replaced by the seeded default, which is written back
// immediately.
func Open(ctx context.Context, db *sql.DB, logger *slog.Logger) (*Store, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS store (
			key  TEXT PRIMARY KEY,
			data JSONB NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("creating store table: %w", err)
	}

	s := &Store{db: db, logger: logger}

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.doc = doc
	return s, nil
}

func (s *Store) load(ctx context.Context) (poll.Document, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM store WHERE key = ?`, slotKey,
	).Scan(&data)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.Info("storage slot empty, seeding default document")
	case err != nil:
		return poll.Document{}, fmt.Errorf("reading storage slot: %w", err)
	default:
		doc, perr := poll.ParseDocument([]byte(data))
		if perr == nil {
			return doc, nil
		}
		s.logger.Warn("storage slot unparsable, seeding default document", "error", perr)
	}

	doc := poll.Seed()
	if err := s.save(ctx, doc); err != nil {
		return poll.Document{}, err
	}
	return doc, nil
}

func (s *Store) save(ctx context.Context, doc poll.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO store (key, data) VALUES (?, jsonb(?))`,
		slotKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing storage slot: %w", err)
	}
	return nil
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() poll.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Update applies fn to a copy of the current document, persists the result,
// then commits it in memory. When fn fails nothing changes; when the write
// fails the error surfaces and the in-memory document keeps its pre-mutation
// value, so memory never silently diverges from disk.
func (s *Store) Update(ctx context.Context, fn func(poll.Document) (poll.Document, error)) (poll.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.doc.Clone())
	if err != nil {
		return poll.Document{}, err
	}
	if err := s.save(ctx, next); err != nil {
		return poll.Document{}, err
	}
	s.doc = next
	return next.Clone(), nil
}

// Replace swaps in a whole new document atomically. This is the import path;
// the candidate must already be shape-checked.
func (s *Store) Replace(ctx context.Context, doc poll.Document) error {
	_, err := s.Update(ctx, func(poll.Document) (poll.Document, error) {
		return doc, nil
	})
	return err
}

// Reset reinstalls the seeded default document.
func (s *Store) Reset(ctx context.Context) (poll.Document, error) {
	return s.Update(ctx, func(poll.Document) (poll.Document, error) {
		return poll.Seed(), nil
	})
}

// Ping reports whether the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
