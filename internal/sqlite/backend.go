// Package sqlite implements the Board backend on an in-memory SQLite
// database. The database lives in :memory: only and is discarded on Close;
// it exists for the SQL query surface, not for durability. Timestamps are
// stored as Unix nanoseconds so ordering comparisons are exact.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"taskboard/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

var _ types.Board = (*Backend)(nil)

// Backend implements types.Board over database/sql.
//
// The connection pool is capped at one connection: every pool connection
// to ":memory:" would otherwise open its own private database. The single
// connection also serializes statement execution; the mutex guards the
// open/close state and keeps each multi-statement mutation (cascade plus
// journal write) one critical section.
type Backend struct {
	mu     sync.RWMutex
	open   bool
	config types.Config
	logger *zap.Logger
	db     *sql.DB
}

// NewBackend creates an unopened sqlite backend. A nil logger disables
// logging.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{logger: logger}
}

// Open creates the in-memory database and applies the schema.
// Returns ErrAlreadyOpen on a second call.
func (b *Backend) Open(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open {
		return types.ErrAlreadyOpen
	}
	if err := config.Validate(); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return fmt.Errorf("opening in-memory database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("applying schema: %w", err)
	}

	b.db = db
	b.config = config
	b.open = true

	b.logger.Info("sqlite board opened",
		zap.Int("history_limit", config.GetHistoryLimit()))
	return nil
}

// Close discards the database. Idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return nil
	}
	b.open = false
	err := b.db.Close()
	b.db = nil
	b.logger.Info("sqlite board closed")
	if err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// record inserts a journal event and trims the journal to the configured
// bound. Runs inside the caller's transaction.
func (b *Backend) record(tx *sql.Tx, kind string, itemID, memberID *int64, detail string, at time.Time) error {
	_, err := tx.Exec(
		"INSERT INTO events (event_id, kind, item_id, member_id, detail, at) VALUES (?, ?, ?, ?, ?, ?)",
		uuid.Must(uuid.NewV7()).String(), kind, itemID, memberID, detail, at.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("recording event: %w", err)
	}
	_, err = tx.Exec(
		`DELETE FROM events WHERE rowid NOT IN
		   (SELECT rowid FROM events ORDER BY rowid DESC LIMIT ?)`,
		b.config.GetHistoryLimit(),
	)
	if err != nil {
		return fmt.Errorf("trimming journal: %w", err)
	}
	return nil
}
