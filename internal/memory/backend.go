// Package memory implements the in-memory Board backend. It is the
// reference implementation: plain maps guarded by a single RWMutex.
// Mutations take the write lock, so id allocation, insertion, and the
// member-deletion cascade are each one atomic step; queries take the read
// lock and return copies, so no caller ever observes a half-applied
// mutation or shares memory with the store.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard/pkg/types"
)

var _ types.Board = (*Backend)(nil)

// Backend implements types.Board with process-lifetime maps.
type Backend struct {
	mu     sync.RWMutex
	open   bool
	config types.Config
	logger *zap.Logger

	items   map[int64]*types.WorkItem
	members map[int64]*types.Member

	// Separate id sequences; both only ever grow, so ids are never reused
	// even after deletion.
	nextItemID   int64
	nextMemberID int64

	events []*types.Event
}

// NewBackend creates an unopened memory backend. A nil logger disables
// logging.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{logger: logger}
}

// Open initializes the store. Returns ErrAlreadyOpen on a second call.
func (b *Backend) Open(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open {
		return types.ErrAlreadyOpen
	}
	if err := config.Validate(); err != nil {
		return err
	}

	b.config = config
	b.items = make(map[int64]*types.WorkItem)
	b.members = make(map[int64]*types.Member)
	b.events = nil
	b.open = true

	b.logger.Info("memory board opened",
		zap.Int("history_limit", config.GetHistoryLimit()))
	return nil
}

// Close discards the collections. Idempotent. The id sequences are kept so
// a reopened backend never reuses an id.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return nil
	}
	b.open = false
	b.items = nil
	b.members = nil
	b.events = nil
	b.logger.Info("memory board closed")
	return nil
}

// record appends a journal event. Caller must hold the write lock.
func (b *Backend) record(kind string, itemID, memberID *int64, detail string) {
	b.events = append(b.events, &types.Event{
		EventID:  uuid.Must(uuid.NewV7()).String(),
		Kind:     kind,
		ItemID:   itemID,
		MemberID: memberID,
		Detail:   detail,
		At:       time.Now(),
	})
	if limit := b.config.GetHistoryLimit(); len(b.events) > limit {
		b.events = b.events[len(b.events)-limit:]
	}
}
