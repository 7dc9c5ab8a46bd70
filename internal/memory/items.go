package memory

import (
	"time"

	"go.uber.org/zap"

	"taskboard/pkg/types"
)

// CreateItem creates a work item with status new. The id is allocated and
// the item inserted under one write lock, so concurrent creators never
// collide or lose an insert.
func (b *Backend) CreateItem(title, description string, assignee *int64) (*types.WorkItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return nil, types.ErrBoardClosed
	}

	item := &types.WorkItem{
		Title:       title,
		Description: description,
		Status:      types.StatusNew,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if assignee != nil {
		if _, ok := b.members[*assignee]; !ok {
			return nil, types.ErrMemberNotFound
		}
		id := *assignee
		item.AssignedTo = &id
	}

	b.nextItemID++
	item.ID = b.nextItemID
	item.CreatedAt = time.Now()
	b.items[item.ID] = item

	b.record(types.EventItemCreated, &item.ID, item.AssignedTo, item.Title)
	b.logger.Debug("work item created",
		zap.Int64("id", item.ID), zap.String("title", item.Title))
	return item.Clone(), nil
}

// DeleteItem removes the item if present. Nothing references an item by
// id, so no cascade is needed.
func (b *Backend) DeleteItem(id int64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return false, types.ErrBoardClosed
	}
	item, ok := b.items[id]
	if !ok {
		return false, nil
	}
	delete(b.items, id)

	b.record(types.EventItemDeleted, &id, nil, item.Title)
	b.logger.Debug("work item deleted", zap.Int64("id", id))
	return true, nil
}

// SetStatus moves the item to the given status. The transition graph is
// flat, so any existing item accepts any valid status, including its
// current one; the write always stamps UpdatedAt.
func (b *Backend) SetStatus(id int64, status types.Status) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return false, types.ErrBoardClosed
	}
	if !status.Valid() {
		return false, types.ErrInvalidStatus
	}
	item, ok := b.items[id]
	if !ok {
		return false, nil
	}
	if err := item.SetStatus(status); err != nil {
		return false, err
	}

	b.record(types.EventStatusChanged, &id, nil, string(status))
	b.logger.Debug("work item status changed",
		zap.Int64("id", id), zap.String("status", string(status)))
	return true, nil
}

// Assign sets or clears the item's assignee. A non-nil member id that does
// not resolve is rejected with ErrMemberNotFound rather than left to
// dangle; the referential-integrity invariant holds at every entry point.
func (b *Backend) Assign(itemID int64, memberID *int64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return false, types.ErrBoardClosed
	}
	item, ok := b.items[itemID]
	if !ok {
		return false, nil
	}
	if memberID != nil {
		if _, ok := b.members[*memberID]; !ok {
			return false, types.ErrMemberNotFound
		}
		id := *memberID
		item.AssignTo(&id)
	} else {
		item.AssignTo(nil)
	}

	b.record(types.EventItemAssigned, &itemID, item.AssignedTo, "")
	b.logger.Debug("work item assigned",
		zap.Int64("item_id", itemID), zap.Int64p("member_id", memberID))
	return true, nil
}
