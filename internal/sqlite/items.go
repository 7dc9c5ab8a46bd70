package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskboard/pkg/types"
)

// CreateItem inserts a work item with status new. The AUTOINCREMENT id and
// the insert are one statement, so concurrent creators cannot collide.
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

	tx, err := b.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if assignee != nil {
		ok, err := memberExists(tx, *assignee)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, types.ErrMemberNotFound
		}
		id := *assignee
		item.AssignedTo = &id
	}

	item.CreatedAt = time.Now()
	res, err := tx.Exec(
		"INSERT INTO items (title, description, status, assigned_to, created_at) VALUES (?, ?, ?, ?, ?)",
		item.Title, item.Description, string(item.Status), item.AssignedTo, item.CreatedAt.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting item: %w", err)
	}
	item.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading new item id: %w", err)
	}

	if err := b.record(tx, types.EventItemCreated, &item.ID, item.AssignedTo, item.Title, item.CreatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item create: %w", err)
	}

	b.logger.Debug("work item created",
		zap.Int64("id", item.ID), zap.String("title", item.Title))
	return item, nil
}

// DeleteItem removes the item if present.
func (b *Backend) DeleteItem(id int64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return false, types.ErrBoardClosed
	}

	tx, err := b.db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if err := b.record(tx, types.EventItemDeleted, &id, nil, "", time.Now()); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing item delete: %w", err)
	}

	b.logger.Debug("work item deleted", zap.Int64("id", id))
	return true, nil
}

// SetStatus moves the item to the given status and stamps updated_at, even
// when the status is unchanged.
func (b *Backend) SetStatus(id int64, status types.Status) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return false, types.ErrBoardClosed
	}
	if !status.Valid() {
		return false, types.ErrInvalidStatus
	}

	tx, err := b.db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.Exec(
		"UPDATE items SET status = ?, updated_at = ? WHERE id = ?",
		string(status), now.UnixNano(), id,
	)
	if err != nil {
		return false, fmt.Errorf("updating status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if err := b.record(tx, types.EventStatusChanged, &id, nil, string(status), now); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing status change: %w", err)
	}

	b.logger.Debug("work item status changed",
		zap.Int64("id", id), zap.String("status", string(status)))
	return true, nil
}

// Assign sets or clears the item's assignee. An unresolved member id is
// rejected with ErrMemberNotFound before anything is written.
func (b *Backend) Assign(itemID int64, memberID *int64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return false, types.ErrBoardClosed
	}

	tx, err := b.db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Missing item wins over an unresolved member, matching the memory
	// backend: the soft not-found comes first, validation second.
	var one int
	err = tx.QueryRow("SELECT 1 FROM items WHERE id = ?", itemID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking item existence: %w", err)
	}

	if memberID != nil {
		ok, err := memberExists(tx, *memberID)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, types.ErrMemberNotFound
		}
	}

	now := time.Now()
	if _, err := tx.Exec(
		"UPDATE items SET assigned_to = ?, updated_at = ? WHERE id = ?",
		memberID, now.UnixNano(), itemID,
	); err != nil {
		return false, fmt.Errorf("updating assignee: %w", err)
	}

	if err := b.record(tx, types.EventItemAssigned, &itemID, memberID, "", now); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing assignment: %w", err)
	}

	b.logger.Debug("work item assigned",
		zap.Int64("item_id", itemID), zap.Int64p("member_id", memberID))
	return true, nil
}

// memberExists reports whether a member row exists within the transaction.
func memberExists(tx *sql.Tx, id int64) (bool, error) {
	var one int
	err := tx.QueryRow("SELECT 1 FROM members WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking member existence: %w", err)
	}
	return true, nil
}
