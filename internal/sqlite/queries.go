package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"taskboard/pkg/types"
)

const itemColumns = "id, title, description, status, assigned_to, created_at, updated_at"

// Item returns the item, or nil if it does not exist.
func (b *Backend) Item(id int64) (*types.WorkItem, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, types.ErrBoardClosed
	}
	row := b.db.QueryRow("SELECT "+itemColumns+" FROM items WHERE id = ?", id)
	item, err := hydrateItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item %d: %w", id, err)
	}
	return item, nil
}

// Items returns all items, created-at descending.
func (b *Backend) Items() ([]*types.WorkItem, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, types.ErrBoardClosed
	}
	return b.queryItems("SELECT " + itemColumns + " FROM items ORDER BY created_at DESC, id DESC")
}

// ItemsByStatus returns all items with the given status, created-at
// descending, computed fresh per call.
func (b *Backend) ItemsByStatus(status types.Status) ([]*types.WorkItem, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, types.ErrBoardClosed
	}
	return b.queryItems(
		"SELECT "+itemColumns+" FROM items WHERE status = ? ORDER BY created_at DESC, id DESC",
		string(status),
	)
}

// Members returns all members, oldest first.
func (b *Backend) Members() ([]*types.Member, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, types.ErrBoardClosed
	}
	rows, err := b.db.Query("SELECT id, name, email, created_at FROM members ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var out []*types.Member
	for rows.Next() {
		var m types.Member
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		m.CreatedAt = time.Unix(0, createdAt)
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating members: %w", err)
	}
	return out, nil
}

// MemberByID resolves a member reference. A nil or unresolved id yields
// nil without error.
func (b *Backend) MemberByID(id *int64) (*types.Member, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, types.ErrBoardClosed
	}
	if id == nil {
		return nil, nil
	}
	var m types.Member
	var createdAt int64
	err := b.db.QueryRow("SELECT id, name, email, created_at FROM members WHERE id = ?", *id).
		Scan(&m.ID, &m.Name, &m.Email, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting member %d: %w", *id, err)
	}
	m.CreatedAt = time.Unix(0, createdAt)
	return &m, nil
}

// WorkloadCount counts items currently assigned to the member.
func (b *Backend) WorkloadCount(memberID int64) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return 0, types.ErrBoardClosed
	}
	var count int
	err := b.db.QueryRow("SELECT COUNT(*) FROM items WHERE assigned_to = ?", memberID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting workload for member %d: %w", memberID, err)
	}
	return count, nil
}

// RecentEvents returns up to limit journal entries, newest first.
func (b *Backend) RecentEvents(limit int) ([]*types.Event, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, types.ErrBoardClosed
	}
	query := "SELECT event_id, kind, item_id, member_id, detail, at FROM events ORDER BY rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var out []*types.Event
	for rows.Next() {
		var e types.Event
		var itemID, memberID sql.NullInt64
		var at int64
		if err := rows.Scan(&e.EventID, &e.Kind, &itemID, &memberID, &e.Detail, &at); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		if itemID.Valid {
			e.ItemID = &itemID.Int64
		}
		if memberID.Valid {
			e.MemberID = &memberID.Int64
		}
		e.At = time.Unix(0, at)
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return out, nil
}

// queryItems runs an item select and hydrates the rows.
func (b *Backend) queryItems(query string, args ...any) ([]*types.WorkItem, error) {
	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var out []*types.WorkItem
	for rows.Next() {
		item, err := hydrateItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return out, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateItem scans one item row into a WorkItem.
func hydrateItem(s scanner) (*types.WorkItem, error) {
	var item types.WorkItem
	var status string
	var assignedTo sql.NullInt64
	var createdAt int64
	var updatedAt sql.NullInt64

	if err := s.Scan(&item.ID, &item.Title, &item.Description, &status,
		&assignedTo, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	item.Status = types.Status(status)
	if assignedTo.Valid {
		item.AssignedTo = &assignedTo.Int64
	}
	item.CreatedAt = time.Unix(0, createdAt)
	if updatedAt.Valid {
		at := time.Unix(0, updatedAt.Int64)
		item.UpdatedAt = &at
	}
	return &item, nil
}
