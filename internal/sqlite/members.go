package sqlite

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskboard/pkg/types"
)

// CreateMember inserts a member.
func (b *Backend) CreateMember(name, email string) (*types.Member, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return nil, types.ErrBoardClosed
	}

	member := &types.Member{Name: name, Email: email}
	if err := member.Validate(); err != nil {
		return nil, err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	member.CreatedAt = time.Now()
	res, err := tx.Exec(
		"INSERT INTO members (name, email, created_at) VALUES (?, ?, ?)",
		member.Name, member.Email, member.CreatedAt.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting member: %w", err)
	}
	member.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading new member id: %w", err)
	}

	if err := b.record(tx, types.EventMemberCreated, nil, &member.ID, member.Name, member.CreatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing member create: %w", err)
	}

	b.logger.Debug("member created",
		zap.Int64("id", member.ID), zap.String("name", member.Name))
	return member, nil
}

// DeleteMember removes the member and clears every dependent assignment in
// one transaction, so no reader ever sees the member gone with a dangling
// reference still in place.
func (b *Backend) DeleteMember(id int64) (bool, error) {
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

	now := time.Now()
	cleared, err := tx.Exec(
		"UPDATE items SET assigned_to = NULL, updated_at = ? WHERE assigned_to = ?",
		now.UnixNano(), id,
	)
	if err != nil {
		return false, fmt.Errorf("clearing assignments: %w", err)
	}
	unassigned, err := cleared.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking cascade result: %w", err)
	}

	res, err := tx.Exec("DELETE FROM members WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		// Member never existed; the rollback undoes the no-op update.
		return false, nil
	}

	detail := fmt.Sprintf("%d item(s) unassigned", unassigned)
	if err := b.record(tx, types.EventMemberDeleted, nil, &id, detail, now); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing member delete: %w", err)
	}

	b.logger.Debug("member deleted",
		zap.Int64("id", id), zap.Int64("items_unassigned", unassigned))
	return true, nil
}
