package memory

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskboard/pkg/types"
)

// CreateMember creates a member with the next member id.
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

	b.nextMemberID++
	member.ID = b.nextMemberID
	member.CreatedAt = time.Now()
	b.members[member.ID] = member

	b.record(types.EventMemberCreated, nil, &member.ID, member.Name)
	b.logger.Debug("member created",
		zap.Int64("id", member.ID), zap.String("name", member.Name))
	return member.Clone(), nil
}

// DeleteMember removes the member and clears the assignee on every item
// that referenced it, all under one write lock. Readers either see the
// member with all assignments intact or neither; a dangling AssignedTo is
// never observable. Every cleared item gets the same UpdatedAt stamp.
func (b *Backend) DeleteMember(id int64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return false, types.ErrBoardClosed
	}
	member, ok := b.members[id]
	if !ok {
		return false, nil
	}

	now := time.Now()
	cleared := 0
	for _, item := range b.items {
		if item.AssignedTo != nil && *item.AssignedTo == id {
			item.AssignedTo = nil
			at := now
			item.UpdatedAt = &at
			cleared++
		}
	}
	delete(b.members, id)

	b.record(types.EventMemberDeleted, nil, &id,
		fmt.Sprintf("%s; %d item(s) unassigned", member.Name, cleared))
	b.logger.Debug("member deleted",
		zap.Int64("id", id), zap.Int("items_unassigned", cleared))
	return true, nil
}
