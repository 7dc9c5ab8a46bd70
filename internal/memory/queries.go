package memory

import (
	"sort"

	"taskboard/pkg/types"
)

// Queries run under the read lock and return fresh copies, computed per
// call. Concurrent readers never block each other.

// Item returns a copy of the item, or nil if it does not exist.
func (b *Backend) Item(id int64) (*types.WorkItem, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, types.ErrBoardClosed
	}
	item, ok := b.items[id]
	if !ok {
		return nil, nil
	}
	return item.Clone(), nil
}

// Items returns copies of all items, created-at descending.
func (b *Backend) Items() ([]*types.WorkItem, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, types.ErrBoardClosed
	}
	out := make([]*types.WorkItem, 0, len(b.items))
	for _, item := range b.items {
		out = append(out, item.Clone())
	}
	sortItemsNewestFirst(out)
	return out, nil
}

// ItemsByStatus returns copies of all items with the given status,
// created-at descending.
func (b *Backend) ItemsByStatus(status types.Status) ([]*types.WorkItem, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, types.ErrBoardClosed
	}
	var out []*types.WorkItem
	for _, item := range b.items {
		if item.Status == status {
			out = append(out, item.Clone())
		}
	}
	sortItemsNewestFirst(out)
	return out, nil
}

// Members returns copies of all members, oldest first.
func (b *Backend) Members() ([]*types.Member, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, types.ErrBoardClosed
	}
	out := make([]*types.Member, 0, len(b.members))
	for _, member := range b.members {
		out = append(out, member.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
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
	member, ok := b.members[*id]
	if !ok {
		return nil, nil
	}
	return member.Clone(), nil
}

// WorkloadCount counts the items currently assigned to the member,
// computed live against the collection.
func (b *Backend) WorkloadCount(memberID int64) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return 0, types.ErrBoardClosed
	}
	count := 0
	for _, item := range b.items {
		if item.AssignedTo != nil && *item.AssignedTo == memberID {
			count++
		}
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
	n := len(b.events)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]*types.Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, b.events[i].Clone())
	}
	return out, nil
}

// sortItemsNewestFirst orders items by creation time descending; ids break
// ties so the later-created item still comes first.
func sortItemsNewestFirst(items []*types.WorkItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
