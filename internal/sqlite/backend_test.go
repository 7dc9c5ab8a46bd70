package sqlite

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"taskboard/pkg/types"
)

// setupBoard returns an opened sqlite backend with a close deferred via
// t.Cleanup.
func setupBoard(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend(zaptest.NewLogger(t))
	require.NoError(t, b.Open(types.Config{Backend: types.BackendSQLite}))
	t.Cleanup(func() { b.Close() })
	return b
}

func TestLifecycle(t *testing.T) {
	b := setupBoard(t)
	assert.ErrorIs(t, b.Open(types.Config{Backend: types.BackendSQLite}), types.ErrAlreadyOpen)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close(), "close is idempotent")

	_, err := b.CreateItem("x", "", nil)
	assert.ErrorIs(t, err, types.ErrBoardClosed)
	_, err = b.Items()
	assert.ErrorIs(t, err, types.ErrBoardClosed)
}

func TestCreateItemAssignsSequentialIDs(t *testing.T) {
	b := setupBoard(t)

	for want := int64(1); want <= 3; want++ {
		item, err := b.CreateItem("item", "", nil)
		require.NoError(t, err)
		assert.Equal(t, want, item.ID)
		assert.Equal(t, types.StatusNew, item.Status)
		assert.Nil(t, item.UpdatedAt)
	}

	// AUTOINCREMENT never reuses an id, even after deleting the newest row.
	existed, err := b.DeleteItem(3)
	require.NoError(t, err)
	require.True(t, existed)

	item, err := b.CreateItem("after delete", "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), item.ID)
}

func TestCreateItemValidation(t *testing.T) {
	b := setupBoard(t)

	_, err := b.CreateItem("", "", nil)
	require.ErrorIs(t, err, types.ErrInvalidTitle)

	ghost := int64(9)
	_, err = b.CreateItem("ok", "", &ghost)
	require.ErrorIs(t, err, types.ErrMemberNotFound)

	items, err := b.Items()
	require.NoError(t, err)
	assert.Empty(t, items, "failed creates must not mutate the store")

	item, err := b.CreateItem("first real item", "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID, "failed create must not advance the id sequence")
}

func TestSetStatus(t *testing.T) {
	b := setupBoard(t)
	item, err := b.CreateItem("item", "", nil)
	require.NoError(t, err)

	ok, err := b.SetStatus(item.ID, types.StatusBlocked)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := b.Item(item.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusBlocked, got.Status)
	require.NotNil(t, got.UpdatedAt)

	// Flat graph: blocked straight to completed.
	ok, err = b.SetStatus(item.ID, types.StatusCompleted)
	require.NoError(t, err)
	require.True(t, ok)
	got, err = b.Item(item.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, got.Status)

	// Missing item: soft false, store untouched.
	ok, err = b.SetStatus(999, types.StatusActive)
	require.NoError(t, err)
	assert.False(t, ok)

	// Unrecognized value is a validation error.
	ok, err = b.SetStatus(item.ID, "archived")
	assert.ErrorIs(t, err, types.ErrInvalidStatus)
	assert.False(t, ok)
}

func TestSetStatusIdempotentWriteStamps(t *testing.T) {
	b := setupBoard(t)
	item, err := b.CreateItem("item", "", nil)
	require.NoError(t, err)

	ok, err := b.SetStatus(item.ID, types.StatusNew)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := b.Item(item.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.UpdatedAt, "same-status write must still stamp updated_at")
}

func TestAssign(t *testing.T) {
	b := setupBoard(t)
	ana, err := b.CreateMember("Ana", "ana@x.com")
	require.NoError(t, err)
	item, err := b.CreateItem("Fix bug", "", nil)
	require.NoError(t, err)

	ok, err := b.Assign(item.ID, &ana.ID)
	require.NoError(t, err)
	require.True(t, ok)

	count, err := b.WorkloadCount(ana.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Missing item: soft false even alongside a ghost member.
	ghost := int64(42)
	ok, err = b.Assign(999, &ghost)
	require.NoError(t, err)
	assert.False(t, ok)

	// Existing item, unresolved member: rejected, nothing written.
	ok, err = b.Assign(item.ID, &ghost)
	assert.ErrorIs(t, err, types.ErrMemberNotFound)
	assert.False(t, ok)

	got, err := b.Item(item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, ana.ID, *got.AssignedTo)

	// Clearing the assignment.
	ok, err = b.Assign(item.ID, nil)
	require.NoError(t, err)
	require.True(t, ok)
	got, err = b.Item(item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssignedTo)
}

func TestDeleteMemberCascade(t *testing.T) {
	b := setupBoard(t)
	ana, err := b.CreateMember("Ana", "ana@x.com")
	require.NoError(t, err)
	bob, err := b.CreateMember("Bob", "bob@x.com")
	require.NoError(t, err)

	mine, err := b.CreateItem("ana's", "", &ana.ID)
	require.NoError(t, err)
	theirs, err := b.CreateItem("bob's", "", &bob.ID)
	require.NoError(t, err)

	existed, err := b.DeleteMember(ana.ID)
	require.NoError(t, err)
	require.True(t, existed)

	got, err := b.Item(mine.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssignedTo)
	assert.NotNil(t, got.UpdatedAt)

	got, err = b.Item(theirs.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, bob.ID, *got.AssignedTo)

	member, err := b.MemberByID(&ana.ID)
	require.NoError(t, err)
	assert.Nil(t, member)

	existed, err = b.DeleteMember(ana.ID)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestItemsByStatusOrdering(t *testing.T) {
	b := setupBoard(t)

	var ids []int64
	for i := 0; i < 4; i++ {
		item, err := b.CreateItem(fmt.Sprintf("item %d", i), "", nil)
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}

	items, err := b.ItemsByStatus(types.StatusNew)
	require.NoError(t, err)
	require.Len(t, items, 4)
	for i, item := range items {
		assert.Equal(t, ids[len(ids)-1-i], item.ID, "newest first")
	}
}

func TestMemberRoundTrip(t *testing.T) {
	b := setupBoard(t)
	ana, err := b.CreateMember("Ana", "ana@x.com")
	require.NoError(t, err)

	_, err = b.CreateMember("", "x@x.com")
	assert.ErrorIs(t, err, types.ErrInvalidName)
	_, err = b.CreateMember("Bob", "broken")
	assert.ErrorIs(t, err, types.ErrInvalidEmail)

	members, err := b.Members()
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, ana.ID, members[0].ID)
	assert.Equal(t, "Ana", members[0].Name)
	assert.Equal(t, "ana@x.com", members[0].Email)
	assert.False(t, members[0].CreatedAt.IsZero())

	got, err := b.MemberByID(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEventsJournal(t *testing.T) {
	b := NewBackend(nil)
	require.NoError(t, b.Open(types.Config{Backend: types.BackendSQLite, HistoryLimit: 3}))
	t.Cleanup(func() { b.Close() })

	for i := 0; i < 6; i++ {
		_, err := b.CreateItem("item", "", nil)
		require.NoError(t, err)
	}

	events, err := b.RecentEvents(0)
	require.NoError(t, err)
	require.Len(t, events, 3, "journal trimmed to history_limit")
	for _, e := range events {
		assert.Equal(t, types.EventItemCreated, e.Kind)
		assert.NotEmpty(t, e.EventID)
		require.NotNil(t, e.ItemID)
	}
	// Newest first.
	assert.Equal(t, int64(6), *events[0].ItemID)

	limited, err := b.RecentEvents(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, int64(6), *limited[0].ItemID)
}

// The single-connection pool plus per-mutation transactions keep parallel
// writers from colliding on id allocation.
func TestConcurrentCreateUniqueIDs(t *testing.T) {
	const writers = 4
	const perWriter = 25

	b := setupBoard(t)

	var g errgroup.Group
	for w := 0; w < writers; w++ {
		g.Go(func() error {
			for i := 0; i < perWriter; i++ {
				if _, err := b.CreateItem("load item", "", nil); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	items, err := b.Items()
	require.NoError(t, err)
	require.Len(t, items, writers*perWriter)

	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		assert.False(t, seen[item.ID], "duplicate id %d", item.ID)
		seen[item.ID] = true
	}
}
