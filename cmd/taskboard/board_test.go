package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"taskboard/internal/memory"
	"taskboard/pkg/types"
)

func seededBoard(t *testing.T) types.Board {
	t.Helper()

	board := memory.NewBackend(zaptest.NewLogger(t))
	require.NoError(t, board.Open(types.Config{Backend: types.BackendMemory}))
	t.Cleanup(func() { _ = board.Close() })

	require.NoError(t, seedBoard(board))
	return board
}

func TestSeedBoardCoversEveryColumn(t *testing.T) {
	board := seededBoard(t)

	for _, status := range types.Statuses {
		items, err := board.ItemsByStatus(status)
		require.NoError(t, err)
		assert.NotEmptyf(t, items, "no seeded items with status %s", status)
	}

	members, err := board.Members()
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestPrintSnapshot(t *testing.T) {
	board := seededBoard(t)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, printSnapshot(cmd, board))

	var snapshot boardSnapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &snapshot))

	assert.Len(t, snapshot.Columns, len(types.Statuses))
	assert.Len(t, snapshot.Members, 2)
	assert.NotEmpty(t, snapshot.Events)

	total := 0
	for _, items := range snapshot.Columns {
		total += len(items)
	}
	assert.Equal(t, 6, total)
}
