// Board command: the interactive session and the JSON snapshot mode.
package main

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskboard/internal/tui"
	"taskboard/pkg/types"
)

var flagSeed bool

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive board",
	Long: `Board opens an interactive four-column view of the work items.
With --json it prints a snapshot of the board instead and exits.
State is volatile: every session starts from an empty board unless
--seed fills in demo data.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		board, logger, err := openBoard()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
		defer board.Close()

		if flagSeed {
			if err := seedBoard(board); err != nil {
				return fmt.Errorf("seed board: %w", err)
			}
		}

		if flagJSON {
			return printSnapshot(cmd, board)
		}

		program := tea.NewProgram(tui.New(board), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("run board: %w", err)
		}
		return nil
	},
}

func init() {
	boardCmd.Flags().BoolVar(&flagSeed, "seed", false, "populate the board with demo data")
}

// boardSnapshot is the JSON shape printed by --json.
type boardSnapshot struct {
	Columns map[string][]*types.WorkItem `json:"columns"`
	Members []*types.Member              `json:"members"`
	Events  []*types.Event               `json:"events"`
}

// printSnapshot writes the full board state as indented JSON.
func printSnapshot(cmd *cobra.Command, board types.Board) error {
	snapshot := boardSnapshot{
		Columns: make(map[string][]*types.WorkItem, len(types.Statuses)),
	}

	for _, status := range types.Statuses {
		items, err := board.ItemsByStatus(status)
		if err != nil {
			return fmt.Errorf("list %s items: %w", status, err)
		}
		snapshot.Columns[string(status)] = items
	}

	members, err := board.Members()
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	snapshot.Members = members

	events, err := board.RecentEvents(0)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}
	snapshot.Events = events

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
