// Demo data for the --seed flag.
package main

import (
	"fmt"

	"taskboard/pkg/types"
)

// seedBoard fills an empty board with a small demo team and a handful of
// work items spread across every column.
func seedBoard(board types.Board) error {
	ada, err := board.CreateMember("Ada Lovelace", "ada@example.com")
	if err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	grace, err := board.CreateMember("Grace Hopper", "grace@example.com")
	if err != nil {
		return fmt.Errorf("create member: %w", err)
	}

	seeds := []struct {
		title       string
		description string
		assignee    *int64
		status      types.Status
	}{
		{"Sketch the onboarding flow", "Rough wireframes for the first-run screens.", nil, types.StatusNew},
		{"Wire up the login form", "Hook the form into the session service.", &ada.ID, types.StatusActive},
		{"Fix the flaky import test", "Fails roughly one run in five on CI.", &grace.ID, types.StatusActive},
		{"Upgrade the build image", "Waiting on the infra team to publish it.", &ada.ID, types.StatusBlocked},
		{"Write the release notes", "Covers everything merged since the last tag.", &grace.ID, types.StatusCompleted},
		{"Triage the feedback backlog", "", nil, types.StatusNew},
	}

	for _, seed := range seeds {
		item, err := board.CreateItem(seed.title, seed.description, seed.assignee)
		if err != nil {
			return fmt.Errorf("create item %q: %w", seed.title, err)
		}
		if seed.status == types.StatusNew {
			continue
		}
		if _, err := board.SetStatus(item.ID, seed.status); err != nil {
			return fmt.Errorf("set status on %q: %w", seed.title, err)
		}
	}

	return nil
}
