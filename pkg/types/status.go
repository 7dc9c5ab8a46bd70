package types

// Status describes a work item's progress state.
type Status string

// Work item statuses. The transition graph is flat: any status may be set
// from any other status, and no status is terminal. Items are always
// created as StatusNew.
const (
	StatusNew       Status = "new"
	StatusActive    Status = "active"
	StatusBlocked   Status = "blocked"
	StatusCompleted Status = "completed"
)

// Statuses lists the valid statuses in board-column order.
var Statuses = []Status{StatusNew, StatusActive, StatusBlocked, StatusCompleted}

// validStatuses is the set of recognized status values.
var validStatuses = map[Status]bool{
	StatusNew:       true,
	StatusActive:    true,
	StatusBlocked:   true,
	StatusCompleted: true,
}

// Valid reports whether s is one of the four recognized statuses.
func (s Status) Valid() bool {
	return validStatuses[s]
}

// ParseStatus converts a raw string into a Status.
// Returns ErrInvalidStatus for anything outside the recognized set.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
