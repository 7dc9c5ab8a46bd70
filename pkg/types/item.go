package types

import "time"

// Field limits for WorkItem validation.
const (
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
)

// WorkItem represents a trackable unit of work on the board.
// IDs are assigned by the backend: unique, monotonically increasing, and
// never reused. AssignedTo, when non-nil, always references a member that
// still exists; the backend's cascade on member deletion maintains this.
type WorkItem struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	AssignedTo  *int64     `json:"assigned_to,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Validate checks the field constraints on the item.
// Returns ErrInvalidTitle or ErrInvalidDescription on violation.
func (w *WorkItem) Validate() error {
	if w.Title == "" || len(w.Title) > TitleMaxLen {
		return ErrInvalidTitle
	}
	if len(w.Description) > DescriptionMaxLen {
		return ErrInvalidDescription
	}
	return nil
}

// SetStatus sets the item status and stamps UpdatedAt.
// Setting the current status again is a valid write and still refreshes
// UpdatedAt. Returns ErrInvalidStatus for an unrecognized value.
func (w *WorkItem) SetStatus(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	w.Status = status
	w.touch(time.Now())
	return nil
}

// AssignTo sets or clears the assignee and stamps UpdatedAt.
// Resolution of memberID against live members is the backend's job; this
// method only records the reference.
func (w *WorkItem) AssignTo(memberID *int64) {
	w.AssignedTo = memberID
	w.touch(time.Now())
}

// touch stamps UpdatedAt with the given time.
func (w *WorkItem) touch(now time.Time) {
	w.UpdatedAt = &now
}

// Clone returns an independent copy of the item. Pointer fields are
// duplicated so callers never share memory with the store.
func (w *WorkItem) Clone() *WorkItem {
	c := *w
	if w.AssignedTo != nil {
		id := *w.AssignedTo
		c.AssignedTo = &id
	}
	if w.UpdatedAt != nil {
		at := *w.UpdatedAt
		c.UpdatedAt = &at
	}
	return &c
}
