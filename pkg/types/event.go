package types

import "time"

// Event kinds recorded in the activity journal.
const (
	EventItemCreated   = "item.created"
	EventItemDeleted   = "item.deleted"
	EventStatusChanged = "item.status_changed"
	EventItemAssigned  = "item.assigned"
	EventMemberCreated = "member.created"
	EventMemberDeleted = "member.deleted"
)

// Event is one entry in the board's activity journal. Every successful
// mutation appends exactly one event. The journal is bounded and volatile;
// it exists for the activity feed, not for durability.
type Event struct {
	EventID  string    `json:"event_id"` // UUID v7, generated on append.
	Kind     string    `json:"kind"`
	ItemID   *int64    `json:"item_id,omitempty"`
	MemberID *int64    `json:"member_id,omitempty"`
	Detail   string    `json:"detail,omitempty"`
	At       time.Time `json:"at"`
}

// Clone returns an independent copy of the event.
func (e *Event) Clone() *Event {
	c := *e
	if e.ItemID != nil {
		id := *e.ItemID
		c.ItemID = &id
	}
	if e.MemberID != nil {
		id := *e.MemberID
		c.MemberID = &id
	}
	return &c
}
