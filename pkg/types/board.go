package types

import "errors"

// Board is the backend-agnostic boundary of the work-item tracker.
//
// Mutations that target an entity by id report a missing target with a
// false return and a nil error; callers treat that as "nothing to do".
// Validation failures surface as sentinel errors from this package and
// never partially apply. All implementations must be safe for concurrent
// use: mutations are mutually exclusive, and readers never observe a
// half-applied mutation.
type Board interface {
	// Open initializes the backend described by config.
	// Returns ErrAlreadyOpen if called while already open.
	Open(config Config) error

	// Close releases backend resources. Idempotent: repeated calls succeed.
	// After Close, all other operations return ErrBoardClosed.
	Close() error

	// CreateItem creates a work item with status new and the next item id.
	// UpdatedAt starts unset. A non-nil assignee must resolve to an
	// existing member; otherwise ErrMemberNotFound is returned.
	CreateItem(title, description string, assignee *int64) (*WorkItem, error)

	// CreateMember creates a member with the next member id.
	CreateMember(name, email string) (*Member, error)

	// DeleteItem removes the item if present and reports whether it existed.
	DeleteItem(id int64) (bool, error)

	// DeleteMember removes the member if present and, in the same atomic
	// step, clears AssignedTo and stamps UpdatedAt on every item that
	// referenced it. Reports whether the member existed.
	DeleteMember(id int64) (bool, error)

	// SetStatus sets the item's status and stamps UpdatedAt, even when the
	// new status equals the current one. Returns false if the item does
	// not exist and ErrInvalidStatus for an unrecognized status value.
	SetStatus(id int64, status Status) (bool, error)

	// Assign sets (non-nil) or clears (nil) the item's assignee and stamps
	// UpdatedAt. Returns false if the item does not exist. A non-nil
	// memberID that does not resolve to an existing member is rejected
	// with ErrMemberNotFound.
	Assign(itemID int64, memberID *int64) (bool, error)

	// Item returns a copy of the item, or nil if it does not exist.
	Item(id int64) (*WorkItem, error)

	// Items returns copies of all items, created-at descending.
	Items() ([]*WorkItem, error)

	// ItemsByStatus returns copies of all items with the given status,
	// created-at descending (ids break ties, newest first). The slice is
	// freshly computed on every call.
	ItemsByStatus(status Status) ([]*WorkItem, error)

	// Members returns copies of all members, oldest first.
	Members() ([]*Member, error)

	// MemberByID resolves a member reference. Returns nil when id is nil
	// or does not resolve.
	MemberByID(id *int64) (*Member, error)

	// WorkloadCount returns the number of items currently assigned to the
	// member, computed live.
	WorkloadCount(memberID int64) (int, error)

	// RecentEvents returns up to limit journal entries, newest first.
	// limit <= 0 means all retained entries.
	RecentEvents(limit int) ([]*Event, error)
}

// Board lifecycle errors.
var (
	ErrBoardClosed = errors.New("board is closed")
	ErrAlreadyOpen = errors.New("board is already open")
)

// Validation errors. These surface from CreateItem, CreateMember, SetStatus,
// and Assign and never leave the store partially mutated.
var (
	ErrInvalidTitle       = errors.New("invalid title")
	ErrInvalidDescription = errors.New("invalid description")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrMemberNotFound     = errors.New("member does not exist")
)
