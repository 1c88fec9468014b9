package scheduling

// Status is an appointment's lifecycle state. The machine is deliberately
// linear: no re-approval and no rescheduling, so a slot is freed the instant
// the status leaves {pending, approved}.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// LiveStatuses are the statuses that hold a slot.
var LiveStatuses = []Status{StatusPending, StatusApproved}

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// CanTransition reports whether s -> to is a legal transition.
// pending -> approved/rejected/cancelled; approved -> cancelled.
func (s Status) CanTransition(to Status) bool {
	switch to {
	case StatusApproved, StatusRejected:
		return s == StatusPending
	case StatusCancelled:
		return s == StatusPending || s == StatusApproved
	default:
		return false
	}
}
