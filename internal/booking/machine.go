package booking

// Booking lifecycle statuses. A booking starts pending and only ever moves along
// the transition table below; cancelled and completed are terminal.
const (
	StatusPending           = "pending"
	StatusConfirmed         = "confirmed"
	StatusCancelled         = "cancelled"
	StatusCompleted         = "completed"
	StatusReschedulePending = "reschedule_pending"
	StatusCounterPending    = "counter_pending"
)

// brokerStatusTargets are the statuses a broker may request directly. Confirming
// from counter_pending doubles as accepting the client's counter-proposal.
var brokerStatusTargets = map[string]bool{
	StatusConfirmed: true,
	StatusCancelled: true,
	StatusCompleted: true,
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted,
		StatusReschedulePending, StatusCounterPending:
		return true
	}
	return false
}

// IsActive reports whether the booking can still change state.
func IsActive(status string) bool {
	return ValidStatus(status) && status != StatusCancelled && status != StatusCompleted
}

// CanSetStatus reports whether a broker may move a booking from current to next
// via the status endpoint.
func CanSetStatus(current, next string) bool {
	return brokerStatusTargets[next] && IsActive(current)
}

// CanReschedule reports whether a broker may propose a new slot.
func CanReschedule(current string) bool {
	return IsActive(current)
}

// CanRespond reports whether the client may accept or counter. Only a pending
// broker proposal is answerable.
func CanRespond(current string) bool {
	return current == StatusReschedulePending
}
