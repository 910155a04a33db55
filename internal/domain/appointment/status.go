package appointment

import "github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

// ===============================
// Validations
// ===============================

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", httperr.ErrValidation("status", "must be one of pending, confirmed, completed, cancelled")
	}
	return st, nil
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition reports whether current may move to next. Staying in the
// same status is always allowed.
func CanTransition(current, next Status) error {
	if current == next {
		return nil
	}
	for _, allowed := range transitions[current] {
		if allowed == next {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_transition")
}

func InitialStatus() Status {
	return StatusPending
}
