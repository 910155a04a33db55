package appointment

import (
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to next. It returns false when ap already had that
// status, in which case nothing must be persisted.
func Transition(ap *models.Appointment, next Status) (bool, error) {
	current := Status(ap.Status)
	if err := CanTransition(current, next); err != nil {
		return false, err
	}
	if current == next {
		return false, nil
	}

	ap.Status = string(next)
	return true, nil
}

// CountsAsVisit is true when moving into next records a client visit.
func CountsAsVisit(next Status) bool {
	return next == StatusCompleted
}
