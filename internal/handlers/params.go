package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/timezone"
)

// idParam reads the :id path parameter, answering 400 when it is not a
// positive integer.
func idParam(c *gin.Context) (uint, bool) {
	return uintValue(c, "id", c.Param("id"))
}

func uintValue(c *gin.Context, field, raw string) (uint, bool) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		httperr.InvalidRequest(c, httperr.ErrValidation(field, "must be a positive integer"))
		return 0, false
	}
	return uint(n), true
}

// timeBound parses an RFC 3339 instant or a YYYY-MM-DD day in loc. A bare day
// resolves to its first millisecond, or its last when endOfDay is set.
func timeBound(raw string, loc *time.Location, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}

	start, end, err := timezone.DayBounds(raw, loc)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		return &end, nil
	}
	return &start, nil
}
