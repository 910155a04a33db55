package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/testutil"
)

func TestDispatcherWritesOnClose(t *testing.T) {
	db := testutil.NewDB(t)
	d := NewDispatcher(New(db))

	id := uint(9)
	d.Dispatch(Event{
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &id,
		Metadata: map[string]string{"from": "pending", "to": "confirmed"},
	})
	d.Close()

	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "appointment_status_changed", logs[0].Action)
	assert.JSONEq(t, `{"from":"pending","to":"confirmed"}`, logs[0].Metadata)

	// after close events are ignored
	d.Dispatch(Event{Action: "late"})
	d.Close()
}

func TestNilDispatcher(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close()
	})
}
