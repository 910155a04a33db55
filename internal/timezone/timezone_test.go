package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	start, end, err := DayBounds("2025-03-10", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 10, 23, 59, 59, 999000000, time.UTC), end)

	_, _, err = DayBounds("10/03/2025", time.UTC)
	assert.Error(t, err)
}

func TestLocationFallback(t *testing.T) {
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))
	assert.NotNil(t, Location("Mars/Olympus"))
	assert.Equal(t, "UTC", Location("UTC").String())
}
