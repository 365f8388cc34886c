package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDelivery(t *testing.T) {
	// friday
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		day   string
		clock string
		want  time.Time
	}{
		{"later today", "friday", "12:30", time.Date(2026, 10, 16, 12, 30, 0, 0, time.UTC)},
		{"earlier today", "friday", "09:00", time.Date(2026, 10, 23, 9, 0, 0, 0, time.UTC)},
		{"right now", "friday", "10:00", time.Date(2026, 10, 23, 10, 0, 0, 0, time.UTC)},
		{"tomorrow", "saturday", "08:15", time.Date(2026, 10, 17, 8, 15, 0, 0, time.UTC)},
		{"earlier in the week", "Monday", "18:00", time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextDelivery(tt.day, tt.clock, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextDeliveryInvalid(t *testing.T) {
	now := time.Now()

	_, err := NextDelivery("someday", "12:00", now)
	assert.Error(t, err)

	_, err = NextDelivery("monday", "25:00", now)
	assert.Error(t, err)
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "friday", DayName(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "sunday", DayName(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)))
	assert.Len(t, DaysOfWeek, 7)
	assert.Equal(t, "monday", DaysOfWeek[0])
}

func TestIsValidDay(t *testing.T) {
	assert.True(t, IsValidDay("monday"))
	assert.True(t, IsValidDay("Sunday"))
	assert.False(t, IsValidDay("mon"))
	assert.False(t, IsValidDay(""))
}

func TestHasRole(t *testing.T) {
	assert.True(t, HasRole([]string{"user", "COOK"}, RoleCook))
	assert.False(t, HasRole([]string{"user"}, RoleCook))
	assert.False(t, HasRole(nil, RoleUser))
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("subadmin").IsValid())
}
