package validity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfolio/backend/internal/models"
)

func TestDays(t *testing.T) {
	d, err := Days(10, models.UnitDay)
	require.NoError(t, err)
	assert.Equal(t, 10.0, d)

	d, err = Days(2, models.UnitMonth)
	require.NoError(t, err)
	assert.Equal(t, 60.0, d)

	d, err = Days(2, models.UnitYear)
	require.NoError(t, err)
	assert.Equal(t, 730.5, d)

	_, err = Days(1, models.ValidityUnit("WEEK"))
	assert.Error(t, err)
}

func TestComputeExpirationTwoMonths(t *testing.T) {
	expedition := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	exp, err := ComputeExpiration(expedition, 2, models.UnitMonth)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), exp)
}

func TestDaysToClampedAtZero(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	// one day in the past reports 0, not negative
	assert.Equal(t, 0, DaysTo(now.Add(-24*time.Hour), now))
	assert.Equal(t, 0, DaysTo(now, now))
	assert.Equal(t, 1, DaysTo(now.Add(12*time.Hour), now))
	assert.Equal(t, 30, DaysTo(now.Add(30*24*time.Hour), now))
}

func TestMessageBuckets(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	overdue := Message(now.Add(-5*24*time.Hour), "Contract", now)
	assert.Contains(t, overdue, "expired 5 days ago")

	near := Message(now.Add(3*24*time.Hour), "Contract", now)
	assert.True(t, strings.HasPrefix(near, "Warning:"), near)

	far := Message(now.Add(90*24*time.Hour), "Contract", now)
	assert.Contains(t, far, "expires in 90 days")
}
