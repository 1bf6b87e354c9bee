package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayStringNormalizesToUTC(t *testing.T) {
	// 23:30 on Aug 30 in UTC-5 is already Aug 31 in UTC.
	lima := time.FixedZone("UTC-5", -5*60*60)
	late := time.Date(2025, 8, 30, 23, 30, 0, 0, lima)
	assert.Equal(t, "2025-08-31", DayString(late))

	early := time.Date(2025, 8, 30, 10, 0, 0, 0, lima)
	assert.Equal(t, "2025-08-30", DayString(early))
}

func TestTodayStringIsWellFormed(t *testing.T) {
	today := TodayString()
	assert.Len(t, today, 10)
	_, err := time.Parse("2006-01-02", today)
	assert.NoError(t, err)
}
