package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tripdash/internal/trip"
)

func TestTruncateHelper(t *testing.T) {
	truncate := funcMap["truncate"].(func(string, int) string)

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "12345…", truncate("1234567890", 5))
	assert.Equal(t, "a b", truncate(" a\nb ", 10))
}

func TestFmtTimeHelper(t *testing.T) {
	fmtTime := funcMap["fmtTime"].(func(time.Time) string)

	assert.Equal(t, "-", fmtTime(time.Time{}))
	assert.Equal(t, "2023-11-14 22:13:20",
		fmtTime(time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)))
}

func TestCategoryClassHelper(t *testing.T) {
	categoryClass := funcMap["categoryClass"].(func(string) string)

	assert.Equal(t, "row-driver", categoryClass(trip.CategoryDriver))
	assert.Equal(t, "row-trip", categoryClass(trip.CategoryTrip))
}
