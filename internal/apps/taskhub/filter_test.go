package taskhub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderClause_DefaultsToNewestFirst(t *testing.T) {
	assert.Equal(t, "created_at DESC", TaskFilter{}.OrderClause())
}

func TestOrderClause_WhitelistsSortColumn(t *testing.T) {
	f := TaskFilter{SortBy: "due_date", SortOrder: "asc"}
	assert.Equal(t, "due_date ASC", f.OrderClause())

	// Unknown columns fall back instead of reaching the query
	f = TaskFilter{SortBy: "password; DROP TABLE tasks", SortOrder: "asc"}
	assert.Equal(t, "created_at ASC", f.OrderClause())
}

func TestOrderClause_OnlyAscIsHonored(t *testing.T) {
	f := TaskFilter{SortBy: "title", SortOrder: "ASC"}
	assert.Equal(t, "title DESC", f.OrderClause())
}

func TestStartOfWeek_MondayStart(t *testing.T) {
	// Wednesday 2026-01-07
	wed := time.Date(2026, 1, 7, 15, 30, 0, 0, time.UTC)
	monday := startOfWeek(wed)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), monday)
	assert.Equal(t, time.Monday, monday.Weekday())
}

func TestStartOfWeek_SundayBelongsToPreviousMonday(t *testing.T) {
	// Sunday 2026-01-11 is still part of the week that started Monday 01-05
	sun := time.Date(2026, 1, 11, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), startOfWeek(sun))
}

func TestDueBucketRange_Today(t *testing.T) {
	now := time.Date(2026, 3, 15, 17, 45, 0, 0, time.UTC)
	start, end, ok := dueBucketRange(BucketToday, now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), end)
}

func TestDueBucketRange_ThisWeek(t *testing.T) {
	// Sunday: the week range must still cover the whole current week
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	start, end, ok := dueBucketRange(BucketThisWeek, now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), end)
	assert.True(t, now.After(start) && now.Before(end))
}

func TestDueBucketRange_ThisMonth(t *testing.T) {
	now := time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)
	start, end, ok := dueBucketRange(BucketThisMonth, now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestDueBucketRange_UnknownBucket(t *testing.T) {
	_, _, ok := dueBucketRange("someday", time.Now())
	assert.False(t, ok)
	_, _, ok = dueBucketRange(BucketOverdue, time.Now())
	assert.False(t, ok)
}
