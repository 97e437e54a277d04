package taskhub

import (
	"time"

	"github.com/google/uuid"
)

// TaskFilter collects the optional list predicates. Zero values mean "not set".
type TaskFilter struct {
	Status     TaskStatus
	Priority   TaskPriority
	AssigneeID *uuid.UUID
	ProjectID  *uuid.UUID
	ParentID   *uuid.UUID
	Search     string
	DueBucket  string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

const (
	BucketOverdue   = "overdue"
	BucketToday     = "today"
	BucketThisWeek  = "this_week"
	BucketThisMonth = "this_month"
)

// sortColumns whitelists the fields a client may sort on.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"due_date":   "due_date",
	"priority":   "priority",
	"status":     "status",
	"title":      "title",
}

// OrderClause returns a safe ORDER BY clause, defaulting to newest first.
func (f TaskFilter) OrderClause() string {
	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if f.SortOrder == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}

// startOfDay returns local midnight for t.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns local midnight of the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started 6 days ago
	}
	return day.AddDate(0, 0, -(weekday - 1))
}

// startOfMonth returns local midnight of the first of t's month.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// dueBucketRange resolves a bucket name into a half-open [start, end) range
// over due_date. The overdue bucket is special-cased by the caller: it has no
// end and additionally excludes terminal statuses.
func dueBucketRange(bucket string, now time.Time) (start, end time.Time, ok bool) {
	switch bucket {
	case BucketToday:
		start = startOfDay(now)
		return start, start.AddDate(0, 0, 1), true
	case BucketThisWeek:
		start = startOfWeek(now)
		return start, start.AddDate(0, 0, 7), true
	case BucketThisMonth:
		start = startOfMonth(now)
		return start, start.AddDate(0, 1, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// terminalStatuses are excluded from the overdue bucket: a finished or
// abandoned task is never overdue.
var terminalStatuses = []TaskStatus{StatusCompleted, StatusCancelled}
