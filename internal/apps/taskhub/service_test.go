package taskhub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionStatus_CompletionStampsTime(t *testing.T) {
	now := time.Now()
	task := &Task{Status: StatusInProgress}

	transitionStatus(task, StatusCompleted, now)

	assert.Equal(t, StatusCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)
}

func TestTransitionStatus_ReopeningClearsTime(t *testing.T) {
	done := time.Now().Add(-time.Hour)
	task := &Task{Status: StatusCompleted, CompletedAt: &done}

	transitionStatus(task, StatusInProgress, time.Now())

	assert.Equal(t, StatusInProgress, task.Status)
	assert.Nil(t, task.CompletedAt)
}

func TestTransitionStatus_RecompletingKeepsOriginalStamp(t *testing.T) {
	first := time.Now().Add(-2 * time.Hour)
	task := &Task{Status: StatusCompleted, CompletedAt: &first}

	transitionStatus(task, StatusCompleted, time.Now())

	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, first, *task.CompletedAt)
}

func TestTransitionStatus_NonTerminalMove(t *testing.T) {
	task := &Task{Status: StatusTodo}

	transitionStatus(task, StatusInReview, time.Now())

	assert.Equal(t, StatusInReview, task.Status)
	assert.Nil(t, task.CompletedAt)
}

func TestTaskStatusValid(t *testing.T) {
	for _, s := range []TaskStatus{StatusTodo, StatusInProgress, StatusInReview, StatusCompleted, StatusCancelled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, TaskStatus("archived").Valid())
	assert.False(t, TaskStatus("").Valid())
}

func TestTaskPriorityValid(t *testing.T) {
	for _, p := range []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		assert.True(t, p.Valid(), string(p))
	}
	assert.False(t, TaskPriority("critical").Valid())
}
