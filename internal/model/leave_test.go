package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeaveStatus_Transitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransition(StatusApproved))
	assert.True(t, StatusPending.CanTransition(StatusRejected))

	assert.False(t, StatusApproved.CanTransition(StatusRejected))
	assert.False(t, StatusApproved.CanTransition(StatusPending))
	assert.False(t, StatusRejected.CanTransition(StatusApproved))
	assert.False(t, StatusPending.CanTransition(StatusPending))
}

func TestLeaveStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusApproved.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, LeaveStatus("Pending ").Valid())
	assert.False(t, LeaveStatus("").Valid())
}

func TestDocDeadline(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := &LeaveRequest{CreatedAt: created}
	assert.Equal(t, "2024-01-04", l.DocDeadline().Format("2006-01-02"))

	// No creation timestamp means no deadline
	assert.True(t, (&LeaveRequest{}).DocDeadline().IsZero())
}

func TestDurationDays_Inclusive(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	l := &LeaveRequest{StartDate: day(10), EndDate: day(12)}
	assert.Equal(t, 3, l.DurationDays())

	single := &LeaveRequest{StartDate: day(10), EndDate: day(10)}
	assert.Equal(t, 1, single.DurationDays())
}
