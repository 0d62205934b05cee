package model

import (
	"time"

	"github.com/google/uuid"
)

// LeaveStatus is the lifecycle state of a leave request.
type LeaveStatus string

const (
	StatusPending  LeaveStatus = "pending"
	StatusApproved LeaveStatus = "approved"
	StatusRejected LeaveStatus = "rejected"
)

// allowedTransitions maps each status to the states it may move to.
// Only pending requests can be decided; decisions are final.
var allowedTransitions = map[LeaveStatus][]LeaveStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {},
	StatusRejected: {},
}

// Valid reports whether s is a known status value.
func (s LeaveStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether moving from s to next is permitted.
func (s LeaveStatus) CanTransition(next LeaveStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// DocDeadlineWindow is how long after creation supporting documentation
// may still be supplied.
const DocDeadlineWindow = 72 * time.Hour

// LeaveRequest is a single employee's time-off request.
// EmployeeName/EmployeeID/Email/PhoneNumber are display snapshots taken from
// the owning User at creation; responses re-read them from the User row so
// clients never see stale values.
type LeaveRequest struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	User         User      `gorm:"foreignKey:UserID"`
	EmployeeName string
	EmployeeID   string
	Email        string
	PhoneNumber  string
	Department   string
	LeaveType    string
	StartDate    time.Time `gorm:"type:date;not null"`
	EndDate      time.Time `gorm:"type:date;not null"`
	Reason       string    `gorm:"type:varchar(255)"`
	// DocumentKey is the blob-store key of the uploaded supporting document.
	DocumentKey *string
	Status      LeaveStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	DecidedBy   *uuid.UUID  `gorm:"type:uuid"`
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DocDeadline returns the date by which supporting documentation must be
// supplied. The zero time means the record has no creation timestamp yet
// and the deadline is undefined.
func (l *LeaveRequest) DocDeadline() time.Time {
	if l.CreatedAt.IsZero() {
		return time.Time{}
	}
	return l.CreatedAt.Add(DocDeadlineWindow)
}

// DurationDays returns the inclusive day count between start and end.
func (l *LeaveRequest) DurationDays() int {
	start := time.Date(l.StartDate.Year(), l.StartDate.Month(), l.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(l.EndDate.Year(), l.EndDate.Month(), l.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}
