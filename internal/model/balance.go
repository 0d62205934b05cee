package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveBalance tracks the allotted and consumed leave days for a user,
// per calendar year and leave type. A user with no balance row for a
// given (year, type) pair has no enforced limit.
type LeaveBalance struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_balance_user_year_type,unique"`
	Year      int             `gorm:"not null;index:idx_balance_user_year_type,unique"`
	LeaveType string          `gorm:"not null;index:idx_balance_user_year_type,unique"`
	Total     decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	Used      decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining returns the days still available.
func (b *LeaveBalance) Remaining() decimal.Decimal {
	return b.Total.Sub(b.Used)
}
