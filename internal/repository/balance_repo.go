package repository

import (
	"context"

	"github.com/caaaae/E-Leave/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BalanceRepository interface {
	Upsert(ctx context.Context, b *model.LeaveBalance) error
	Find(ctx context.Context, userID uuid.UUID, year int, leaveType string) (*model.LeaveBalance, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.LeaveBalance, error)
	Update(ctx context.Context, b *model.LeaveBalance) error
}

type balanceRepo struct{ db *gorm.DB }

func NewBalanceRepository(db *gorm.DB) BalanceRepository { return &balanceRepo{db: db} }

func (r *balanceRepo) Upsert(ctx context.Context, b *model.LeaveBalance) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "leave_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"total", "updated_at"}),
	}).Create(b).Error
}

func (r *balanceRepo) Find(ctx context.Context, userID uuid.UUID, year int, leaveType string) (*model.LeaveBalance, error) {
	var b model.LeaveBalance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND leave_type = ?", userID, year, leaveType).
		First(&b).Error
	return &b, err
}

func (r *balanceRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.LeaveBalance, error) {
	var balances []model.LeaveBalance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("year DESC, leave_type ASC").
		Find(&balances).Error
	return balances, err
}

func (r *balanceRepo) Update(ctx context.Context, b *model.LeaveBalance) error {
	return r.db.WithContext(ctx).Save(b).Error
}
