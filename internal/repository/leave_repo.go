package repository

import (
	"context"

	"github.com/caaaae/E-Leave/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRepository interface {
	Create(ctx context.Context, l *model.LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.LeaveRequest, error)
	ListAll(ctx context.Context) ([]model.LeaveRequest, error)
	Update(ctx context.Context, l *model.LeaveRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type leaveRepo struct{ db *gorm.DB }

func NewLeaveRepository(db *gorm.DB) LeaveRepository { return &leaveRepo{db: db} }

func (r *leaveRepo) Create(ctx context.Context, l *model.LeaveRequest) error {
	// Omit the association — the owning User row is never written through here
	return r.db.WithContext(ctx).Omit("User").Create(l).Error
}

func (r *leaveRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error) {
	var l model.LeaveRequest
	err := r.db.WithContext(ctx).Preload("User").First(&l, id).Error
	return &l, err
}

func (r *leaveRepo) ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	err := r.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *leaveRepo) ListAll(ctx context.Context) ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	err := r.db.WithContext(ctx).Preload("User").
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *leaveRepo) Update(ctx context.Context, l *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("User").Save(l).Error
}

func (r *leaveRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.LeaveRequest{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
