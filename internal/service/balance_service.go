package service

import (
	"context"

	"github.com/caaaae/E-Leave/internal/dto"
	"github.com/caaaae/E-Leave/internal/model"
	"github.com/caaaae/E-Leave/internal/repository"

	"github.com/google/uuid"
)

type BalanceService interface {
	Upsert(ctx context.Context, req dto.UpsertBalanceRequest) (*dto.BalanceResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]dto.BalanceResponse, error)
}

type balanceService struct {
	repo  repository.BalanceRepository
	users repository.UserRepository
}

func NewBalanceService(repo repository.BalanceRepository, users repository.UserRepository) BalanceService {
	return &balanceService{repo: repo, users: users}
}

func (s *balanceService) Upsert(ctx context.Context, req dto.UpsertBalanceRequest) (*dto.BalanceResponse, error) {
	uid, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.users.FindByID(ctx, uid); err != nil {
		return nil, ErrNotFound
	}

	balance := &model.LeaveBalance{
		UserID:    uid,
		Year:      req.Year,
		LeaveType: req.LeaveType,
		Total:     req.Total,
	}
	if err := s.repo.Upsert(ctx, balance); err != nil {
		return nil, err
	}

	// Re-read so the response reflects the surviving row on conflict
	stored, err := s.repo.Find(ctx, uid, req.Year, req.LeaveType)
	if err != nil {
		return nil, err
	}
	resp := balanceResponse(stored)
	return &resp, nil
}

func (s *balanceService) ListByUser(ctx context.Context, userID uuid.UUID) ([]dto.BalanceResponse, error) {
	balances, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BalanceResponse, len(balances))
	for i := range balances {
		resp[i] = balanceResponse(&balances[i])
	}
	return resp, nil
}

func balanceResponse(b *model.LeaveBalance) dto.BalanceResponse {
	return dto.BalanceResponse{
		ID:        b.ID.String(),
		UserID:    b.UserID.String(),
		Year:      b.Year,
		LeaveType: b.LeaveType,
		Total:     b.Total,
		Used:      b.Used,
		Remaining: b.Remaining(),
	}
}
