package service

import (
	"context"
	"errors"
	"time"

	"github.com/caaaae/E-Leave/internal/dto"
	"github.com/caaaae/E-Leave/internal/model"
	"github.com/caaaae/E-Leave/internal/repository"
	"github.com/caaaae/E-Leave/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Caller identifies the authenticated identity invoking an operation.
type Caller struct {
	ID      uuid.UUID
	IsStaff bool
}

// EmailQueue enqueues outbound notification emails for async delivery.
type EmailQueue interface {
	EnqueueEmail(ctx context.Context, payload worker.EmailJobPayload) error
}

// DocumentRemover deletes a stored supporting document by key.
type DocumentRemover interface {
	Remove(key string) error
}

type LeaveService interface {
	Create(ctx context.Context, callerID uuid.UUID, req dto.CreateLeaveRequest) (*dto.LeaveResponse, error)
	ListOwn(ctx context.Context, callerID uuid.UUID) ([]dto.LeaveResponse, error)
	ListAll(ctx context.Context) ([]dto.LeaveResponse, error)
	Update(ctx context.Context, caller Caller, id uuid.UUID, req dto.UpdateLeaveRequest) (*dto.LeaveResponse, error)
	Delete(ctx context.Context, caller Caller, id uuid.UUID) error
	AttachDocument(ctx context.Context, caller Caller, id uuid.UUID, key string) (*dto.LeaveResponse, error)
	Decide(ctx context.Context, caller Caller, id uuid.UUID, approve bool) (*dto.LeaveResponse, error)
}

type leaveService struct {
	repo     repository.LeaveRepository
	users    repository.UserRepository
	balances repository.BalanceRepository
	queue    EmailQueue
	docs     DocumentRemover
}

func NewLeaveService(
	repo repository.LeaveRepository,
	users repository.UserRepository,
	balances repository.BalanceRepository,
	queue EmailQueue,
	docs DocumentRemover,
) LeaveService {
	return &leaveService{repo: repo, users: users, balances: balances, queue: queue, docs: docs}
}

// ── Create ────────────────────────────────────────────────────────────────────

func (s *leaveService) Create(ctx context.Context, callerID uuid.UUID, req dto.CreateLeaveRequest) (*dto.LeaveResponse, error) {
	owner, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, ErrNotFound
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrDateOrder
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, ErrDateOrder
	}
	if start.After(end) {
		return nil, ErrDateOrder
	}

	// Identity fields are snapshots from the owning User; responses re-read
	// them from the User row, so drift never reaches clients.
	leave := &model.LeaveRequest{
		UserID:       owner.ID,
		EmployeeName: owner.FullName(),
		EmployeeID:   owner.EmployeeID,
		Email:        owner.Email,
		PhoneNumber:  owner.PhoneNumber,
		Department:   req.Department,
		LeaveType:    req.LeaveType,
		StartDate:    start,
		EndDate:      end,
		Reason:       req.Reason,
		Status:       model.StatusPending,
	}
	if err := s.repo.Create(ctx, leave); err != nil {
		return nil, err
	}
	leave.User = *owner

	resp := leaveResponse(leave)
	return &resp, nil
}

// ── List ──────────────────────────────────────────────────────────────────────

func (s *leaveService) ListOwn(ctx context.Context, callerID uuid.UUID) ([]dto.LeaveResponse, error) {
	leaves, err := s.repo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return leaveResponses(leaves), nil
}

func (s *leaveService) ListAll(ctx context.Context) ([]dto.LeaveResponse, error) {
	leaves, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return leaveResponses(leaves), nil
}

// ── Update ────────────────────────────────────────────────────────────────────

func (s *leaveService) Update(ctx context.Context, caller Caller, id uuid.UUID, req dto.UpdateLeaveRequest) (*dto.LeaveResponse, error) {
	leave, err := s.findAuthorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Department != nil {
		leave.Department = *req.Department
	}
	if req.LeaveType != nil {
		leave.LeaveType = *req.LeaveType
	}
	if req.StartDate != nil {
		start, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrDateOrder
		}
		leave.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, ErrDateOrder
		}
		leave.EndDate = end
	}
	if req.Reason != nil {
		leave.Reason = *req.Reason
	}

	// Invariant re-checked against the merged record
	if leave.StartDate.After(leave.EndDate) {
		return nil, ErrDateOrder
	}

	if err := s.repo.Update(ctx, leave); err != nil {
		return nil, err
	}
	resp := leaveResponse(leave)
	return &resp, nil
}

// ── Delete ────────────────────────────────────────────────────────────────────

func (s *leaveService) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	leave, err := s.findAuthorized(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	// The stored supporting document goes with the record. Best effort —
	// the row is already gone.
	if leave.DocumentKey != nil && s.docs != nil {
		if err := s.docs.Remove(*leave.DocumentKey); err != nil {
			log.Warn().Err(err).Str("key", *leave.DocumentKey).Msg("failed to remove supporting document")
		}
	}
	return nil
}

// ── AttachDocument ────────────────────────────────────────────────────────────

func (s *leaveService) AttachDocument(ctx context.Context, caller Caller, id uuid.UUID, key string) (*dto.LeaveResponse, error) {
	leave, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	// Only the owner supplies documentation for their own request
	if leave.UserID != caller.ID {
		return nil, ErrForbidden
	}

	old := leave.DocumentKey
	leave.DocumentKey = &key
	if err := s.repo.Update(ctx, leave); err != nil {
		return nil, err
	}
	if old != nil && s.docs != nil {
		if err := s.docs.Remove(*old); err != nil {
			log.Warn().Err(err).Str("key", *old).Msg("failed to remove replaced document")
		}
	}
	resp := leaveResponse(leave)
	return &resp, nil
}

// ── Decide ────────────────────────────────────────────────────────────────────

func (s *leaveService) Decide(ctx context.Context, caller Caller, id uuid.UUID, approve bool) (*dto.LeaveResponse, error) {
	if !caller.IsStaff {
		return nil, ErrForbidden
	}

	leave, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	next := model.StatusRejected
	if approve {
		next = model.StatusApproved
	}
	if !leave.Status.CanTransition(next) {
		return nil, ErrInvalidTransition
	}

	var debited *model.LeaveBalance
	var days decimal.Decimal
	if approve {
		var err error
		debited, days, err = s.debitBalance(ctx, leave)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	deciderID := caller.ID
	leave.Status = next
	leave.DecidedBy = &deciderID
	leave.DecidedAt = &now
	if err := s.repo.Update(ctx, leave); err != nil {
		// The debit must not outlive a failed status write — the request
		// is still pending and a retried approve would debit again.
		s.creditBalance(ctx, debited, days)
		return nil, err
	}

	s.notifyOwner(ctx, leave)

	resp := leaveResponse(leave)
	return &resp, nil
}

// debitBalance consumes the request's day count from the owner's balance for
// the start year. No balance row means no enforced limit. Returns the row it
// debited so the caller can reverse the debit if the decision fails to commit.
func (s *leaveService) debitBalance(ctx context.Context, leave *model.LeaveRequest) (*model.LeaveBalance, decimal.Decimal, error) {
	days := decimal.NewFromInt(int64(leave.DurationDays()))
	if s.balances == nil {
		return nil, days, nil
	}
	balance, err := s.balances.Find(ctx, leave.UserID, leave.StartDate.Year(), leave.LeaveType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, days, nil
		}
		return nil, days, err
	}

	if balance.Remaining().LessThan(days) {
		return nil, days, ErrBalanceExceeded
	}
	balance.Used = balance.Used.Add(days)
	if err := s.balances.Update(ctx, balance); err != nil {
		return nil, days, err
	}
	return balance, days, nil
}

// creditBalance reverses a debit after the status write failed.
func (s *leaveService) creditBalance(ctx context.Context, balance *model.LeaveBalance, days decimal.Decimal) {
	if balance == nil {
		return
	}
	balance.Used = balance.Used.Sub(days)
	if err := s.balances.Update(ctx, balance); err != nil {
		log.Error().Err(err).Str("balance_id", balance.ID.String()).Msg("failed to restore balance after status write failure")
	}
}

func (s *leaveService) notifyOwner(ctx context.Context, leave *model.LeaveRequest) {
	if s.queue == nil || leave.Email == "" {
		return
	}
	payload := worker.EmailJobPayload{
		ToEmail: leave.Email,
		Subject: "Leave request " + string(leave.Status),
		Body: "Hello " + leave.EmployeeName + ",\n\nYour " + leave.LeaveType +
			" leave request from " + leave.StartDate.Format(dateLayout) +
			" to " + leave.EndDate.Format(dateLayout) +
			" has been " + string(leave.Status) + ".\n",
	}
	if err := s.queue.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Str("leave_id", leave.ID.String()).Msg("failed to enqueue decision email")
	}
}

// findAuthorized loads a record and enforces the mutation rule: owner or
// staff only. Order matters — unknown ids are 404 for everyone.
func (s *leaveService) findAuthorized(ctx context.Context, caller Caller, id uuid.UUID) (*model.LeaveRequest, error) {
	leave, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if leave.UserID != caller.ID && !caller.IsStaff {
		return nil, ErrForbidden
	}
	return leave, nil
}

// ── Response assembly ─────────────────────────────────────────────────────────

func leaveResponse(l *model.LeaveRequest) dto.LeaveResponse {
	resp := dto.LeaveResponse{
		ID:            l.ID.String(),
		EmployeeName:  l.EmployeeName,
		EmployeeID:    l.EmployeeID,
		Email:         l.Email,
		PhoneNumber:   l.PhoneNumber,
		Department:    l.Department,
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate.Format(dateLayout),
		EndDate:       l.EndDate.Format(dateLayout),
		Reason:        l.Reason,
		SupportingDoc: l.DocumentKey,
		LeaveStatus:   string(l.Status),
	}

	// Prefer the live User row over the creation-time snapshot
	if l.User.ID != uuid.Nil {
		resp.EmployeeName = l.User.FullName()
		resp.EmployeeID = l.User.EmployeeID
		resp.Email = l.User.Email
		resp.PhoneNumber = l.User.PhoneNumber
	}

	if deadline := l.DocDeadline(); !deadline.IsZero() {
		d := deadline.Format(dateLayout)
		resp.DeadlineForDocs = &d
	}
	if !l.CreatedAt.IsZero() {
		resp.CreatedAt = l.CreatedAt.Format(dateLayout)
	}
	if !l.UpdatedAt.IsZero() {
		resp.UpdatedAt = l.UpdatedAt.Format(dateLayout)
	}
	return resp
}

func leaveResponses(leaves []model.LeaveRequest) []dto.LeaveResponse {
	resp := make([]dto.LeaveResponse, len(leaves))
	for i := range leaves {
		resp[i] = leaveResponse(&leaves[i])
	}
	return resp
}
