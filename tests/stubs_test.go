package tests

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/caaaae/E-Leave/internal/model"
	"github.com/caaaae/E-Leave/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory Repository Stubs ────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if (u.Username == username || u.Email == username) && u.Active {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

type stubLeaveRepo struct {
	leaves map[uuid.UUID]*model.LeaveRequest
}

func newStubLeaveRepo() *stubLeaveRepo {
	return &stubLeaveRepo{leaves: make(map[uuid.UUID]*model.LeaveRequest)}
}

func (r *stubLeaveRepo) Create(_ context.Context, l *model.LeaveRequest) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	l.UpdatedAt = time.Now()
	r.leaves[l.ID] = l
	return nil
}

func (r *stubLeaveRepo) FindByID(_ context.Context, id uuid.UUID) (*model.LeaveRequest, error) {
	l, ok := r.leaves[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *stubLeaveRepo) ListByOwner(_ context.Context, userID uuid.UUID) ([]model.LeaveRequest, error) {
	var out []model.LeaveRequest
	for _, l := range r.leaves {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *stubLeaveRepo) ListAll(_ context.Context) ([]model.LeaveRequest, error) {
	out := make([]model.LeaveRequest, 0, len(r.leaves))
	for _, l := range r.leaves {
		out = append(out, *l)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *stubLeaveRepo) Update(_ context.Context, l *model.LeaveRequest) error {
	if _, ok := r.leaves[l.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	l.UpdatedAt = time.Now()
	cp := *l
	r.leaves[l.ID] = &cp
	return nil
}

func (r *stubLeaveRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.leaves[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.leaves, id)
	return nil
}

// failingLeaveRepo wraps a stubLeaveRepo and fails every Update, simulating
// a store that rejects the status write.
type failingLeaveRepo struct {
	*stubLeaveRepo
	updateErr error
}

func (r *failingLeaveRepo) Update(ctx context.Context, l *model.LeaveRequest) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	return r.stubLeaveRepo.Update(ctx, l)
}

func sortNewestFirst(leaves []model.LeaveRequest) {
	sort.Slice(leaves, func(i, j int) bool {
		return leaves[i].CreatedAt.After(leaves[j].CreatedAt)
	})
}

type stubBalanceRepo struct {
	balances map[string]*model.LeaveBalance
}

func newStubBalanceRepo() *stubBalanceRepo {
	return &stubBalanceRepo{balances: make(map[string]*model.LeaveBalance)}
}

func balanceKey(userID uuid.UUID, year int, leaveType string) string {
	return fmt.Sprintf("%s|%d|%s", userID, year, leaveType)
}

func (r *stubBalanceRepo) Upsert(_ context.Context, b *model.LeaveBalance) error {
	key := balanceKey(b.UserID, b.Year, b.LeaveType)
	if existing, ok := r.balances[key]; ok {
		existing.Total = b.Total
		*b = *existing
		return nil
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.balances[key] = b
	return nil
}

func (r *stubBalanceRepo) Find(_ context.Context, userID uuid.UUID, year int, leaveType string) (*model.LeaveBalance, error) {
	b, ok := r.balances[balanceKey(userID, year, leaveType)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubBalanceRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.LeaveBalance, error) {
	var out []model.LeaveBalance
	for _, b := range r.balances {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBalanceRepo) Update(_ context.Context, b *model.LeaveBalance) error {
	r.balances[balanceKey(b.UserID, b.Year, b.LeaveType)] = b
	return nil
}

// ── Collaborator stubs ────────────────────────────────────────────────────────

type stubQueue struct {
	sent []worker.EmailJobPayload
}

func (q *stubQueue) EnqueueEmail(_ context.Context, payload worker.EmailJobPayload) error {
	q.sent = append(q.sent, payload)
	return nil
}

type stubDocRemover struct {
	removed []string
}

func (d *stubDocRemover) Remove(key string) error {
	d.removed = append(d.removed, key)
	return nil
}
