package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/caaaae/E-Leave/internal/dto"
	"github.com/caaaae/E-Leave/internal/handler"
	"github.com/caaaae/E-Leave/internal/middleware"
	"github.com/caaaae/E-Leave/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newBalanceRouter(users *stubUserRepo, balances *stubBalanceRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	balancesH := handler.NewBalancesHandler(service.NewBalanceService(balances, users))
	staff := r.Group("/api", middleware.JWTAuth(testSecret), middleware.RequireStaff())
	staff.PUT("/balances/", balancesH.Upsert)
	staff.GET("/balances/:user_id/", balancesH.ListByUser)
	return r
}

func TestUpsertBalance_CreatesAndUpdates(t *testing.T) {
	users := newStubUserRepo()
	balances := newStubBalanceRepo()
	alice := seedUser(t, users, "alice", "s3cret-pass", false)
	root := seedUser(t, users, "root", "s3cret-pass", true)
	r := newBalanceRouter(users, balances)

	w := doJSON(t, r, http.MethodPut, "/api/balances/", dto.UpsertBalanceRequest{
		UserID: alice.ID.String(), Year: 2024, LeaveType: "annual",
		Total: decimal.NewFromInt(20),
	}, signToken(t, root, time.Hour))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.BalanceResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(20)))
	assert.True(t, resp.Remaining.Equal(decimal.NewFromInt(20)))

	// Second upsert for the same (user, year, type) adjusts the total in place
	w = doJSON(t, r, http.MethodPut, "/api/balances/", dto.UpsertBalanceRequest{
		UserID: alice.ID.String(), Year: 2024, LeaveType: "annual",
		Total: decimal.NewFromInt(25),
	}, signToken(t, root, time.Hour))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, balances.balances, 1)
}

func TestUpsertBalance_UnknownUser(t *testing.T) {
	users := newStubUserRepo()
	balances := newStubBalanceRepo()
	root := seedUser(t, users, "root", "s3cret-pass", true)
	r := newBalanceRouter(users, balances)

	w := doJSON(t, r, http.MethodPut, "/api/balances/", dto.UpsertBalanceRequest{
		UserID: uuid.NewString(), Year: 2024, LeaveType: "annual",
		Total: decimal.NewFromInt(20),
	}, signToken(t, root, time.Hour))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBalances_StaffOnly(t *testing.T) {
	users := newStubUserRepo()
	balances := newStubBalanceRepo()
	alice := seedUser(t, users, "alice", "s3cret-pass", false)
	r := newBalanceRouter(users, balances)

	w := doJSON(t, r, http.MethodGet, "/api/balances/"+alice.ID.String()+"/", nil, signToken(t, alice, time.Hour))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListBalances(t *testing.T) {
	users := newStubUserRepo()
	balances := newStubBalanceRepo()
	alice := seedUser(t, users, "alice", "s3cret-pass", false)
	root := seedUser(t, users, "root", "s3cret-pass", true)
	r := newBalanceRouter(users, balances)

	w := doJSON(t, r, http.MethodPut, "/api/balances/", dto.UpsertBalanceRequest{
		UserID: alice.ID.String(), Year: 2024, LeaveType: "annual",
		Total: decimal.NewFromInt(20),
	}, signToken(t, root, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/balances/"+alice.ID.String()+"/", nil, signToken(t, root, time.Hour))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []dto.BalanceResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, alice.ID.String(), resp[0].UserID)
}
