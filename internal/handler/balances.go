package handler

import (
	"net/http"

	"github.com/caaaae/E-Leave/internal/apierror"
	"github.com/caaaae/E-Leave/internal/dto"
	"github.com/caaaae/E-Leave/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BalancesHandler struct{ svc service.BalanceService }

func NewBalancesHandler(svc service.BalanceService) *BalancesHandler {
	return &BalancesHandler{svc: svc}
}

// Upsert sets a user's allotted leave days for a (year, leave_type) pair.
func (h *BalancesHandler) Upsert(c *gin.Context) {
	var req dto.UpsertBalanceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Upsert(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListByUser returns all balances recorded for a user.
func (h *BalancesHandler) ListByUser(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid user_id"))
		return
	}

	resp, err := h.svc.ListByUser(c.Request.Context(), uid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
