package dto

import "github.com/shopspring/decimal"

type UpsertBalanceRequest struct {
	UserID    string          `json:"user_id"    validate:"required,uuid4"`
	Year      int             `json:"year"       validate:"required,min=2000,max=2100"`
	LeaveType string          `json:"leave_type" validate:"required,max=100"`
	Total     decimal.Decimal `json:"total"      validate:"required"`
}

type BalanceResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Year      int             `json:"year"`
	LeaveType string          `json:"leave_type"`
	Total     decimal.Decimal `json:"total"`
	Used      decimal.Decimal `json:"used"`
	Remaining decimal.Decimal `json:"remaining"`
}
