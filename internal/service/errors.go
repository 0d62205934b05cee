package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to
// HTTP status codes; anything else is a 500.
var (
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("operation not permitted for this caller")
	ErrConflict           = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTransition  = errors.New("leave status transition not allowed")
	ErrDateOrder          = errors.New("start_date must not be after end_date")
	ErrBalanceExceeded    = errors.New("insufficient leave balance")
)
