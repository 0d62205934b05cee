package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Dates travel as "YYYY-MM-DD" strings; the service parses and validates them.

type CreateLeaveRequest struct {
	Department string `json:"department" validate:"required,max=100"`
	LeaveType  string `json:"leave_type" validate:"required,max=100"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date"   validate:"required,datetime=2006-01-02"`
	Reason     string `json:"reason"     validate:"required,max=255"`
}

// UpdateLeaveRequest carries a partial update; nil fields are left untouched.
// Status is deliberately absent — decisions go through the approve/reject
// endpoints.
type UpdateLeaveRequest struct {
	Department *string `json:"department" validate:"omitempty,max=100"`
	LeaveType  *string `json:"leave_type" validate:"omitempty,max=100"`
	StartDate  *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    *string `json:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Reason     *string `json:"reason"     validate:"omitempty,max=255"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeName    string  `json:"employee_name"`
	EmployeeID      string  `json:"employee_id"`
	Email           string  `json:"email"`
	PhoneNumber     string  `json:"phone_number"`
	Department      string  `json:"department"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Reason          string  `json:"reason"`
	SupportingDoc   *string `json:"supporting_doc"`
	LeaveStatus     string  `json:"leave_status"`
	DeadlineForDocs *string `json:"deadline_for_docs"`
	CreatedAt       string  `json:"created_at,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}
