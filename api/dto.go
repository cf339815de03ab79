/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupled from the domain types.
  Balances travel as decimal strings so clients never see float noise and
  nothing is coerced on the way out.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.
  The credential secret never appears in any response type.
*/
package api

import (
	"github.com/warden/leave-engine/leave"
)

// =============================================================================
// EMPLOYEE
// =============================================================================

type EmployeeDTO struct {
	Name         string `json:"name"`
	Contract     string `json:"contract"`
	LeaveBalance string `json:"leave_balance"`
	LieuBalance  string `json:"lieu_balance"`
	FirstLogin   bool   `json:"first_login"`
	Exempt       bool   `json:"exempt"`
}

func employeeDTO(emp leave.Employee) EmployeeDTO {
	return EmployeeDTO{
		Name:         emp.Name,
		Contract:     string(emp.Contract),
		LeaveBalance: emp.LeaveBalance.String(),
		LieuBalance:  emp.LieuBalance.String(),
		FirstLogin:   emp.FirstLogin,
		Exempt:       emp.Exempt,
	}
}

type CreateEmployeeRequest struct {
	Name         string `json:"name"`
	Contract     string `json:"contract"`
	Secret       string `json:"secret"`
	Exempt       bool   `json:"exempt"`
	LeaveBalance string `json:"leave_balance,omitempty"`
	LieuBalance  string `json:"lieu_balance,omitempty"`
}

// UpdateEmployeeRequest carries partial edits; nil fields are left alone.
type UpdateEmployeeRequest struct {
	Contract     *string `json:"contract,omitempty"`
	Exempt       *bool   `json:"exempt,omitempty"`
	LeaveBalance *string `json:"leave_balance,omitempty"`
	LieuBalance  *string `json:"lieu_balance,omitempty"`
	Secret       *string `json:"secret,omitempty"`
	FirstLogin   *bool   `json:"first_login,omitempty"`
}

// =============================================================================
// AUTH
// =============================================================================

type LoginRequest struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

type LoginResponse struct {
	Employee       EmployeeDTO `json:"employee"`
	IsAdmin        bool        `json:"is_admin"`
	FirstLogin     bool        `json:"first_login"`
	AccrualApplied bool        `json:"accrual_applied"`
	AccrualError   string      `json:"accrual_error,omitempty"`
}

type ChangeSecretRequest struct {
	Secret string `json:"secret"`
}

// =============================================================================
// ABSENCE REQUESTS
// =============================================================================

type SubmitRequestDTO struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD, inclusive
	Type      string `json:"type"`
}

type RequestDTO struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employee_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Type         string `json:"type"`
	Resource     string `json:"resource"`
	Value        string `json:"value"`
	Unit         string `json:"unit"`
}

func requestDTO(req leave.AbsenceRequest) RequestDTO {
	return RequestDTO{
		ID:           req.ID,
		EmployeeName: req.EmployeeName,
		StartDate:    req.Span.Start.String(),
		EndDate:      req.Span.End.String(),
		Type:         string(req.Type),
		Resource:     req.Resource,
		Value:        req.Value.String(),
		Unit:         req.Unit,
	}
}

// SubmitResponse reports the capacity decision. A rejection is a normal
// outcome: Accepted=false with a reason, not an HTTP error.
type SubmitResponse struct {
	Accepted   bool        `json:"accepted"`
	Reason     string      `json:"reason,omitempty"`
	BlockedDay string      `json:"blocked_day,omitempty"`
	Count      int         `json:"count,omitempty"`
	Request    *RequestDTO `json:"request,omitempty"`
}

// =============================================================================
// ADMIN
// =============================================================================

type StateDTO struct {
	Ceiling   int `json:"ceiling"`
	LastMonth int `json:"last_month"`
}

type UpdateCeilingRequest struct {
	Ceiling int `json:"ceiling"`
}
