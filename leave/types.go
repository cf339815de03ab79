/*
Package leave implements the core of the leave-management engine.

PURPOSE:
  This package contains the domain types and the two decision procedures the
  rest of the system is built around:
  - Accrual: the monthly balance increment per contract class, applied at most
    once per calendar month (accrual.go)
  - Capacity: the daily headcount ceiling check that gates new absence
    requests (capacity.go)

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: a roster row with leave and time-off-in-lieu balances
  - Contract: the contract class that selects accrual rates (Guard/Fiduciary)
  - LeaveType: the fixed vocabulary of absence kinds
  - AbsenceRequest: one ledger row, occupying an inclusive date range
  - AccrualState: singleton record holding the ceiling and the month marker

DESIGN PRINCIPLES:
  1. Precision: balances use decimal.Decimal, never float64
  2. Purity: decision functions take plain slices in and return copies out;
     storage is owned by the storage collaborator
  3. All-or-nothing: no operation leaves a roster partially mutated

SEE ALSO:
  - accrual.go: monthly accrual computation and trigger guard
  - capacity.go: daily-capacity gate
  - identity.go: name matching for login and roster lookups
*/
package leave

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CONTRACT CLASS
// =============================================================================

// Contract is the contract class of an employee. It determines accrual rates
// and which leave resources apply.
type Contract string

const (
	ContractGuard     Contract = "guard"
	ContractFiduciary Contract = "fiduciary"
)

// Valid reports whether c is one of the known contract classes.
func (c Contract) Valid() bool {
	return c == ContractGuard || c == ContractFiduciary
}

// =============================================================================
// LEAVE TYPE
// =============================================================================

// LeaveType is the kind of absence being requested. The vocabulary is fixed.
type LeaveType string

const (
	TypeVacation      LeaveType = "vacation"       // ordinary leave, drawn from the leave balance
	TypeLieu          LeaveType = "lieu"           // time off in lieu, drawn from the lieu balance
	TypeMedicalPermit LeaveType = "medical_permit" // statutory/medical permit
	TypeBloodDonation LeaveType = "blood_donation"
	TypeParental      LeaveType = "parental"
)

// Valid reports whether t is in the fixed vocabulary.
func (t LeaveType) Valid() bool {
	switch t {
	case TypeVacation, TypeLieu, TypeMedicalPermit, TypeBloodDonation, TypeParental:
		return true
	}
	return false
}

// ExemptFromCeiling reports whether absences of this type never count against
// the daily ceiling. Statutory permits and parental leave are excluded by law,
// independent of who takes them.
func (t LeaveType) ExemptFromCeiling() bool {
	return t == TypeMedicalPermit || t == TypeParental
}

// DrawsFromBalance reports whether submitting a request of this type consumes
// a tracked balance. Statutory types do not.
func (t LeaveType) DrawsFromBalance() bool {
	return t == TypeVacation || t == TypeLieu
}

// Resource returns the reporting classification for this leave type.
func (t LeaveType) Resource() string {
	switch t {
	case TypeVacation:
		return "leave"
	case TypeLieu:
		return "lieu"
	default:
		return "permit"
	}
}

// =============================================================================
// EMPLOYEE - one roster row
// =============================================================================

// Employee is a roster row. Name is the identity used for login; matching is
// case-insensitive and token-order-insensitive (see identity.go).
//
// CredentialSecret is opaque to this package: the auth layer stores a bcrypt
// hash there, but the storage round-trip must preserve whatever string it is.
type Employee struct {
	Name             string
	Contract         Contract
	LeaveBalance     decimal.Decimal // days, may go negative
	LieuBalance      decimal.Decimal // days; meaningful for Fiduciary contracts only
	CredentialSecret string
	FirstLogin       bool
	Exempt           bool // never counted against the ceiling, never blocked by it
}

// =============================================================================
// ABSENCE REQUEST - one ledger row
// =============================================================================

// AbsenceRequest is one row of the absence ledger. Once created it occupies
// every calendar day in its inclusive [Start, End] range for capacity
// counting. Requests are never mutated: they are created on submission and
// removed on cancellation or employee termination.
type AbsenceRequest struct {
	ID           string
	EmployeeName string
	Span         DateRange
	Type         LeaveType
	Resource     string          // reporting classification, derived from Type
	Value        decimal.Decimal // day count of the request
	Unit         string          // "days"
}

// =============================================================================
// ACCRUAL STATE - singleton record
// =============================================================================

// AccrualState is the singleton record read at every session start.
//
// LastMonth is the calendar month (1-12) for which accrual was last applied.
// On first deployment it is primed to the prior month so the first session
// triggers one accrual pass.
type AccrualState struct {
	Ceiling   int // maximum simultaneously absent non-exempt employees per day
	LastMonth int // 1-12
}
