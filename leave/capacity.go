/*
capacity.go - Daily-capacity gate for new absence requests

PURPOSE:
  The organization tolerates at most `ceiling` simultaneously absent
  non-exempt employees on any single day. Every submission is checked against
  the existing ledger: if accepting the request would find ANY day in its
  span already at the ceiling, the whole request is rejected. There is no
  partial admission of the under-capacity days.

WHO COUNTS:
  A ledger row contributes to a day's count when all three hold:
  - its inclusive [start, end] range contains the day
  - its leave type is not ceiling-exempt (medical permit, parental)
  - its employee is not exemption-flagged

EDGE POLICY:
  Equality blocks: count == ceiling is already full, only strictly-below
  admits. Range iteration is inclusive on both ends. The surrounding form
  rejects same-day and backdated requests, but the gate does not assume that
  and evaluates any range it is handed.

FAIL CLOSED:
  The gate itself is pure. Callers that cannot load the ledger or roster must
  reject the request rather than admit one that could overflow headcount.
*/
package leave

// Decision is the outcome of a capacity check. A rejection is a normal
// decision, not an error; Day and Count describe the first blocking day for
// the requester's benefit.
type Decision struct {
	Allowed bool
	Day     Date // first day at or over the ceiling, when !Allowed
	Count   int  // absentees already counted on that day
}

// Reason returns the rejection as a CapacityError, or nil when allowed.
func (d Decision) Reason(ceiling int) error {
	if d.Allowed {
		return nil
	}
	return &CapacityError{Day: d.Day, Count: d.Count, Ceiling: ceiling}
}

// CountAbsent counts the non-exempt absentees on a single day. Exempt
// employees contribute nothing regardless of how many of their requests
// overlap the day; ceiling-exempt leave types contribute nothing regardless
// of the employee.
func CountAbsent(ledger []AbsenceRequest, roster []Employee, day Date) int {
	exempt := exemptIndex(roster)

	count := 0
	for _, req := range ledger {
		if !req.Span.Contains(day) {
			continue
		}
		if req.Type.ExemptFromCeiling() {
			continue
		}
		if exempt[NormalizeName(req.EmployeeName)] {
			continue
		}
		count++
	}
	return count
}

// CanAccept decides whether a new request may be admitted. Exempt employees
// and ceiling-exempt leave types pass unconditionally; otherwise every day in
// the inclusive span must be strictly below the ceiling.
func CanAccept(ledger []AbsenceRequest, roster []Employee, emp Employee, span DateRange, leaveType LeaveType, ceiling int) Decision {
	if emp.Exempt || leaveType.ExemptFromCeiling() {
		return Decision{Allowed: true}
	}

	for _, day := range span.Days() {
		count := CountAbsent(ledger, roster, day)
		if count >= ceiling {
			return Decision{Allowed: false, Day: day, Count: count}
		}
	}
	return Decision{Allowed: true}
}

// exemptIndex maps normalized employee names to their exemption flag.
// Ledger rows naming an employee missing from the roster still count: a
// dangling row must not quietly widen capacity.
func exemptIndex(roster []Employee) map[string]bool {
	idx := make(map[string]bool, len(roster))
	for _, emp := range roster {
		if emp.Exempt {
			idx[NormalizeName(emp.Name)] = true
		}
	}
	return idx
}
