package leave_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warden/leave-engine/leave"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func day(d int) leave.Date {
	return leave.NewDate(2026, time.July, d)
}

func absence(id, employee string, from, to int, typ leave.LeaveType) leave.AbsenceRequest {
	return leave.AbsenceRequest{
		ID:           id,
		EmployeeName: employee,
		Span:         leave.DateRange{Start: day(from), End: day(to)},
		Type:         typ,
	}
}

// =============================================================================
// COUNTING
// =============================================================================

func TestCountAbsent_InclusiveRange(t *testing.T) {
	ledger := []leave.AbsenceRequest{absence("r1", "Anna Bruni", 10, 12, leave.TypeVacation)}
	roster := []leave.Employee{{Name: "Anna Bruni"}}

	assert.Equal(t, 0, leave.CountAbsent(ledger, roster, day(9)))
	assert.Equal(t, 1, leave.CountAbsent(ledger, roster, day(10)), "start day is occupied")
	assert.Equal(t, 1, leave.CountAbsent(ledger, roster, day(11)))
	assert.Equal(t, 1, leave.CountAbsent(ledger, roster, day(12)), "end day is occupied")
	assert.Equal(t, 0, leave.CountAbsent(ledger, roster, day(13)))
}

func TestCountAbsent_ExemptEmployee_NeverCounts(t *testing.T) {
	// GIVEN: An exempt employee with 5 overlapping ordinary-leave requests
	// WHEN: Counting absentees on an overlapped day
	// THEN: They contribute 0, independent of leave type

	var ledger []leave.AbsenceRequest
	for i := 0; i < 5; i++ {
		ledger = append(ledger, absence("r"+string(rune('a'+i)), "Elena Ferri", 10, 14, leave.TypeVacation))
	}
	roster := []leave.Employee{{Name: "Elena Ferri", Exempt: true}}

	assert.Equal(t, 0, leave.CountAbsent(ledger, roster, day(12)))
}

func TestCountAbsent_ExemptTypes_NeverCount(t *testing.T) {
	ledger := []leave.AbsenceRequest{
		absence("r1", "Anna Bruni", 10, 10, leave.TypeMedicalPermit),
		absence("r2", "Carlo Dini", 10, 10, leave.TypeParental),
		absence("r3", "Marco Galli", 10, 10, leave.TypeBloodDonation), // blood donation DOES count
	}
	roster := []leave.Employee{{Name: "Anna Bruni"}, {Name: "Carlo Dini"}, {Name: "Marco Galli"}}

	assert.Equal(t, 1, leave.CountAbsent(ledger, roster, day(10)))
}

func TestCountAbsent_NameMatchingIsCanonical(t *testing.T) {
	// Ledger rows may carry a differently-cased or reordered name than the
	// roster; exemption must still be recognized.
	ledger := []leave.AbsenceRequest{absence("r1", "FERRI elena", 10, 10, leave.TypeVacation)}
	roster := []leave.Employee{{Name: "Elena Ferri", Exempt: true}}

	assert.Equal(t, 0, leave.CountAbsent(ledger, roster, day(10)))
}

func TestCountAbsent_UnknownEmployeeStillCounts(t *testing.T) {
	// A dangling ledger row must not quietly widen capacity.
	ledger := []leave.AbsenceRequest{absence("r1", "Nobody Here", 10, 10, leave.TypeVacation)}

	assert.Equal(t, 1, leave.CountAbsent(ledger, nil, day(10)))
}

// =============================================================================
// GATE
// =============================================================================

func TestCanAccept_SingleFullDayRejectsWholeSpan(t *testing.T) {
	// GIVEN: ceiling=3; day 11 already has 3 non-exempt absentees while
	//        days 10 and 12 have 1 each
	// WHEN: A request spanning 10-12 is checked
	// THEN: The whole request is rejected; no partial admission

	ledger := []leave.AbsenceRequest{
		absence("r1", "Anna Bruni", 10, 12, leave.TypeVacation),
		absence("r2", "Carlo Dini", 11, 11, leave.TypeVacation),
		absence("r3", "Marco Galli", 11, 11, leave.TypeVacation),
	}
	roster := []leave.Employee{
		{Name: "Anna Bruni"}, {Name: "Carlo Dini"}, {Name: "Marco Galli"}, {Name: "Paola Riva"},
	}

	decision := leave.CanAccept(ledger, roster, roster[3],
		leave.DateRange{Start: day(10), End: day(12)}, leave.TypeVacation, 3)

	assert.False(t, decision.Allowed)
	assert.Equal(t, day(11), decision.Day)
	assert.Equal(t, 3, decision.Count)
	assert.EqualError(t, decision.Reason(3), "capacity reached on 2026-07-11: 3 of 3 already absent")
}

func TestCanAccept_CeilingBoundary(t *testing.T) {
	// GIVEN: ceiling=3 and a day with exactly 2 existing non-exempt absentees
	// WHEN: A 3rd requests the day, then a 4th after the 3rd is committed
	// THEN: The 3rd is admitted (2 < 3); the 4th is rejected (3 >= 3)

	ledger := []leave.AbsenceRequest{
		absence("r1", "Anna Bruni", 10, 10, leave.TypeVacation),
		absence("r2", "Carlo Dini", 10, 10, leave.TypeVacation),
	}
	roster := []leave.Employee{
		{Name: "Anna Bruni"}, {Name: "Carlo Dini"}, {Name: "Marco Galli"}, {Name: "Paola Riva"},
	}
	span := leave.DateRange{Start: day(10), End: day(10)}

	third := leave.CanAccept(ledger, roster, roster[2], span, leave.TypeVacation, 3)
	assert.True(t, third.Allowed)

	ledger = append(ledger, absence("r3", "Marco Galli", 10, 10, leave.TypeVacation))

	fourth := leave.CanAccept(ledger, roster, roster[3], span, leave.TypeVacation, 3)
	assert.False(t, fourth.Allowed)
	assert.Equal(t, 3, fourth.Count)
}

func TestCanAccept_ExemptEmployee_AlwaysPasses(t *testing.T) {
	// Even a fully-booked span never blocks an exempt employee.
	ledger := []leave.AbsenceRequest{
		absence("r1", "Anna Bruni", 10, 10, leave.TypeVacation),
		absence("r2", "Carlo Dini", 10, 10, leave.TypeVacation),
		absence("r3", "Marco Galli", 10, 10, leave.TypeVacation),
	}
	roster := []leave.Employee{
		{Name: "Anna Bruni"}, {Name: "Carlo Dini"}, {Name: "Marco Galli"},
		{Name: "Elena Ferri", Exempt: true},
	}

	decision := leave.CanAccept(ledger, roster, roster[3],
		leave.DateRange{Start: day(10), End: day(10)}, leave.TypeVacation, 3)

	assert.True(t, decision.Allowed)
}

func TestCanAccept_ExemptType_AlwaysPasses(t *testing.T) {
	ledger := []leave.AbsenceRequest{
		absence("r1", "Anna Bruni", 10, 10, leave.TypeVacation),
		absence("r2", "Carlo Dini", 10, 10, leave.TypeVacation),
		absence("r3", "Marco Galli", 10, 10, leave.TypeVacation),
	}
	roster := []leave.Employee{
		{Name: "Anna Bruni"}, {Name: "Carlo Dini"}, {Name: "Marco Galli"}, {Name: "Paola Riva"},
	}

	decision := leave.CanAccept(ledger, roster, roster[3],
		leave.DateRange{Start: day(10), End: day(10)}, leave.TypeMedicalPermit, 3)

	assert.True(t, decision.Allowed)
}

func TestCanAccept_PastRangesEvaluateNormally(t *testing.T) {
	// The form rejects backdated requests before the gate runs, but the gate
	// itself must evaluate any range it is handed.
	ledger := []leave.AbsenceRequest{absence("r1", "Anna Bruni", 1, 1, leave.TypeVacation)}
	roster := []leave.Employee{{Name: "Anna Bruni"}, {Name: "Paola Riva"}}

	decision := leave.CanAccept(ledger, roster, roster[1],
		leave.DateRange{Start: day(1), End: day(1)}, leave.TypeVacation, 1)

	assert.False(t, decision.Allowed)
}

// =============================================================================
// DATE RANGE
// =============================================================================

func TestDateRange_DaysInclusive(t *testing.T) {
	span := leave.DateRange{Start: day(10), End: day(12)}

	days := span.Days()
	assert.Len(t, days, 3)
	assert.Equal(t, day(10), days[0])
	assert.Equal(t, day(12), days[2])
	assert.Equal(t, 3, span.Len())
}

func TestDateRange_SingleDay(t *testing.T) {
	span := leave.DateRange{Start: day(10), End: day(10)}

	assert.True(t, span.Valid())
	assert.Len(t, span.Days(), 1)
}

func TestDateRange_EndBeforeStart_Invalid(t *testing.T) {
	span := leave.DateRange{Start: day(12), End: day(10)}

	assert.False(t, span.Valid())
	assert.Empty(t, span.Days())
	assert.Equal(t, 0, span.Len())
}
