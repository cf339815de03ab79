package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warden/leave-engine/leave"
	"github.com/warden/leave-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRoster() []leave.Employee {
	return []leave.Employee{
		{
			Name:             "Anna Bruni",
			Contract:         leave.ContractGuard,
			LeaveBalance:     decimal.RequireFromString("11.917"),
			LieuBalance:      decimal.Zero,
			CredentialSecret: "12345", // numeric-looking secrets must stay strings
			FirstLogin:       true,
		},
		{
			Name:             "Carlo Dini",
			Contract:         leave.ContractFiduciary,
			LeaveBalance:     decimal.RequireFromString("-0.5"),
			LieuBalance:      decimal.RequireFromString("0.60"),
			CredentialSecret: "$2a$10$abcdefghijklmnopqrstuv",
			Exempt:           true,
		},
	}
}

func testRequest(id, employee string, from, to int) leave.AbsenceRequest {
	return leave.AbsenceRequest{
		ID:           id,
		EmployeeName: employee,
		Span: leave.DateRange{
			Start: leave.NewDate(2026, time.July, from),
			End:   leave.NewDate(2026, time.July, to),
		},
		Type:     leave.TypeVacation,
		Resource: "leave",
		Value:    decimal.NewFromInt(int64(to - from + 1)),
		Unit:     "days",
	}
}

func TestRosterRoundTrip(t *testing.T) {
	// GIVEN: A roster with negative balances, flags and a numeric-looking secret
	// WHEN: Saved and reloaded
	// THEN: Every field comes back bit-for-bit

	ctx := context.Background()
	store := newTestStore(t)
	roster := testRoster()

	require.NoError(t, store.SaveRoster(ctx, roster))
	loaded, err := store.LoadRoster(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	for i, want := range roster {
		got := loaded[i]
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Contract, got.Contract)
		assert.True(t, want.LeaveBalance.Equal(got.LeaveBalance), "leave balance %s != %s", want.LeaveBalance, got.LeaveBalance)
		assert.True(t, want.LieuBalance.Equal(got.LieuBalance))
		assert.Equal(t, want.CredentialSecret, got.CredentialSecret)
		assert.Equal(t, want.FirstLogin, got.FirstLogin)
		assert.Equal(t, want.Exempt, got.Exempt)
	}
}

func TestSaveRoster_RewriteDoesNotDropRequests(t *testing.T) {
	// GIVEN: An employee with a ledger row
	// WHEN: The roster is rewritten with the employee still present
	// THEN: Their requests survive (the cascade only fires for removals)

	ctx := context.Background()
	store := newTestStore(t)
	roster := testRoster()
	require.NoError(t, store.SaveRoster(ctx, roster))
	require.NoError(t, store.AppendRequest(ctx, testRequest("r1", "Anna Bruni", 10, 12)))

	roster[0].LeaveBalance = decimal.RequireFromString("5")
	require.NoError(t, store.SaveRoster(ctx, roster))

	ledger, err := store.LoadLedger(ctx)
	require.NoError(t, err)
	assert.Len(t, ledger, 1)
}

func TestLedgerRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SaveRoster(ctx, testRoster()))

	want := testRequest("r1", "Anna Bruni", 10, 12)
	require.NoError(t, store.AppendRequest(ctx, want))

	ledger, err := store.LoadLedger(ctx)
	require.NoError(t, err)
	require.Len(t, ledger, 1)

	got := ledger[0]
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.EmployeeName, got.EmployeeName)
	assert.True(t, want.Span.Start.Equal(got.Span.Start))
	assert.True(t, want.Span.End.Equal(got.Span.End))
	assert.Equal(t, want.Type, got.Type)
	assert.Equal(t, want.Resource, got.Resource)
	assert.True(t, want.Value.Equal(got.Value))
	assert.Equal(t, want.Unit, got.Unit)
}

func TestRemoveRequest_RemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SaveRoster(ctx, testRoster()))
	require.NoError(t, store.AppendRequest(ctx, testRequest("r1", "Anna Bruni", 10, 12)))
	require.NoError(t, store.AppendRequest(ctx, testRequest("r2", "Anna Bruni", 20, 21)))
	require.NoError(t, store.AppendRequest(ctx, testRequest("r3", "Carlo Dini", 10, 12)))

	require.NoError(t, store.RemoveRequest(ctx, "r2"))

	ledger, err := store.LoadLedger(ctx)
	require.NoError(t, err)
	ids := []string{ledger[0].ID, ledger[1].ID}
	assert.ElementsMatch(t, []string{"r1", "r3"}, ids)

	assert.ErrorIs(t, store.RemoveRequest(ctx, "r2"), leave.ErrNotFound)
}

func TestDeleteEmployee_CascadesToRequests(t *testing.T) {
	// GIVEN: Two employees with requests
	// WHEN: One is terminated
	// THEN: Only their requests disappear with them

	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SaveRoster(ctx, testRoster()))
	require.NoError(t, store.AppendRequest(ctx, testRequest("r1", "Anna Bruni", 10, 12)))
	require.NoError(t, store.AppendRequest(ctx, testRequest("r2", "Carlo Dini", 10, 12)))

	require.NoError(t, store.DeleteEmployee(ctx, "Anna Bruni"))

	roster, err := store.LoadRoster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Carlo Dini", roster[0].Name)

	ledger, err := store.LoadLedger(ctx)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, "r2", ledger[0].ID)

	assert.ErrorIs(t, store.DeleteEmployee(ctx, "Anna Bruni"), leave.ErrNotFound)
}

func TestAccrualState_SingletonRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.LoadState(ctx)
	assert.ErrorIs(t, err, leave.ErrNotFound, "unprimed state must report not found")

	require.NoError(t, store.SaveState(ctx, leave.AccrualState{Ceiling: 3, LastMonth: 4}))
	require.NoError(t, store.SaveState(ctx, leave.AccrualState{Ceiling: 5, LastMonth: 6}))

	state, err := store.LoadState(ctx)
	require.NoError(t, err)
	assert.Equal(t, leave.AccrualState{Ceiling: 5, LastMonth: 6}, state)
}
