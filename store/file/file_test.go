package file_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warden/leave-engine/leave"
	"github.com/warden/leave-engine/store/file"
)

func newTestStore(t *testing.T) *file.Store {
	store, err := file.New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	roster, err := store.LoadRoster(ctx)
	require.NoError(t, err)
	assert.Empty(t, roster)

	ledger, err := store.LoadLedger(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger)

	_, err = store.LoadState(ctx)
	assert.ErrorIs(t, err, leave.ErrNotFound)
}

func TestRosterRoundTrip_NoTypeCoercion(t *testing.T) {
	// GIVEN: A secret that looks like a number and exact decimal balances
	// WHEN: Saved to disk and reloaded
	// THEN: Nothing is coerced; "12345" is still a string, 0.60 stays 0.60

	ctx := context.Background()
	store := newTestStore(t)

	roster := []leave.Employee{
		{
			Name:             "Anna Bruni",
			Contract:         leave.ContractGuard,
			LeaveBalance:     decimal.RequireFromString("11.917"),
			CredentialSecret: "12345",
			FirstLogin:       true,
		},
		{
			Name:         "Carlo Dini",
			Contract:     leave.ContractFiduciary,
			LeaveBalance: decimal.RequireFromString("-3.25"),
			LieuBalance:  decimal.RequireFromString("0.60"),
			Exempt:       true,
		},
	}
	require.NoError(t, store.SaveRoster(ctx, roster))

	loaded, err := store.LoadRoster(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "12345", loaded[0].CredentialSecret)
	assert.Equal(t, "11.917", loaded[0].LeaveBalance.String())
	assert.True(t, loaded[0].FirstLogin)
	assert.Equal(t, "0.6", loaded[1].LieuBalance.String())
	assert.True(t, loaded[1].LeaveBalance.Equal(decimal.RequireFromString("-3.25")))
	assert.True(t, loaded[1].Exempt)
}

func TestLedgerAppendAndRemove(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	mk := func(id string, from, to int) leave.AbsenceRequest {
		return leave.AbsenceRequest{
			ID:           id,
			EmployeeName: "Anna Bruni",
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

	require.NoError(t, store.AppendRequest(ctx, mk("r1", 10, 12)))
	require.NoError(t, store.AppendRequest(ctx, mk("r2", 15, 15)))

	ledger, err := store.LoadLedger(ctx)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.True(t, ledger[0].Span.Start.Equal(leave.NewDate(2026, time.July, 10)))
	assert.True(t, ledger[0].Span.End.Equal(leave.NewDate(2026, time.July, 12)))
	assert.Equal(t, leave.TypeVacation, ledger[0].Type)
	assert.Equal(t, "3", ledger[0].Value.String())

	// Cancellation removes exactly that record.
	require.NoError(t, store.RemoveRequest(ctx, "r1"))
	ledger, err = store.LoadLedger(ctx)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, "r2", ledger[0].ID)

	assert.ErrorIs(t, store.RemoveRequest(ctx, "r1"), leave.ErrNotFound)
}

func TestDeleteEmployee_CascadesToLedger(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveRoster(ctx, []leave.Employee{
		{Name: "Anna Bruni", Contract: leave.ContractGuard},
		{Name: "Carlo Dini", Contract: leave.ContractFiduciary},
	}))
	require.NoError(t, store.AppendRequest(ctx, leave.AbsenceRequest{
		ID: "r1", EmployeeName: "Anna Bruni",
		Span:  leave.DateRange{Start: leave.NewDate(2026, time.July, 1), End: leave.NewDate(2026, time.July, 2)},
		Type:  leave.TypeVacation,
		Value: decimal.NewFromInt(2), Unit: "days",
	}))
	require.NoError(t, store.AppendRequest(ctx, leave.AbsenceRequest{
		ID: "r2", EmployeeName: "Carlo Dini",
		Span:  leave.DateRange{Start: leave.NewDate(2026, time.July, 1), End: leave.NewDate(2026, time.July, 1)},
		Type:  leave.TypeLieu,
		Value: decimal.NewFromInt(1), Unit: "days",
	}))

	// Termination accepts any spelling of the name.
	require.NoError(t, store.DeleteEmployee(ctx, "bruni ANNA"))

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

func TestStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveState(ctx, leave.AccrualState{Ceiling: 3, LastMonth: 12}))

	state, err := store.LoadState(ctx)
	require.NoError(t, err)
	assert.Equal(t, leave.AccrualState{Ceiling: 3, LastMonth: 12}, state)
}
