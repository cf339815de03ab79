/*
accrual.go - Monthly accrual computation and idempotent trigger

PURPOSE:
  Each calendar month every employee earns a contractual increment to their
  leave balance (and, for Fiduciary contracts, to time off in lieu). The
  increment is applied at most once per month regardless of how many sessions
  start within that month.

ACCRUAL TABLE (contractual constants):
  Guard:      +1.917 leave days
  Fiduciary:  +2.16 leave days, +0.60 lieu days

TRIGGER GUARD:
  The guard is "calendar month changed since last applied", not "N days
  elapsed". A deployment that never runs a session during a given month
  silently skips that month's accrual; that is the observed behavior of the
  system this replaces and is kept as-is.

FAILURE SEMANTICS:
  All-or-nothing per invocation. Validation happens before any balance is
  touched; on persistence failure the runner reports the previous, un-mutated
  roster and does not advance the month marker.
*/
package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// ACCRUAL TABLE
// =============================================================================

// AccrualRates is the monthly increment for one contract class.
type AccrualRates struct {
	Leave decimal.Decimal
	Lieu  decimal.Decimal
}

var accrualTable = map[Contract]AccrualRates{
	ContractGuard: {
		Leave: decimal.RequireFromString("1.917"),
		Lieu:  decimal.Zero,
	},
	ContractFiduciary: {
		Leave: decimal.RequireFromString("2.16"),
		Lieu:  decimal.RequireFromString("0.60"),
	},
}

// RatesFor returns the monthly accrual rates for a contract class.
func RatesFor(contract Contract) (AccrualRates, error) {
	rates, ok := accrualTable[contract]
	if !ok {
		return AccrualRates{}, fmt.Errorf("%w: %q", ErrUnknownContract, contract)
	}
	return rates, nil
}

// =============================================================================
// ACCRUAL COMPUTATION - pure
// =============================================================================

// ApplyMonthlyAccrual returns a copy of the roster with one month's accrual
// applied to every employee. The input is never mutated.
//
// All-or-nothing: every contract class is validated before any balance is
// computed, so an unknown class anywhere in the roster rejects the whole pass.
func ApplyMonthlyAccrual(roster []Employee) ([]Employee, error) {
	for _, emp := range roster {
		if !emp.Contract.Valid() {
			return nil, fmt.Errorf("%w: %q (employee %q)", ErrUnknownContract, emp.Contract, emp.Name)
		}
	}

	updated := make([]Employee, len(roster))
	for i, emp := range roster {
		rates := accrualTable[emp.Contract]
		emp.LeaveBalance = emp.LeaveBalance.Add(rates.Leave)
		emp.LieuBalance = emp.LieuBalance.Add(rates.Lieu)
		updated[i] = emp
	}
	return updated, nil
}

// MaybeTriggerAccrual compares now's calendar month to the state's month
// marker and, when they differ, applies exactly one accrual pass and advances
// the marker. Same month: inputs are returned unchanged and triggered=false.
//
// Pure; persistence is the AccrualRunner's job.
func MaybeTriggerAccrual(roster []Employee, state AccrualState, now time.Time) ([]Employee, AccrualState, bool, error) {
	if int(now.Month()) == state.LastMonth {
		return roster, state, false, nil
	}

	updated, err := ApplyMonthlyAccrual(roster)
	if err != nil {
		return roster, state, false, err
	}

	state.LastMonth = int(now.Month())
	return updated, state, true, nil
}

// =============================================================================
// ACCRUAL RUNNER - persistence orchestration
// =============================================================================

// AccrualRunner loads the roster and state, runs the trigger guard, and
// persists the result. It runs once per session establishment; the guard
// makes repeated runs within a month no-ops.
//
// The runner assumes at most one concurrent caller. Two overlapping sessions
// could both observe a stale month marker and double-accrue; closing that gap
// is the persistence layer's concern in multi-user deployments.
type AccrualRunner struct {
	Store          Store
	DefaultCeiling int
	Log            *logrus.Logger
}

// Run performs one trigger check at the given instant. Returns whether an
// accrual pass was applied and persisted.
func (r *AccrualRunner) Run(ctx context.Context, now time.Time) (bool, error) {
	state, err := r.Store.LoadState(ctx)
	if err == ErrNotFound {
		// First run: prime the marker to the prior month so this session
		// applies one accrual pass.
		state = AccrualState{
			Ceiling:   r.DefaultCeiling,
			LastMonth: int(now.AddDate(0, -1, 0).Month()),
		}
		if err := r.Store.SaveState(ctx, state); err != nil {
			return false, fmt.Errorf("%w: priming accrual state: %v", ErrStorageUnavailable, err)
		}
		r.log().WithField("last_month", state.LastMonth).Info("accrual state primed")
	} else if err != nil {
		return false, fmt.Errorf("%w: loading accrual state: %v", ErrStorageUnavailable, err)
	}

	if int(now.Month()) == state.LastMonth {
		return false, nil
	}

	roster, err := r.Store.LoadRoster(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: loading roster: %v", ErrStorageUnavailable, err)
	}

	updated, newState, triggered, err := MaybeTriggerAccrual(roster, state, now)
	if err != nil || !triggered {
		return false, err
	}

	if err := r.Store.SaveRoster(ctx, updated); err != nil {
		return false, fmt.Errorf("%w: saving accrued roster: %v", ErrStorageUnavailable, err)
	}
	if err := r.Store.SaveState(ctx, newState); err != nil {
		// The marker must not lag a saved roster, or next session would
		// accrue twice. Restore the previous roster and report failure.
		if rbErr := r.Store.SaveRoster(ctx, roster); rbErr != nil {
			r.log().WithError(rbErr).Error("accrual rollback failed; balances may be ahead of month marker")
		}
		return false, fmt.Errorf("%w: saving accrual state: %v", ErrStorageUnavailable, err)
	}

	r.log().WithFields(logrus.Fields{
		"month":     int(now.Month()),
		"employees": len(updated),
	}).Info("monthly accrual applied")
	return true, nil
}

func (r *AccrualRunner) log() *logrus.Logger {
	if r.Log != nil {
		return r.Log
	}
	return logrus.StandardLogger()
}
