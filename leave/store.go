/*
store.go - Persistence interface for the roster, ledger and accrual state

PURPOSE:
  Defines the boundary between the engine and whatever holds the data. The
  original deployments alternated between a spreadsheet and flat files; both
  are abstracted behind this one capability so the deployment chooses the
  backing implementation.

CONTRACT:
  Every write is all-or-nothing: either it lands before the call returns, or
  the call reports failure and the caller discards its in-memory state. The
  engine never retries and never applies partial updates.

  Roster saves are whole-collection rewrites (the spreadsheet model). The
  ledger is append/remove only; requests are never updated in place.

IMPLEMENTATIONS:
  - leave/store/memory.go: in-memory, for tests and development
  - store/sqlite:          SQLite-backed production store
  - store/file:            flat-file JSON store

SEE ALSO:
  - accrual.go: AccrualRunner drives LoadState/SaveState
  - capacity.go: consumes LoadLedger/LoadRoster snapshots
*/
package leave

import (
	"context"
	"errors"
)

// ErrNotFound is returned by loads when the record does not exist. The
// accrual runner treats a missing AccrualState as "first run" and primes it.
var ErrNotFound = errors.New("record not found")

// Store is the single persistence capability the engine consumes.
type Store interface {
	// LoadRoster returns all employee rows.
	LoadRoster(ctx context.Context) ([]Employee, error)

	// SaveRoster replaces the whole roster. All-or-nothing.
	SaveRoster(ctx context.Context, roster []Employee) error

	// LoadLedger returns all absence requests.
	LoadLedger(ctx context.Context) ([]AbsenceRequest, error)

	// AppendRequest adds one absence request to the ledger.
	AppendRequest(ctx context.Context, req AbsenceRequest) error

	// RemoveRequest deletes exactly the request with the given ID.
	// Returns ErrNotFound if no such request exists.
	RemoveRequest(ctx context.Context, id string) error

	// DeleteEmployee removes an employee row and cascades to every absence
	// request of that employee (termination).
	DeleteEmployee(ctx context.Context, name string) error

	// LoadState returns the singleton accrual state, or ErrNotFound before
	// the first accrual pass has primed it.
	LoadState(ctx context.Context) (AccrualState, error)

	// SaveState persists the singleton accrual state.
	SaveState(ctx context.Context, state AccrualState) error
}
