/*
Package sqlite provides a SQLite-backed implementation of leave.Store.

PURPOSE:
  Production persistence for the roster, the absence ledger, and the
  singleton accrual state.

KEY TABLES:
  employees:     Roster rows, keyed by name
  requests:      Absence ledger; foreign key cascades on termination
  accrual_state: Single-row table (id = 1)

FIDELITY:
  Balances and request values are stored as TEXT, not REAL: decimals must
  round-trip exactly, and a credential secret like "12345" must stay a
  string. No column coerces types on the way through.

ROSTER SAVES:
  SaveRoster upserts every incoming row and deletes rows that are no longer
  present. A blind delete-then-insert would fire the requests cascade on
  employees that merely changed, so the delete targets only the truly
  removed.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety; the engine itself assumes at most one
  concurrent writer. SQLite is opened with WAL for crash recovery.

SEE ALSO:
  - leave/store.go: Interface definition
  - store/file: flat-file alternative behind the same interface
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warden/leave-engine/leave"
)

// Store implements leave.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ leave.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: writes are serialized by the mutex anyway, and a pool
	// would give ":memory:" databases a fresh empty store per connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Roster
	CREATE TABLE IF NOT EXISTS employees (
		name TEXT PRIMARY KEY,
		contract TEXT NOT NULL,
		leave_balance TEXT NOT NULL,
		lieu_balance TEXT NOT NULL,
		credential_secret TEXT NOT NULL,
		first_login INTEGER NOT NULL DEFAULT 1,
		exempt INTEGER NOT NULL DEFAULT 0
	);

	-- Absence ledger; rows disappear with their employee
	CREATE TABLE IF NOT EXISTS requests (
		id TEXT PRIMARY KEY,
		employee_name TEXT NOT NULL REFERENCES employees(name) ON DELETE CASCADE,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		resource TEXT NOT NULL,
		value TEXT NOT NULL,
		unit TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_employee
		ON requests(employee_name);
	CREATE INDEX IF NOT EXISTS idx_requests_span
		ON requests(start_date, end_date);

	-- Singleton accrual state
	CREATE TABLE IF NOT EXISTS accrual_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		ceiling INTEGER NOT NULL,
		last_month INTEGER NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ROSTER
// =============================================================================

func (s *Store) LoadRoster(ctx context.Context) ([]leave.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, contract, leave_balance, lieu_balance, credential_secret, first_login, exempt
		FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []leave.Employee
	for rows.Next() {
		var emp leave.Employee
		var contract, leaveBal, lieuBal string
		var firstLogin, exempt int
		if err := rows.Scan(&emp.Name, &contract, &leaveBal, &lieuBal, &emp.CredentialSecret, &firstLogin, &exempt); err != nil {
			return nil, err
		}
		emp.Contract = leave.Contract(contract)
		if emp.LeaveBalance, err = decimal.NewFromString(leaveBal); err != nil {
			return nil, fmt.Errorf("employee %q: bad leave balance %q: %w", emp.Name, leaveBal, err)
		}
		if emp.LieuBalance, err = decimal.NewFromString(lieuBal); err != nil {
			return nil, fmt.Errorf("employee %q: bad lieu balance %q: %w", emp.Name, lieuBal, err)
		}
		emp.FirstLogin = firstLogin != 0
		emp.Exempt = exempt != 0
		roster = append(roster, emp)
	}
	return roster, rows.Err()
}

func (s *Store) SaveRoster(ctx context.Context, roster []leave.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, emp := range roster {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO employees (name, contract, leave_balance, lieu_balance, credential_secret, first_login, exempt)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				contract = excluded.contract,
				leave_balance = excluded.leave_balance,
				lieu_balance = excluded.lieu_balance,
				credential_secret = excluded.credential_secret,
				first_login = excluded.first_login,
				exempt = excluded.exempt`,
			emp.Name, string(emp.Contract), emp.LeaveBalance.String(), emp.LieuBalance.String(),
			emp.CredentialSecret, boolToInt(emp.FirstLogin), boolToInt(emp.Exempt))
		if err != nil {
			return err
		}
	}

	// Remove rows absent from the new roster; the requests cascade fires
	// only for these.
	if len(roster) == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM employees`); err != nil {
			return err
		}
	} else {
		placeholders := make([]string, len(roster))
		args := make([]any, len(roster))
		for i, emp := range roster {
			placeholders[i] = "?"
			args[i] = emp.Name
		}
		query := fmt.Sprintf(`DELETE FROM employees WHERE name NOT IN (%s)`, strings.Join(placeholders, ","))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) DeleteEmployee(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Name matching is canonical (case and token order insensitive), which
	// SQL equality cannot express; resolve the stored spelling first.
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM employees`)
	if err != nil {
		return err
	}
	stored := ""
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			rows.Close()
			return err
		}
		if leave.MatchName(n, name) {
			stored = n
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()
	if stored == "" {
		return leave.ErrNotFound
	}

	_, err = s.db.ExecContext(ctx, `DELETE FROM employees WHERE name = ?`, stored)
	return err
}

// =============================================================================
// LEDGER
// =============================================================================

func (s *Store) LoadLedger(ctx context.Context) ([]leave.AbsenceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_name, start_date, end_date, leave_type, resource, value, unit
		FROM requests ORDER BY start_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ledger []leave.AbsenceRequest
	for rows.Next() {
		var req leave.AbsenceRequest
		var start, end, leaveType, value string
		if err := rows.Scan(&req.ID, &req.EmployeeName, &start, &end, &leaveType, &req.Resource, &value, &req.Unit); err != nil {
			return nil, err
		}
		if req.Span.Start, err = leave.ParseDate(start); err != nil {
			return nil, fmt.Errorf("request %q: bad start date %q: %w", req.ID, start, err)
		}
		if req.Span.End, err = leave.ParseDate(end); err != nil {
			return nil, fmt.Errorf("request %q: bad end date %q: %w", req.ID, end, err)
		}
		req.Type = leave.LeaveType(leaveType)
		if req.Value, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("request %q: bad value %q: %w", req.ID, value, err)
		}
		ledger = append(ledger, req)
	}
	return ledger, rows.Err()
}

func (s *Store) AppendRequest(ctx context.Context, req leave.AbsenceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO requests (id, employee_name, start_date, end_date, leave_type, resource, value, unit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.EmployeeName, req.Span.Start.String(), req.Span.End.String(),
		string(req.Type), req.Resource, req.Value.String(), req.Unit)
	return err
}

func (s *Store) RemoveRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM requests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return leave.ErrNotFound
	}
	return nil
}

// =============================================================================
// ACCRUAL STATE
// =============================================================================

func (s *Store) LoadState(ctx context.Context) (leave.AccrualState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var state leave.AccrualState
	err := s.db.QueryRowContext(ctx, `SELECT ceiling, last_month FROM accrual_state WHERE id = 1`).
		Scan(&state.Ceiling, &state.LastMonth)
	if err == sql.ErrNoRows {
		return leave.AccrualState{}, leave.ErrNotFound
	}
	if err != nil {
		return leave.AccrualState{}, err
	}
	return state, nil
}

func (s *Store) SaveState(ctx context.Context, state leave.AccrualState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accrual_state (id, ceiling, last_month) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET ceiling = excluded.ceiling, last_month = excluded.last_month`,
		state.Ceiling, state.LastMonth)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
