/*
Package file provides a flat-file implementation of leave.Store.

PURPOSE:
  The deployments this replaces alternated between a spreadsheet service and
  local flat files. This is the flat-file side: three JSON documents in a
  data directory (roster.json, ledger.json, state.json), each rewritten
  whole on save.

ATOMICITY:
  Every save writes to a temp file in the same directory and renames it over
  the target, so a crash mid-write leaves the previous document intact.
  Either the write lands before the call returns or the store is unchanged.

FIDELITY:
  Decimals marshal as JSON strings (shopspring default), so balances and a
  secret like "12345" round-trip without type coercion.
*/
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/warden/leave-engine/leave"
)

const (
	rosterFile = "roster.json"
	ledgerFile = "ledger.json"
	stateFile  = "state.json"
)

// Store implements leave.Store over JSON files in a directory.
type Store struct {
	dir string
	mu  sync.RWMutex
}

var _ leave.Store = (*Store)(nil)

// New creates a flat-file store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// =============================================================================
// DOCUMENT SHAPES
// =============================================================================
// Stored rows mirror the domain types field for field; they exist so the
// on-disk schema is explicit and survives renames in the domain structs.

type employeeRow struct {
	Name             string          `json:"name"`
	Contract         string          `json:"contract"`
	LeaveBalance     decimal.Decimal `json:"leave_balance"`
	LieuBalance      decimal.Decimal `json:"lieu_balance"`
	CredentialSecret string          `json:"credential_secret"`
	FirstLogin       bool            `json:"first_login"`
	Exempt           bool            `json:"exempt"`
}

type requestRow struct {
	ID           string          `json:"id"`
	EmployeeName string          `json:"employee_name"`
	StartDate    leave.Date      `json:"start_date"`
	EndDate      leave.Date      `json:"end_date"`
	Type         string          `json:"type"`
	Resource     string          `json:"resource"`
	Value        decimal.Decimal `json:"value"`
	Unit         string          `json:"unit"`
}

type stateRow struct {
	Ceiling   int `json:"ceiling"`
	LastMonth int `json:"last_month"`
}

// =============================================================================
// ROSTER
// =============================================================================

func (s *Store) LoadRoster(_ context.Context) ([]leave.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []employeeRow
	if err := s.read(rosterFile, &rows); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil // empty roster before first save
		}
		return nil, err
	}

	roster := make([]leave.Employee, len(rows))
	for i, r := range rows {
		roster[i] = leave.Employee{
			Name:             r.Name,
			Contract:         leave.Contract(r.Contract),
			LeaveBalance:     r.LeaveBalance,
			LieuBalance:      r.LieuBalance,
			CredentialSecret: r.CredentialSecret,
			FirstLogin:       r.FirstLogin,
			Exempt:           r.Exempt,
		}
	}
	return roster, nil
}

func (s *Store) SaveRoster(_ context.Context, roster []leave.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]employeeRow, len(roster))
	for i, emp := range roster {
		rows[i] = employeeRow{
			Name:             emp.Name,
			Contract:         string(emp.Contract),
			LeaveBalance:     emp.LeaveBalance,
			LieuBalance:      emp.LieuBalance,
			CredentialSecret: emp.CredentialSecret,
			FirstLogin:       emp.FirstLogin,
			Exempt:           emp.Exempt,
		}
	}
	return s.write(rosterFile, rows)
}

func (s *Store) DeleteEmployee(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []employeeRow
	if err := s.read(rosterFile, &rows); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	found := false
	kept := rows[:0]
	for _, r := range rows {
		if leave.MatchName(r.Name, name) {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return leave.ErrNotFound
	}
	if err := s.write(rosterFile, kept); err != nil {
		return err
	}

	// Cascade to the employee's ledger rows.
	var reqs []requestRow
	if err := s.read(ledgerFile, &reqs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	remaining := reqs[:0]
	for _, r := range reqs {
		if !leave.MatchName(r.EmployeeName, name) {
			remaining = append(remaining, r)
		}
	}
	return s.write(ledgerFile, remaining)
}

// =============================================================================
// LEDGER
// =============================================================================

func (s *Store) LoadLedger(_ context.Context) ([]leave.AbsenceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reqs, err := s.readLedger()
	if err != nil {
		return nil, err
	}

	ledger := make([]leave.AbsenceRequest, len(reqs))
	for i, r := range reqs {
		ledger[i] = leave.AbsenceRequest{
			ID:           r.ID,
			EmployeeName: r.EmployeeName,
			Span:         leave.DateRange{Start: r.StartDate, End: r.EndDate},
			Type:         leave.LeaveType(r.Type),
			Resource:     r.Resource,
			Value:        r.Value,
			Unit:         r.Unit,
		}
	}
	return ledger, nil
}

func (s *Store) AppendRequest(_ context.Context, req leave.AbsenceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reqs, err := s.readLedger()
	if err != nil {
		return err
	}
	reqs = append(reqs, requestRow{
		ID:           req.ID,
		EmployeeName: req.EmployeeName,
		StartDate:    req.Span.Start,
		EndDate:      req.Span.End,
		Type:         string(req.Type),
		Resource:     req.Resource,
		Value:        req.Value,
		Unit:         req.Unit,
	})
	return s.write(ledgerFile, reqs)
}

func (s *Store) RemoveRequest(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reqs, err := s.readLedger()
	if err != nil {
		return err
	}
	for i, r := range reqs {
		if r.ID == id {
			return s.write(ledgerFile, append(reqs[:i], reqs[i+1:]...))
		}
	}
	return leave.ErrNotFound
}

func (s *Store) readLedger() ([]requestRow, error) {
	var reqs []requestRow
	if err := s.read(ledgerFile, &reqs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return reqs, nil
}

// =============================================================================
// ACCRUAL STATE
// =============================================================================

func (s *Store) LoadState(_ context.Context) (leave.AccrualState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var row stateRow
	if err := s.read(stateFile, &row); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return leave.AccrualState{}, leave.ErrNotFound
		}
		return leave.AccrualState{}, err
	}
	return leave.AccrualState{Ceiling: row.Ceiling, LastMonth: row.LastMonth}, nil
}

func (s *Store) SaveState(_ context.Context, state leave.AccrualState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(stateFile, stateRow{Ceiling: state.Ceiling, LastMonth: state.LastMonth})
}

// =============================================================================
// FILE I/O
// =============================================================================

func (s *Store) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *Store) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), target)
}
