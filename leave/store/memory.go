// Package store provides leave.Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/warden/leave-engine/leave"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu     sync.RWMutex
	roster []leave.Employee
	ledger []leave.AbsenceRequest
	state  *leave.AccrualState
}

func NewMemory() *Memory {
	return &Memory{}
}

var _ leave.Store = (*Memory)(nil)

func (m *Memory) LoadRoster(_ context.Context) ([]leave.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]leave.Employee, len(m.roster))
	copy(out, m.roster)
	return out, nil
}

func (m *Memory) SaveRoster(_ context.Context, roster []leave.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roster = make([]leave.Employee, len(roster))
	copy(m.roster, roster)
	return nil
}

func (m *Memory) LoadLedger(_ context.Context) ([]leave.AbsenceRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]leave.AbsenceRequest, len(m.ledger))
	copy(out, m.ledger)
	return out, nil
}

func (m *Memory) AppendRequest(_ context.Context, req leave.AbsenceRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ledger = append(m.ledger, req)
	return nil
}

func (m *Memory) RemoveRequest(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, req := range m.ledger {
		if req.ID == id {
			m.ledger = append(m.ledger[:i], m.ledger[i+1:]...)
			return nil
		}
	}
	return leave.ErrNotFound
}

func (m *Memory) DeleteEmployee(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := false
	kept := m.roster[:0]
	for _, emp := range m.roster {
		if leave.MatchName(emp.Name, name) {
			found = true
			continue
		}
		kept = append(kept, emp)
	}
	m.roster = kept
	if !found {
		return leave.ErrNotFound
	}

	// Cascade: drop the terminated employee's requests.
	remaining := m.ledger[:0]
	for _, req := range m.ledger {
		if !leave.MatchName(req.EmployeeName, name) {
			remaining = append(remaining, req)
		}
	}
	m.ledger = remaining
	return nil
}

func (m *Memory) LoadState(_ context.Context) (leave.AccrualState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state == nil {
		return leave.AccrualState{}, leave.ErrNotFound
	}
	return *m.state, nil
}

func (m *Memory) SaveState(_ context.Context, state leave.AccrualState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = &state
	return nil
}
