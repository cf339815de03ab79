/*
handlers.go - HTTP handlers for the leave-management form

PURPOSE:
  Exposes the leave engine over a JSON API. Handlers parse and validate
  input, call the domain procedures, and map outcomes to HTTP.

REQUEST FLOW (submission, the hot path):
  1. Validate form input (dates, type) - rejected before any mutation
  2. Load state, roster and ledger; any load failure fails closed
  3. Run the capacity gate; a rejection is a 200 with accepted=false and is
     never persisted
  4. Append the request, deduct the balance, notify best-effort

ERROR HANDLING:
  - 400: Unparseable body or dates
  - 401/403: Authentication and authorization
  - 404: Unknown employee or request
  - 409: Duplicate employee on hire
  - 422: Validation failures (bad range, unknown type/contract)
  - 503: Storage unreachable - no partial mutation ever escapes
  Capacity rejection is NOT an error; notification failure is logged and
  swallowed.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - leave/: the decision procedures called from here
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warden/leave-engine/auth"
	"github.com/warden/leave-engine/leave"
	"github.com/warden/leave-engine/notify"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "leave_session"

type contextKey string

const sessionContextKey contextKey = "session"

// =============================================================================
// HANDLER
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     leave.Store
	Sessions  *auth.SessionManager
	Notifier  notify.Notifier
	Runner    *leave.AccrualRunner
	AdminName string
	Log       *logrus.Logger

	// Now is the clock; overridable in tests.
	Now func() time.Time
}

func NewHandler(store leave.Store, sessions *auth.SessionManager, notifier notify.Notifier, runner *leave.AccrualRunner, adminName string) *Handler {
	return &Handler{
		Store:     store,
		Sessions:  sessions,
		Notifier:  notifier,
		Runner:    runner,
		AdminName: adminName,
		Log:       logrus.StandardLogger(),
		Now:       time.Now,
	}
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

// RequireAuth resolves the session cookie and injects the session into the
// request context.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, "Not logged in", nil)
			return
		}
		sess, ok := h.Sessions.Get(cookie.Value)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Session expired", nil)
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates the admin route group.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess := sessionFrom(r); sess == nil || !sess.IsAdmin {
			writeError(w, http.StatusForbidden, "Admin only", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFrom(r *http.Request) *auth.Session {
	sess, _ := r.Context().Value(sessionContextKey).(*auth.Session)
	return sess
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Login authenticates an employee by full name and secret, runs the monthly
// accrual trigger (once per session establishment), and opens a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	roster, err := h.Store.LoadRoster(ctx)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}

	emp, err := leave.FindEmployee(roster, req.Name)
	if err != nil || !auth.CheckSecret(req.Secret, emp.CredentialSecret) {
		writeError(w, http.StatusUnauthorized, "Unknown name or wrong secret", nil)
		return
	}

	// Session load = accrual trigger point. A failed accrual does not block
	// the login; the session continues on the un-mutated roster.
	resp := LoginResponse{IsAdmin: leave.MatchName(req.Name, h.AdminName)}
	applied, accErr := h.Runner.Run(ctx, h.Now())
	if accErr != nil {
		h.Log.WithError(accErr).Error("accrual trigger failed")
		resp.AccrualError = "monthly accrual could not be applied"
	}
	resp.AccrualApplied = applied
	if applied {
		if fresh, err := h.Store.LoadRoster(ctx); err == nil {
			if updated, err := leave.FindEmployee(fresh, req.Name); err == nil {
				emp = updated
			}
		}
	}

	sess, err := h.Sessions.Create(emp.Name, resp.IsAdmin, emp.FirstLogin)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  sess.ExpiresAt,
	})

	resp.Employee = employeeDTO(emp)
	resp.FirstLogin = emp.FirstLogin
	writeJSON(w, http.StatusOK, resp)
}

// Logout ends the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	h.Sessions.Delete(sess.Token)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]any{"logged_out": true})
}

// Me returns the session employee with current balances.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	roster, err := h.Store.LoadRoster(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	emp, err := leave.FindEmployee(roster, sess.EmployeeName)
	if err != nil {
		writeError(w, http.StatusNotFound, "Employee no longer on roster", err)
		return
	}
	writeJSON(w, http.StatusOK, employeeDTO(emp))
}

// ChangeSecret sets a fresh credential secret and clears the first-login flag.
func (h *Handler) ChangeSecret(w http.ResponseWriter, r *http.Request) {
	var req ChangeSecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Secret) == "" {
		writeError(w, http.StatusUnprocessableEntity, "Secret cannot be empty", nil)
		return
	}

	hash, err := auth.HashSecret(req.Secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash secret", err)
		return
	}

	ctx := r.Context()
	sess := sessionFrom(r)
	roster, err := h.Store.LoadRoster(ctx)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}

	idx := rosterIndex(roster, sess.EmployeeName)
	if idx < 0 {
		writeError(w, http.StatusNotFound, "Employee no longer on roster", nil)
		return
	}
	roster[idx].CredentialSecret = hash
	roster[idx].FirstLogin = false

	if err := h.Store.SaveRoster(ctx, roster); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	h.Sessions.ClearFirstLogin(sess.Token)
	writeJSON(w, http.StatusOK, map[string]any{"changed": true})
}

// =============================================================================
// REQUEST HANDLERS
// =============================================================================

// SubmitRequest validates a new absence request, runs the capacity gate, and
// persists the request when admitted. Rejected requests are never persisted.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess.FirstLogin {
		writeError(w, http.StatusForbidden, "Change your secret before submitting requests", nil)
		return
	}

	var body SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	leaveType := leave.LeaveType(body.Type)
	if !leaveType.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "Unknown leave type", leave.ErrUnknownLeaveType)
		return
	}
	start, err := leave.ParseDate(body.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	end, err := leave.ParseDate(body.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return
	}
	span := leave.DateRange{Start: start, End: end}
	if !span.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "End date precedes start date", leave.ErrInvalidDateRange)
		return
	}
	// No same-day or backdated requests. The gate itself does not assume
	// this; it is form policy.
	if !start.After(leave.DateOf(h.Now())) {
		writeError(w, http.StatusUnprocessableEntity, "Start date must be after today", leave.ErrValidation)
		return
	}

	// Fail closed: nothing below may admit a request on missing data.
	ctx := r.Context()
	ceiling, err := h.loadCeiling(ctx)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	roster, err := h.Store.LoadRoster(ctx)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	ledger, err := h.Store.LoadLedger(ctx)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	emp, err := leave.FindEmployee(roster, sess.EmployeeName)
	if err != nil {
		writeError(w, http.StatusNotFound, "Employee no longer on roster", err)
		return
	}

	decision := leave.CanAccept(ledger, roster, emp, span, leaveType, ceiling)
	if !decision.Allowed {
		reason := decision.Reason(ceiling)
		writeJSON(w, http.StatusOK, SubmitResponse{
			Accepted:   false,
			Reason:     reason.Error(),
			BlockedDay: decision.Day.String(),
			Count:      decision.Count,
		})
		return
	}

	req := leave.AbsenceRequest{
		ID:           newRequestID(h.Now()),
		EmployeeName: emp.Name,
		Span:         span,
		Type:         leaveType,
		Resource:     leaveType.Resource(),
		Value:        decimal.NewFromInt(int64(span.Len())),
		Unit:         "days",
	}

	if err := h.Store.AppendRequest(ctx, req); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}

	if leaveType.DrawsFromBalance() {
		if err := h.adjustBalance(ctx, roster, emp.Name, leaveType, req.Value.Neg()); err != nil {
			// Roll the appended request back so no half-applied submission
			// survives.
			if rbErr := h.Store.RemoveRequest(ctx, req.ID); rbErr != nil {
				h.Log.WithError(rbErr).WithField("request", req.ID).Error("submission rollback failed")
			}
			writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
			return
		}
	}

	h.notifyBestEffort(ctx,
		fmt.Sprintf("Leave request: %s %s", emp.Name, span),
		fmt.Sprintf("%s requested %s from %s to %s (%s %s).",
			emp.Name, leaveType, span.Start, span.End, req.Value, req.Unit))

	dto := requestDTO(req)
	writeJSON(w, http.StatusCreated, SubmitResponse{Accepted: true, Request: &dto})
}

// ListRequests returns the caller's requests; admins see the whole ledger.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	ledger, err := h.Store.LoadLedger(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}

	dtos := make([]RequestDTO, 0, len(ledger))
	for _, req := range ledger {
		if sess.IsAdmin || leave.MatchName(req.EmployeeName, sess.EmployeeName) {
			dtos = append(dtos, requestDTO(req))
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": dtos})
}

// CancelRequest removes exactly one request and restores the drawn balance.
func (h *Handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	id := chi.URLParam(r, "id")

	ctx := r.Context()
	ledger, err := h.Store.LoadLedger(ctx)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}

	var target *leave.AbsenceRequest
	for i := range ledger {
		if ledger[i].ID == id {
			target = &ledger[i]
			break
		}
	}
	if target == nil {
		writeError(w, http.StatusNotFound, "Request not found", nil)
		return
	}
	if !sess.IsAdmin && !leave.MatchName(target.EmployeeName, sess.EmployeeName) {
		writeError(w, http.StatusForbidden, "Not your request", nil)
		return
	}

	if err := h.Store.RemoveRequest(ctx, id); err != nil {
		if errors.Is(err, leave.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Request not found", err)
			return
		}
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}

	if target.Type.DrawsFromBalance() {
		roster, err := h.Store.LoadRoster(ctx)
		if err == nil {
			err = h.adjustBalance(ctx, roster, target.EmployeeName, target.Type, target.Value)
		}
		if err != nil {
			// Re-append so the ledger and balances stay consistent.
			if rbErr := h.Store.AppendRequest(ctx, *target); rbErr != nil {
				h.Log.WithError(rbErr).WithField("request", id).Error("cancellation rollback failed")
			}
			writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
			return
		}
	}

	h.notifyBestEffort(ctx,
		fmt.Sprintf("Leave cancellation: %s %s", target.EmployeeName, target.Span),
		fmt.Sprintf("%s cancelled their %s request from %s to %s.",
			target.EmployeeName, target.Type, target.Span.Start, target.Span.End))

	writeJSON(w, http.StatusOK, map[string]any{"canceled": true})
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// ListRoster returns every employee with balances (the balance sheet view).
func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	roster, err := h.Store.LoadRoster(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	dtos := make([]EmployeeDTO, len(roster))
	for i, emp := range roster {
		dtos[i] = employeeDTO(emp)
	}
	writeJSON(w, http.StatusOK, map[string]any{"roster": dtos})
}

// CreateEmployee hires a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusUnprocessableEntity, "Name is required", leave.ErrValidation)
		return
	}
	contract := leave.Contract(req.Contract)
	if !contract.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "Unknown contract class", leave.ErrUnknownContract)
		return
	}
	if strings.TrimSpace(req.Secret) == "" {
		writeError(w, http.StatusUnprocessableEntity, "Secret is required", leave.ErrValidation)
		return
	}
	leaveBal, err := parseBalance(req.LeaveBalance)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid leave_balance", err)
		return
	}
	lieuBal, err := parseBalance(req.LieuBalance)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid lieu_balance", err)
		return
	}

	ctx := r.Context()
	roster, err := h.Store.LoadRoster(ctx)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	if _, err := leave.FindEmployee(roster, req.Name); err == nil {
		writeError(w, http.StatusConflict, "Employee already exists", nil)
		return
	}

	hash, err := auth.HashSecret(req.Secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash secret", err)
		return
	}

	emp := leave.Employee{
		Name:             strings.TrimSpace(req.Name),
		Contract:         contract,
		LeaveBalance:     leaveBal,
		LieuBalance:      lieuBal,
		CredentialSecret: hash,
		FirstLogin:       true,
		Exempt:           req.Exempt,
	}
	if err := h.Store.SaveRoster(ctx, append(roster, emp)); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	writeJSON(w, http.StatusCreated, employeeDTO(emp))
}

// UpdateEmployee applies partial edits to a roster row.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	name := urlName(r)

	var req UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	roster, err := h.Store.LoadRoster(ctx)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	idx := rosterIndex(roster, name)
	if idx < 0 {
		writeError(w, http.StatusNotFound, "Employee not found", leave.ErrUnknownEmployee)
		return
	}

	if req.Contract != nil {
		contract := leave.Contract(*req.Contract)
		if !contract.Valid() {
			writeError(w, http.StatusUnprocessableEntity, "Unknown contract class", leave.ErrUnknownContract)
			return
		}
		roster[idx].Contract = contract
	}
	if req.LeaveBalance != nil {
		bal, err := decimal.NewFromString(*req.LeaveBalance)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "Invalid leave_balance", err)
			return
		}
		roster[idx].LeaveBalance = bal
	}
	if req.LieuBalance != nil {
		bal, err := decimal.NewFromString(*req.LieuBalance)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "Invalid lieu_balance", err)
			return
		}
		roster[idx].LieuBalance = bal
	}
	if req.Secret != nil {
		hash, err := auth.HashSecret(*req.Secret)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to hash secret", err)
			return
		}
		roster[idx].CredentialSecret = hash
	}
	if req.Exempt != nil {
		roster[idx].Exempt = *req.Exempt
	}
	if req.FirstLogin != nil {
		roster[idx].FirstLogin = *req.FirstLogin
	}

	if err := h.Store.SaveRoster(ctx, roster); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, employeeDTO(roster[idx]))
}

// TerminateEmployee removes an employee and cascades to their requests.
func (h *Handler) TerminateEmployee(w http.ResponseWriter, r *http.Request) {
	name := urlName(r)

	ctx := r.Context()
	roster, err := h.Store.LoadRoster(ctx)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	emp, err := leave.FindEmployee(roster, name)
	if err != nil {
		writeError(w, http.StatusNotFound, "Employee not found", err)
		return
	}

	if err := h.Store.DeleteEmployee(ctx, emp.Name); err != nil {
		if errors.Is(err, leave.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Employee not found", err)
			return
		}
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"terminated": emp.Name})
}

// GetState returns the accrual state record.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.Store.LoadState(r.Context())
	if errors.Is(err, leave.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Accrual state not primed yet", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, StateDTO{Ceiling: state.Ceiling, LastMonth: state.LastMonth})
}

// UpdateCeiling changes the daily headcount ceiling.
func (h *Handler) UpdateCeiling(w http.ResponseWriter, r *http.Request) {
	var req UpdateCeilingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Ceiling < 1 {
		writeError(w, http.StatusUnprocessableEntity, "Ceiling must be at least 1", leave.ErrValidation)
		return
	}

	ctx := r.Context()
	state, err := h.Store.LoadState(ctx)
	if errors.Is(err, leave.ErrNotFound) {
		// Not primed yet: prime here with a stale marker so the next session
		// still triggers its first accrual pass.
		state = leave.AccrualState{LastMonth: int(h.Now().AddDate(0, -1, 0).Month())}
	} else if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	state.Ceiling = req.Ceiling

	if err := h.Store.SaveState(ctx, state); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, StateDTO{Ceiling: state.Ceiling, LastMonth: state.LastMonth})
}

// =============================================================================
// HELPERS
// =============================================================================

// loadCeiling reads the configured ceiling, falling back to the runner's
// default before the state record has been primed.
func (h *Handler) loadCeiling(ctx context.Context) (int, error) {
	state, err := h.Store.LoadState(ctx)
	if errors.Is(err, leave.ErrNotFound) {
		return h.Runner.DefaultCeiling, nil
	}
	if err != nil {
		return 0, err
	}
	return state.Ceiling, nil
}

// adjustBalance adds delta to the balance the leave type draws from and
// rewrites the roster.
func (h *Handler) adjustBalance(ctx context.Context, roster []leave.Employee, name string, leaveType leave.LeaveType, delta decimal.Decimal) error {
	idx := rosterIndex(roster, name)
	if idx < 0 {
		return leave.ErrUnknownEmployee
	}
	switch leaveType {
	case leave.TypeVacation:
		roster[idx].LeaveBalance = roster[idx].LeaveBalance.Add(delta)
	case leave.TypeLieu:
		roster[idx].LieuBalance = roster[idx].LieuBalance.Add(delta)
	}
	return h.Store.SaveRoster(ctx, roster)
}

func (h *Handler) notifyBestEffort(ctx context.Context, subject, body string) {
	if err := h.Notifier.Notify(ctx, subject, body); err != nil {
		h.Log.WithError(err).Warn("notification failed")
	}
}

// parseBalance parses an optional decimal field; blank means zero.
func parseBalance(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func rosterIndex(roster []leave.Employee, name string) int {
	for i, emp := range roster {
		if leave.MatchName(emp.Name, name) {
			return i
		}
	}
	return -1
}

func urlName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return name
}

func newRequestID(now time.Time) string {
	return fmt.Sprintf("req-%d", now.UnixNano())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]any{"error": message}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}
