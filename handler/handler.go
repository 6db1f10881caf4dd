// Package handler is the HTTP presentation layer for the banking core:
// it decodes and validates client intents, forwards them to bank.Service,
// and renders statements and domain errors as JSON.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bankist-api/bank"
)

// Handler holds dependencies for the banking endpoints.
type Handler struct {
	svc    *bank.Service
	logger *slog.Logger
}

// New creates a Handler around the banking core.
func New(svc *bank.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Login authenticates a username/PIN pair and opens the session.
//
// Method: POST
// Path: /login
// Success: 200 OK with {token, statement}
// Error: 400 Bad Request (invalid JSON or missing fields)
// Error: 401 Unauthorized (credentials do not match an account)
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	token, st, err := h.svc.Login(req.Username, req.PIN)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, LoginResponse{Token: token, Statement: st})
}

// Statement returns the logged-in account's movements and totals in the
// session's current sort order.
//
// Method: GET
// Path: /statement
// Success: 200 OK
// Error: 401 Unauthorized (no active session for the token)
func (h *Handler) Statement(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Statement(bearerToken(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, st)
}

// ToggleSort flips between insertion order and ascending-by-amount order
// and returns the reordered statement.
//
// Method: POST
// Path: /sort
// Success: 200 OK
// Error: 401 Unauthorized (no active session for the token)
func (h *Handler) ToggleSort(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.ToggleSort(bearerToken(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, st)
}

// Transfer moves funds from the logged-in account to another account.
//
// Method: POST
// Path: /transfers
// Success: 200 OK with the updated statement
// Error: 400 Bad Request (invalid JSON or missing fields)
// Error: 401 Unauthorized (no active session for the token)
// Error: 404 Not Found (unknown recipient)
// Error: 422 Unprocessable Entity (bad amount, self-transfer, insufficient funds)
func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if !h.decode(w, r, &req) {
		return
	}

	st, err := h.svc.Transfer(bearerToken(r), req.To, req.Amount)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, st)
}

// RequestLoan schedules a loan for delayed approval. The movement appears
// in the statement once the approval delay has elapsed.
//
// Method: POST
// Path: /loans
// Success: 202 Accepted
// Error: 400 Bad Request (invalid JSON)
// Error: 401 Unauthorized (no active session for the token)
// Error: 422 Unprocessable Entity (bad amount or no qualifying movement)
func (h *Handler) RequestLoan(w http.ResponseWriter, r *http.Request) {
	var req LoanRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.RequestLoan(bearerToken(r), req.Amount); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// CloseAccount removes the logged-in account after re-confirming its
// credentials and ends the session.
//
// Method: DELETE
// Path: /account
// Success: 204 No Content
// Error: 400 Bad Request (invalid JSON or missing fields)
// Error: 401 Unauthorized (no session, or credentials do not match)
func (h *Handler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	var req CloseAccountRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.CloseAccount(bearerToken(r), req.Username, req.PIN); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health reports liveness.
//
// Method: GET
// Path: /health
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, struct {
		Timestamp time.Time `json:"timestamp"`
	}{Timestamp: time.Now()})
}

// decode unmarshals and validates a request body, writing the 400
// response itself on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

// writeError maps a domain error to its status code.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, bank.ErrInvalidCredentials), errors.Is(err, bank.ErrNoActiveSession):
		status = http.StatusUnauthorized
	case errors.Is(err, bank.ErrAccountNotFound):
		status = http.StatusNotFound
	case errors.Is(err, bank.ErrIneligibleTransfer), errors.Is(err, bank.ErrIneligibleLoan):
		status = http.StatusUnprocessableEntity
	default:
		h.logger.Error("unhandled error", "error", err)
		status = http.StatusInternalServerError
	}
	h.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("writing JSON response", "error", err)
	}
}

// bearerToken extracts the session token from the Authorization header.
// The "Bearer " prefix is optional.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	return strings.TrimPrefix(auth, "Bearer ")
}
