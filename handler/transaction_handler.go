package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Therakar/banklist/model"
	"github.com/Therakar/banklist/session"
	"github.com/Therakar/banklist/storage"

	"github.com/gorilla/mux"
)

// TransactionHandler holds dependencies for the mutating account operations.
type TransactionHandler struct {
	sessions *SessionRegistry
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(sessions *SessionRegistry) *TransactionHandler {
	return &TransactionHandler{sessions: sessions}
}

// TransferHandler moves funds from the current account to another account.
// It expects a JSON body with "to" and "amount". A rejected transfer leaves
// both accounts untouched.
//
// Method: POST
// Path: /sessions/{token}/transfers
// Success: 200 OK
// Error: 400 Bad Request (for invalid JSON)
// Error: 401 Unauthorized (unknown token)
// Error: 404 Not Found (unknown recipient)
// Error: 422 Unprocessable Entity (non-positive amount, self-transfer, insufficient funds)
func (h *TransactionHandler) TransferHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req model.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := sess.Transfer(req.To, req.Amount); err != nil {
		writeOperationError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// LoanHandler credits a loan to the current account if some past deposit
// covers at least 10% of the requested amount.
// It expects a JSON body with "amount".
//
// Method: POST
// Path: /sessions/{token}/loans
// Success: 200 OK
// Error: 400 Bad Request (for invalid JSON)
// Error: 401 Unauthorized (unknown token)
// Error: 422 Unprocessable Entity (non-positive amount, insufficient collateral)
func (h *TransactionHandler) LoanHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req model.LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := sess.RequestLoan(req.Amount); err != nil {
		writeOperationError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// CloseAccountHandler removes the current account from the bank after the
// caller re-confirms its username and PIN, then revokes the session token.
//
// Method: DELETE
// Path: /sessions/{token}/account
// Success: 204 No Content
// Error: 400 Bad Request (for invalid JSON)
// Error: 401 Unauthorized (unknown token, or confirmation mismatch)
func (h *TransactionHandler) CloseAccountHandler(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	sess, ok := h.sessions.Get(token)
	if !ok {
		http.Error(w, "Unknown session token", http.StatusUnauthorized)
		return
	}

	var req model.CloseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := sess.CloseAccount(req.Username, req.PIN); err != nil {
		if errors.Is(err, session.ErrConfirmMismatch) {
			http.Error(w, "Confirmation credentials do not match", http.StatusUnauthorized)
			return
		}
		writeOperationError(w, err)
		return
	}

	h.sessions.Revoke(token)
	w.WriteHeader(http.StatusNoContent)
}

// resolve maps the {token} path variable to a live session, answering 401
// itself when the token is unknown.
func (h *TransactionHandler) resolve(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	token := mux.Vars(r)["token"]
	sess, ok := h.sessions.Get(token)
	if !ok {
		http.Error(w, "Unknown session token", http.StatusUnauthorized)
		return nil, false
	}
	return sess, true
}

// writeOperationError maps business-rule failures to HTTP status codes.
func writeOperationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "Account not found", http.StatusNotFound)
	case errors.Is(err, session.ErrInvalidAmount),
		errors.Is(err, session.ErrSelfTransfer),
		errors.Is(err, session.ErrNoCollateral),
		errors.Is(err, storage.ErrInsufficientFunds):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.Printf("Error executing operation: %v", err)
		http.Error(w, "Failed to process operation", http.StatusInternalServerError)
	}
}
