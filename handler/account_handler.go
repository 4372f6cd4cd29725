package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Therakar/banklist/model"
	"github.com/Therakar/banklist/session"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// AccountHandler holds dependencies for login and account query handlers.
type AccountHandler struct {
	sessions *SessionRegistry
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(sessions *SessionRegistry) *AccountHandler {
	return &AccountHandler{sessions: sessions}
}

// LoginHandler opens a session for a username/PIN pair.
// It expects a JSON body with "username" and "pin".
//
// Method: POST
// Path: /sessions
// Success: 201 Created with a session token
// Error: 400 Bad Request (for invalid JSON)
// Error: 401 Unauthorized (unknown username or wrong PIN)
func (h *AccountHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, acc, err := h.sessions.Login(req.Username, req.PIN)
	if err != nil {
		http.Error(w, "Invalid username or PIN", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusCreated, model.LoginResponse{
		Token:    token,
		Owner:    acc.Owner,
		Username: acc.Username,
	})
}

// GetSummaryHandler returns the current account's display figures: balance,
// total in, total out and interest, all recomputed from the movement history.
// The outgoing total is returned as a magnitude, ready for display.
//
// Method: GET
// Path: /sessions/{token}/account
// Success: 200 OK
// Error: 401 Unauthorized (unknown token)
// Error: 404 Not Found (account was closed)
func (h *AccountHandler) GetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolve(w, r)
	if !ok {
		return
	}

	acc, err := sess.Account()
	if err != nil {
		http.Error(w, "Account no longer exists", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, model.Summary{
		Owner:    acc.Owner,
		Username: acc.Username,
		Balance:  model.Balance(acc.Movements),
		In:       model.Income(acc.Movements),
		Out:      model.Outgoing(acc.Movements).Abs(),
		Interest: model.Interest(acc.Movements, acc.InterestRate),
	})
}

// GetMovementsHandler returns the current account's movement history, in
// insertion order by default or as an ascending-sorted copy when the
// "sorted" query parameter is "true". The stored order is never changed;
// the client keeps the sort-toggle state and re-requests with the flag.
//
// Method: GET
// Path: /sessions/{token}/movements?sorted=true
// Success: 200 OK
// Error: 401 Unauthorized (unknown token)
// Error: 404 Not Found (account was closed)
func (h *AccountHandler) GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolve(w, r)
	if !ok {
		return
	}

	acc, err := sess.Account()
	if err != nil {
		http.Error(w, "Account no longer exists", http.StatusNotFound)
		return
	}

	movs := acc.Movements
	if r.URL.Query().Get("sorted") == "true" {
		movs = model.SortedMovements(movs)
	}
	if movs == nil {
		movs = []decimal.Decimal{}
	}

	writeJSON(w, http.StatusOK, movs)
}

// resolve maps the {token} path variable to a live session, answering 401
// itself when the token is unknown.
func (h *AccountHandler) resolve(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	token := mux.Vars(r)["token"]
	sess, ok := h.sessions.Get(token)
	if !ok {
		http.Error(w, "Unknown session token", http.StatusUnauthorized)
		return nil, false
	}
	return sess, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}
