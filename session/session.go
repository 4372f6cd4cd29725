// Package session implements the business rules of the banking demo: login,
// transfers, loan requests and account closure, all scoped to the single
// "current account" of a login session.
//
// Business-rule violations (bad amount, unknown recipient, insufficient
// funds, ...) are reported as errors and leave the ledger untouched. Calling
// a mutating operation with nobody logged in is a caller-sequencing bug and
// panics.
package session

import (
	"errors"

	"github.com/Therakar/banklist/model"
	"github.com/Therakar/banklist/storage"

	"github.com/shopspring/decimal"
)

// Custom errors for the business-rule layer. Storage-level failures
// (storage.ErrNotFound, storage.ErrInsufficientFunds) pass through as-is.
var (
	ErrLoginFailed     = errors.New("invalid username or pin")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrSelfTransfer    = errors.New("cannot transfer to own account")
	ErrNoCollateral    = errors.New("no deposit covers 10% of the requested amount")
	ErrConfirmMismatch = errors.New("confirmation credentials do not match")
)

// collateralShare is the fraction of a requested loan that at least one past
// deposit must reach before the loan is granted.
var collateralShare = decimal.RequireFromString("0.1")

// Session tracks the current account of one logged-in user and applies the
// account operations against the shared store.
type Session struct {
	store   storage.Store
	current *model.Account
}

// New returns a session with no account logged in.
func New(store storage.Store) *Session {
	return &Session{store: store}
}

// Login looks up the account by username and checks the PIN. On success the
// account becomes the session's current account and a copy is returned.
// Unknown username and wrong PIN are reported identically.
func (s *Session) Login(username string, pin int) (*model.Account, error) {
	acc, err := s.store.FindByUsername(username)
	if err != nil {
		return nil, ErrLoginFailed
	}
	if acc.PIN != pin {
		return nil, ErrLoginFailed
	}
	s.current = acc
	cp := *acc
	return &cp, nil
}

// LoggedIn reports whether the session has a current account.
func (s *Session) LoggedIn() bool {
	return s.current != nil
}

// Account returns a fresh copy of the current account, re-read from the
// store so its movement history reflects every operation so far.
// Panics if nobody is logged in.
func (s *Session) Account() (*model.Account, error) {
	return s.store.FindByUsername(s.mustCurrent().Username)
}

// Transfer moves amount from the current account to the account with the
// given username. It fails without touching either account if the amount is
// not positive, the recipient does not exist, the recipient is the current
// account itself, or the current balance does not cover the amount.
func (s *Session) Transfer(toUsername string, amount decimal.Decimal) error {
	cur := s.mustCurrent()
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if toUsername == cur.Username {
		return ErrSelfTransfer
	}
	return s.store.ExecuteTransfer(cur.Username, toUsername, amount)
}

// RequestLoan credits amount to the current account, but only if some past
// movement demonstrates at least 10% of the requested amount as collateral.
func (s *Session) RequestLoan(amount decimal.Decimal) error {
	cur := s.mustCurrent()
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	acc, err := s.store.FindByUsername(cur.Username)
	if err != nil {
		return err
	}
	required := amount.Mul(collateralShare)
	if !hasMovementAtLeast(acc.Movements, required) {
		return ErrNoCollateral
	}
	return s.store.AppendMovement(cur.Username, amount)
}

// CloseAccount removes the current account from the store after the caller
// re-confirms its username and PIN. On success the session is logged out.
func (s *Session) CloseAccount(confirmUsername string, confirmPIN int) error {
	cur := s.mustCurrent()
	if confirmUsername != cur.Username || confirmPIN != cur.PIN {
		return ErrConfirmMismatch
	}
	if err := s.store.RemoveAccount(cur.Username); err != nil {
		return err
	}
	s.current = nil
	return nil
}

func (s *Session) mustCurrent() *model.Account {
	if s.current == nil {
		panic("session: no account logged in")
	}
	return s.current
}

func hasMovementAtLeast(movements []decimal.Decimal, threshold decimal.Decimal) bool {
	for _, mov := range movements {
		if mov.GreaterThanOrEqual(threshold) {
			return true
		}
	}
	return false
}
