package model

import "github.com/shopspring/decimal"

// Package model defines the data structures used in the banking application.

// Why we have used external package "github.com/shopspring/decimal"?
// The "github.com/shopspring/decimal" package is used for precise decimal arithmetic.
// It is particularly useful in financial applications where floating-point arithmetic can lead to inaccuracies.
// Business rules like the interest threshold (drop per-deposit interest below 1)
// and the 10% collateral check for loans compare exact amounts, so every
// monetary value in this application is a decimal.Decimal, never a float64.

// Account represents a bank account with its owner, credentials,
// interest rate and full movement history.
//
// Username is derived once from Owner (lowercase initials of each word, in
// word order) when the account enters the store, and Owner is never mutated
// afterwards, so the derived value cannot go stale.
type Account struct {
	Owner        string            `json:"owner"`
	Username     string            `json:"username"`
	PIN          int               `json:"-"`
	InterestRate decimal.Decimal   `json:"interest_rate"`
	Movements    []decimal.Decimal `json:"movements"`
}

// LoginRequest defines the expected JSON body for opening a session.
type LoginRequest struct {
	Username string `json:"username"`
	PIN      int    `json:"pin"`
}

// LoginResponse is returned on successful login. Owner is included so the
// client can greet the user by name.
type LoginResponse struct {
	Token    string `json:"token"`
	Owner    string `json:"owner"`
	Username string `json:"username"`
}

// TransferRequest defines the expected JSON body for a transfer.
type TransferRequest struct {
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// LoanRequest defines the expected JSON body for requesting a loan.
type LoanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CloseRequest defines the expected JSON body for closing an account.
// Username and PIN must match the logged-in account.
type CloseRequest struct {
	Username string `json:"username"`
	PIN      int    `json:"pin"`
}

// Summary carries the display-ready aggregate figures for an account.
// Out is the magnitude of the outgoing sum; the signed value is what the
// core computes, the presentation flips it (see handler).
type Summary struct {
	Owner     string            `json:"owner"`
	Username  string            `json:"username"`
	Balance   decimal.Decimal   `json:"balance"`
	In        decimal.Decimal   `json:"in"`
	Out       decimal.Decimal   `json:"out"`
	Interest  decimal.Decimal   `json:"interest"`
	Movements []decimal.Decimal `json:"movements,omitempty"`
}
