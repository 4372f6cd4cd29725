// storage/memory.go

package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Therakar/banklist/model"

	"github.com/shopspring/decimal"
)

// Custom errors for the storage layer.
var (
	ErrNotFound          = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Store defines the interface for ledger operations.
type Store interface {
	Accounts() []model.Account
	FindByUsername(username string) (*model.Account, error)
	AppendMovement(username string, amount decimal.Decimal) error
	ExecuteTransfer(fromUsername, toUsername string, amount decimal.Decimal) error
	RemoveAccount(username string) error
}

// MemoryStore implements the Store interface with an in-memory account list.
// The list is ordered (insertion order is the "unsorted" display order) and
// every read hands out copies, so callers can never mutate stored movement
// histories behind the store's back.
type MemoryStore struct {
	mu       sync.Mutex
	accounts []*model.Account
}

// NewMemoryStore creates a MemoryStore over the given accounts, deriving each
// account's username from its owner name. Usernames must be unique; a clash
// is a construction error, not something to discover at lookup time.
func NewMemoryStore(accounts ...*model.Account) (*MemoryStore, error) {
	seen := make(map[string]struct{}, len(accounts))
	for _, acc := range accounts {
		acc.Username = model.DeriveUsername(acc.Owner)
		if _, dup := seen[acc.Username]; dup {
			return nil, fmt.Errorf("duplicate username %q", acc.Username)
		}
		seen[acc.Username] = struct{}{}
	}
	return &MemoryStore{accounts: accounts}, nil
}

// Accounts returns a copy of every account in insertion order.
func (s *MemoryStore) Accounts() []model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, *copyAccount(acc))
	}
	return out
}

// FindByUsername retrieves a single account by its username.
func (s *MemoryStore) FindByUsername(username string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.find(username)
	if acc == nil {
		return nil, ErrNotFound
	}
	return copyAccount(acc), nil
}

// AppendMovement appends a single signed movement to an account's history.
func (s *MemoryStore) AppendMovement(username string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.find(username)
	if acc == nil {
		return ErrNotFound
	}
	acc.Movements = append(acc.Movements, amount)
	return nil
}

// ExecuteTransfer moves amount between two accounts by appending a withdrawal
// to the source and a matching deposit to the destination. Both legs happen
// inside one critical section, with the source balance recomputed from its
// current movements, so a rejected transfer changes neither account.
func (s *MemoryStore) ExecuteTransfer(fromUsername, toUsername string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.find(fromUsername)
	to := s.find(toUsername)
	if from == nil || to == nil {
		return ErrNotFound
	}
	if amount.GreaterThan(model.Balance(from.Movements)) {
		return ErrInsufficientFunds
	}

	from.Movements = append(from.Movements, amount.Neg())
	to.Movements = append(to.Movements, amount)
	return nil
}

// RemoveAccount permanently deletes the account with the given username.
func (s *MemoryStore) RemoveAccount(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, acc := range s.accounts {
		if acc.Username == username {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// find locates an account by username. Caller must hold s.mu.
func (s *MemoryStore) find(username string) *model.Account {
	for _, acc := range s.accounts {
		if acc.Username == username {
			return acc
		}
	}
	return nil
}

// copyAccount returns a copy whose movement slice is detached from the
// stored one.
func copyAccount(acc *model.Account) *model.Account {
	cp := *acc
	cp.Movements = make([]decimal.Decimal, len(acc.Movements))
	copy(cp.Movements, acc.Movements)
	return &cp
}
