package handler

import (
	"sync"

	"github.com/Therakar/banklist/model"
	"github.com/Therakar/banklist/session"
	"github.com/Therakar/banklist/storage"

	"github.com/google/uuid"
)

// SessionRegistry maps opaque tokens to login sessions. HTTP is stateless,
// so the "current account" slot of each session lives here between requests.
type SessionRegistry struct {
	mu       sync.Mutex
	store    storage.Store
	sessions map[string]*session.Session
}

// NewSessionRegistry creates an empty registry over the given store.
func NewSessionRegistry(store storage.Store) *SessionRegistry {
	return &SessionRegistry{
		store:    store,
		sessions: make(map[string]*session.Session),
	}
}

// Login attempts a login and, on success, registers the session under a
// fresh token.
func (r *SessionRegistry) Login(username string, pin int) (string, *model.Account, error) {
	sess := session.New(r.store)
	acc, err := sess.Login(username, pin)
	if err != nil {
		return "", nil, err
	}
	token := uuid.NewString()
	r.mu.Lock()
	r.sessions[token] = sess
	r.mu.Unlock()
	return token, acc, nil
}

// Get returns the session registered under token, if any.
func (r *SessionRegistry) Get(token string) (*session.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[token]
	return sess, ok
}

// Revoke forgets the session registered under token.
func (r *SessionRegistry) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}
