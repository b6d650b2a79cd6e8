package session

import (
	"sync"

	"github.com/celerix-dev/ivr-reports/pkg/schema"
)

// Persister is the slice of Store that AuthState needs.
type Persister interface {
	SetSession(u schema.User) error
	GetSession() *schema.User
	ClearSession() error
}

// AuthState is the in-memory view of who is logged in. The stored session is
// read once, when the state is created; after that every change goes through
// Login and Logout, which write through to the persister.
type AuthState struct {
	mu    sync.RWMutex
	store Persister
	user  *schema.User
}

// NewAuthState performs the one-time session read.
func NewAuthState(store Persister) *AuthState {
	return &AuthState{store: store, user: store.GetSession()}
}

// User returns a copy of the current user, or nil.
func (a *AuthState) User() *schema.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

// LoggedIn reports whether a user is set.
func (a *AuthState) LoggedIn() bool {
	return a.User() != nil
}

// Login stores u as the current user.
func (a *AuthState) Login(u schema.User) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.store.SetSession(u); err != nil {
		return err
	}
	a.user = &u
	return nil
}

// Logout forgets the current user.
func (a *AuthState) Logout() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = nil
	return a.store.ClearSession()
}
