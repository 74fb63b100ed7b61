// Package session holds the single active identity of the client.
//
// The session is a weak reference: just the normalised email of a user
// record, resolved through the User Store by whoever needs the record. A
// durable session is written under the "loggedInUser" key and survives a
// restart. An ephemeral one lives only in memory.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/marketfeed/internal/client/repositories/users"
	"github.com/dmitrijs2005/marketfeed/internal/client/storage"
)

type State string

const (
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

type Manager struct {
	mu         sync.Mutex
	store      storage.Store
	email      string
	persistent bool
}

func NewManager(store storage.Store) *Manager {
	return &Manager{store: store}
}

// Restore loads a durable session left by a previous run, if any.
func (m *Manager) Restore(ctx context.Context) (string, bool, error) {
	raw, err := m.store.Get(ctx, storage.KeyLoggedInUser)
	if err != nil {
		return "", false, fmt.Errorf("failed to read session: %w", err)
	}
	email := users.Normalize(string(raw))

	m.mu.Lock()
	defer m.mu.Unlock()
	if email == "" {
		return "", false, nil
	}
	m.email, m.persistent = email, true
	return email, true, nil
}

func (m *Manager) Current() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.email, m.email != ""
}

// Persistent reports whether the active session is durable.
func (m *Manager) Persistent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.email != "" && m.persistent
}

func (m *Manager) State() State {
	if _, ok := m.Current(); ok {
		return StateAuthenticated
	}
	return StateAnonymous
}

// Establish replaces any current session with email. With persist the
// email is written to the store; without it any stored value is removed
// and the session ends with the process.
func (m *Manager) Establish(ctx context.Context, email string, persist bool) error {
	email = users.Normalize(email)

	var err error
	if persist {
		err = m.store.Set(ctx, storage.KeyLoggedInUser, []byte(email))
	} else {
		err = m.store.Delete(ctx, storage.KeyLoggedInUser)
	}
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	m.mu.Lock()
	m.email, m.persistent = email, persist
	m.mu.Unlock()
	return nil
}

// Clear ends the session. The in-memory reference is dropped even when
// the stored one cannot be removed.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.email, m.persistent = "", false
	m.mu.Unlock()

	if err := m.store.Delete(ctx, storage.KeyLoggedInUser); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
