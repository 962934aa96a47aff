package session

import (
	"context"
	"fmt"

	"stayfront/internal/api"
	"stayfront/internal/domain/user"
)

// AuthClient are the two backend calls that mint a credential.
type AuthClient interface {
	Login(ctx context.Context, creds api.Credentials) (api.AuthResponse, error)
	Register(ctx context.Context, params api.RegisterParams) (api.AuthResponse, error)
}

// Manager is the single owner of session state. Components that need the
// current identity ask it explicitly instead of reading ambient storage.
// It doubles as the api client's token source.
type Manager struct {
	Auth  AuthClient
	Store Store
}

func NewManager(auth AuthClient, store Store) *Manager {
	return &Manager{Auth: auth, Store: store}
}

// Login exchanges credentials for a session and persists it.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	resp, err := m.Auth.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return Session{}, err
	}
	return m.adopt(resp)
}

// Register creates an account and persists the resulting session.
func (m *Manager) Register(ctx context.Context, params api.RegisterParams) (Session, error) {
	resp, err := m.Auth.Register(ctx, params)
	if err != nil {
		return Session{}, err
	}
	return m.adopt(resp)
}

// Logout wipes the persisted session wholesale.
func (m *Manager) Logout() error {
	return m.Store.Clear()
}

// Current returns the active session, if any.
func (m *Manager) Current() (Session, bool) {
	s, err := m.Store.Load()
	if err != nil {
		return Session{}, false
	}
	return s, true
}

// Token implements the api token source.
func (m *Manager) Token() (string, bool) {
	s, ok := m.Current()
	if !ok {
		return "", false
	}
	return s.Token, true
}

func (m *Manager) adopt(resp api.AuthResponse) (Session, error) {
	role, err := user.ParseRole(resp.Role)
	if err != nil {
		return Session{}, fmt.Errorf("session: backend issued unknown role %q: %w", resp.Role, err)
	}
	s := Session{Token: resp.Token, Role: role, Name: resp.Name, Email: resp.Email}
	if err := m.Store.Save(s); err != nil {
		return Session{}, err
	}
	return s, nil
}

var _ api.TokenSource = (*Manager)(nil)
