// Package session owns the token/user pair. All mutation goes through
// the Manager; consumers read state through accessors and never touch
// the credential attachment directly.
package session

import (
	"context"
	"sync"

	"github.com/lefika/ripota/client"
	"github.com/lefika/ripota/client/credstore"
	"github.com/lefika/ripota/core/user"
)

type State int

const (
	Unauthenticated State = iota
	Resolving
	Authenticated
)

func (s State) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

const (
	loginFallbackMsg    = "Login failed"
	registerFallbackMsg = "Registration failed"
)

// API is the slice of the REST client the Manager drives.
type API interface {
	Login(ctx context.Context, email, password string) (client.LoginResponse, error)
	Register(ctx context.Context, nu user.NewUser) (user.User, error)
	Profile(ctx context.Context) (user.User, error)
	SetAuthToken(token string)
}

// Result is returned by Login; failures carry the server message or a
// generic fallback, never a panic or a raw transport error.
type Result struct {
	Success bool
	Error   string
}

type RegisterResult struct {
	Success bool
	Error   string
	User    user.User
}

// Manager is the session state machine. Invariant: user != nil iff
// token != "". The user is always fetched fresh on a token change,
// never decoded from the token.
type Manager struct {
	api   API
	store credstore.Store

	mut     sync.Mutex
	user    *user.User
	token   string
	loading bool

	wg sync.WaitGroup
}

// NewManager returns a Manager in the Resolving state; Start settles it.
func NewManager(api API, store credstore.Store) *Manager {
	return &Manager{api: api, store: store, loading: true}
}

// Start restores the stored token if any and resolves it against the
// profile endpoint in the background. Wait blocks until that first
// resolution settles.
func (m *Manager) Start(ctx context.Context) {
	token, err := m.store.Load()
	if err != nil || token == "" {
		m.mut.Lock()
		m.loading = false
		m.mut.Unlock()
		return
	}

	m.mut.Lock()
	m.token = token
	m.loading = true
	m.mut.Unlock()
	m.api.SetAuthToken(token)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.resolveProfile(ctx, token)
	}()
}

// Wait blocks until in-flight profile resolutions settle.
func (m *Manager) Wait() { m.wg.Wait() }

// resolveProfile fetches the profile for token and applies the result
// only if token is still current. A failed fetch for the current token
// is the sole point where a stored-but-invalid token is purged.
func (m *Manager) resolveProfile(ctx context.Context, token string) {
	usr, err := m.api.Profile(ctx)

	m.mut.Lock()
	if m.token != token { // stale; a newer token won
		m.mut.Unlock()
		return
	}
	if err != nil {
		m.user = nil
		m.token = ""
		m.loading = false
		m.mut.Unlock()
		m.api.SetAuthToken("")
		m.store.Clear() //nolint:errcheck
		return
	}
	m.user = &usr
	m.loading = false
	m.mut.Unlock()
}

// Login authenticates and, on success, applies token and user from the
// same response without a profile re-fetch. On failure the session is
// left untouched.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return Result{Error: errMessage(err, loginFallbackMsg)}
	}

	m.mut.Lock()
	m.token = resp.Token
	usr := resp.User
	m.user = &usr
	m.loading = false
	m.mut.Unlock()
	m.api.SetAuthToken(resp.Token)
	// the session is live even if persisting fails; the token just
	// won't survive a restart
	m.store.Save(resp.Token) //nolint:errcheck
	return Result{Success: true}
}

// Register creates an account. It never mutates session state; the user
// still logs in explicitly.
func (m *Manager) Register(ctx context.Context, nu user.NewUser) RegisterResult {
	usr, err := m.api.Register(ctx, nu)
	if err != nil {
		return RegisterResult{Error: errMessage(err, registerFallbackMsg)}
	}
	return RegisterResult{Success: true, User: usr}
}

// Logout clears store, in-memory state and the outbound credential.
// It is synchronous and has no failure mode.
func (m *Manager) Logout() {
	m.mut.Lock()
	m.token = ""
	m.user = nil
	m.loading = false
	m.mut.Unlock()
	m.api.SetAuthToken("")
	m.store.Clear() //nolint:errcheck
}

func (m *Manager) State() State {
	m.mut.Lock()
	defer m.mut.Unlock()
	if m.loading {
		return Resolving
	}
	if m.user != nil {
		return Authenticated
	}
	return Unauthenticated
}

func (m *Manager) User() *user.User {
	m.mut.Lock()
	defer m.mut.Unlock()
	return m.user
}

func (m *Manager) Token() string {
	m.mut.Lock()
	defer m.mut.Unlock()
	return m.token
}

func (m *Manager) Loading() bool {
	m.mut.Lock()
	defer m.mut.Unlock()
	return m.loading
}

func errMessage(err error, fallback string) string {
	if apiErr, ok := err.(*client.APIError); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
