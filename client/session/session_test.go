package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lefika/ripota/client"
	"github.com/lefika/ripota/client/credstore"
	"github.com/lefika/ripota/core/user"
)

type fakeAPI struct {
	mut sync.Mutex

	token        string
	profileCalls int

	profileUser user.User
	profileErr  error
	profileGate chan struct{} // when set, Profile blocks until closed

	loginResp client.LoginResponse
	loginErr  error

	registerUser user.User
	registerErr  error
}

func (a *fakeAPI) Login(context.Context, string, string) (client.LoginResponse, error) {
	return a.loginResp, a.loginErr
}

func (a *fakeAPI) Register(context.Context, user.NewUser) (user.User, error) {
	return a.registerUser, a.registerErr
}

func (a *fakeAPI) Profile(context.Context) (user.User, error) {
	a.mut.Lock()
	a.profileCalls++
	gate := a.profileGate
	a.mut.Unlock()
	if gate != nil {
		<-gate
	}
	return a.profileUser, a.profileErr
}

func (a *fakeAPI) SetAuthToken(token string) {
	a.mut.Lock()
	a.token = token
	a.mut.Unlock()
}

func (a *fakeAPI) authToken() string {
	a.mut.Lock()
	defer a.mut.Unlock()
	return a.token
}

var testUser = user.User{ID: "u1", Name: "Thabo Mokoena", Email: "thabo@test.ls", Role: user.RoleLecturer}

func Test_Manager_startNoToken(t *testing.T) {
	api := &fakeAPI{}
	m := NewManager(api, credstore.NewMemStore(""))
	assert.Equal(t, Resolving, m.State())

	m.Start(context.Background())
	m.Wait()

	assert.Equal(t, Unauthenticated, m.State())
	assert.False(t, m.Loading())
	assert.Zero(t, api.profileCalls)
}

func Test_Manager_startValidToken(t *testing.T) {
	api := &fakeAPI{profileUser: testUser}
	store := credstore.NewMemStore("tok-1")
	m := NewManager(api, store)

	m.Start(context.Background())
	m.Wait()

	assert.Equal(t, Authenticated, m.State())
	assert.Equal(t, "tok-1", m.Token())
	assert.Equal(t, "tok-1", api.authToken())
	if assert.NotNil(t, m.User()) {
		assert.Equal(t, testUser.Email, m.User().Email)
	}
}

// A stored token rejected by the profile fetch is purged everywhere.
func Test_Manager_startInvalidToken(t *testing.T) {
	api := &fakeAPI{profileErr: &client.APIError{StatusCode: 401, Message: "invalid token"}}
	store := credstore.NewMemStore("stale-tok")
	m := NewManager(api, store)

	m.Start(context.Background())
	m.Wait()

	assert.Equal(t, Unauthenticated, m.State())
	assert.Empty(t, m.Token())
	assert.Nil(t, m.User())
	assert.Empty(t, api.authToken())
	saved, _ := store.Load()
	assert.Empty(t, saved)
}

func Test_Manager_login(t *testing.T) {
	t.Run("success applies token and user without re-fetch", func(t *testing.T) {
		api := &fakeAPI{loginResp: client.LoginResponse{Token: "tok-9", User: testUser}}
		store := credstore.NewMemStore("")
		m := NewManager(api, store)
		m.Start(context.Background())
		m.Wait()

		res := m.Login(context.Background(), testUser.Email, "s3cr3t")

		assert.True(t, res.Success)
		assert.Empty(t, res.Error)
		assert.Equal(t, Authenticated, m.State())
		assert.Equal(t, "tok-9", m.Token())
		assert.Equal(t, "tok-9", api.authToken())
		saved, _ := store.Load()
		assert.Equal(t, "tok-9", saved)
		assert.Zero(t, api.profileCalls)
	})

	t.Run("failure surfaces server message, session untouched", func(t *testing.T) {
		api := &fakeAPI{loginErr: &client.APIError{StatusCode: 400, Message: "Invalid email or password"}}
		store := credstore.NewMemStore("")
		m := NewManager(api, store)
		m.Start(context.Background())
		m.Wait()

		res := m.Login(context.Background(), testUser.Email, "wrong")

		assert.False(t, res.Success)
		assert.Equal(t, "Invalid email or password", res.Error)
		assert.Equal(t, Unauthenticated, m.State())
		assert.Empty(t, m.Token())
		saved, _ := store.Load()
		assert.Empty(t, saved)
	})

	t.Run("transport failure falls back to generic message", func(t *testing.T) {
		api := &fakeAPI{loginErr: context.DeadlineExceeded}
		m := NewManager(api, credstore.NewMemStore(""))

		res := m.Login(context.Background(), testUser.Email, "s3cr3t")

		assert.False(t, res.Success)
		assert.Equal(t, "Login failed", res.Error)
	})
}

func Test_Manager_register(t *testing.T) {
	t.Run("success never mutates session", func(t *testing.T) {
		api := &fakeAPI{registerUser: testUser}
		m := NewManager(api, credstore.NewMemStore(""))
		m.Start(context.Background())
		m.Wait()

		res := m.Register(context.Background(), user.NewUser{Name: testUser.Name, Email: testUser.Email})

		assert.True(t, res.Success)
		assert.Equal(t, testUser.Email, res.User.Email)
		assert.Equal(t, Unauthenticated, m.State())
		assert.Empty(t, api.authToken())
	})

	t.Run("failure falls back to generic message", func(t *testing.T) {
		api := &fakeAPI{registerErr: context.DeadlineExceeded}
		m := NewManager(api, credstore.NewMemStore(""))

		res := m.Register(context.Background(), user.NewUser{})

		assert.False(t, res.Success)
		assert.Equal(t, "Registration failed", res.Error)
	})
}

// login then logout leaves the store empty and the session cleared.
func Test_Manager_loginLogoutRoundTrip(t *testing.T) {
	api := &fakeAPI{loginResp: client.LoginResponse{Token: "tok-2", User: testUser}}
	store := credstore.NewMemStore("")
	m := NewManager(api, store)
	m.Start(context.Background())
	m.Wait()

	res := m.Login(context.Background(), testUser.Email, "s3cr3t")
	assert.True(t, res.Success)

	m.Logout()

	assert.Equal(t, Unauthenticated, m.State())
	assert.Nil(t, m.User())
	assert.Empty(t, m.Token())
	assert.Empty(t, api.authToken())
	saved, _ := store.Load()
	assert.Empty(t, saved)
}

// A profile fetch still in flight for an old token must not overwrite
// the resolution of a newer token.
func Test_Manager_staleResolutionDiscarded(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAPI{
		profileGate: gate,
		profileErr:  &client.APIError{StatusCode: 401, Message: "invalid token"},
		loginResp:   client.LoginResponse{Token: "tok-new", User: testUser},
	}
	store := credstore.NewMemStore("tok-old")
	m := NewManager(api, store)

	m.Start(context.Background()) // resolving tok-old, blocked on gate
	assert.Equal(t, Resolving, m.State())

	res := m.Login(context.Background(), testUser.Email, "s3cr3t")
	assert.True(t, res.Success)

	close(gate) // tok-old resolution fails late
	m.Wait()

	// the stale failure must not purge the new session
	assert.Equal(t, Authenticated, m.State())
	assert.Equal(t, "tok-new", m.Token())
	assert.Equal(t, "tok-new", api.authToken())
	saved, _ := store.Load()
	assert.Equal(t, "tok-new", saved)
}
