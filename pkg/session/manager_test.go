package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petdex/pkg/client"
)

type fakeAuthAPI struct {
	loginFn    func(username, password string) (string, error)
	registerFn func(username, password string, roles []string) (string, error)
}

func (f *fakeAuthAPI) Login(_ context.Context, username, password string) (string, error) {
	return f.loginFn(username, password)
}

func (f *fakeAuthAPI) Register(_ context.Context, username, password string, roles []string) (string, error) {
	return f.registerFn(username, password, roles)
}

func newTestManager(t *testing.T, api AuthAPI) (*Manager, *Store) {
	t.Helper()
	t.Setenv(tokenEnvVar, "")
	store := NewStoreAt(filepath.Join(t.TempDir(), "token"))
	return NewManager(api, store, nil), store
}

func TestRestoreWithoutToken(t *testing.T) {
	m, _ := newTestManager(t, nil)
	assert.Equal(t, StatusUnknown, m.Status())

	m.Restore()
	assert.Equal(t, StatusUnauthenticated, m.Status())
}

func TestRestoreValidToken(t *testing.T) {
	m, store := newTestManager(t, nil)
	require.NoError(t, store.Save(mintToken(t, "ash", "ROLE_USER,READ_PETS", time.Now().Add(time.Hour))))

	m.Restore()

	assert.Equal(t, StatusAuthenticated, m.Status())
	id := m.Identity()
	assert.Equal(t, "ash", id.Username)
	assert.Equal(t, []string{"USER"}, id.Roles)
	assert.Equal(t, []string{"READ_PETS"}, id.Permissions)
	assert.False(t, m.ExpiresAt().IsZero())
}

func TestRestoreExpiredTokenClearsStore(t *testing.T) {
	m, store := newTestManager(t, nil)
	require.NoError(t, store.Save(mintToken(t, "ash", "ROLE_USER", time.Now().Add(-time.Minute))))

	m.Restore()

	assert.Equal(t, StatusUnauthenticated, m.Status())
	assert.Empty(t, store.Token(), "expired token must be cleared from storage")
}

func TestRestoreMalformedTokenClearsStore(t *testing.T) {
	m, store := newTestManager(t, nil)
	require.NoError(t, store.Save("not-a-jwt"))

	m.Restore()

	assert.Equal(t, StatusUnauthenticated, m.Status())
	assert.Empty(t, store.Token(), "malformed token must be cleared from storage")
}

func TestLoginPersistsAndDerives(t *testing.T) {
	tok := mintToken(t, "ash", "ROLE_USER", time.Now().Add(time.Hour))
	api := &fakeAuthAPI{loginFn: func(username, password string) (string, error) {
		if username == "ash" && password == "pikachu1" {
			return tok, nil
		}
		return "", errors.New("bad credentials")
	}}
	m, store := newTestManager(t, api)

	require.NoError(t, m.Login(context.Background(), "ash", "pikachu1"))

	assert.Equal(t, StatusAuthenticated, m.Status())
	assert.Equal(t, "ash", m.Identity().Username)
	assert.Equal(t, tok, m.Token())
	assert.Equal(t, tok, store.Token(), "token must survive a restart")
}

func TestLoginFailureStaysUnauthenticated(t *testing.T) {
	api := &fakeAuthAPI{loginFn: func(string, string) (string, error) {
		return "", errors.New("bad credentials")
	}}
	m, store := newTestManager(t, api)

	err := m.Login(context.Background(), "ash", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed")
	assert.Equal(t, StatusUnauthenticated, m.Status())
	assert.Empty(t, store.Token())
}

func TestLoginAgainstStubBackend(t *testing.T) {
	tok := mintToken(t, "ash", "ROLE_USER", time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/log-in" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Username != "ash" || req.Password != "pikachu1" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "bad credentials"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"jwt": tok}) //nolint:errcheck
	}))
	defer srv.Close()

	t.Setenv(tokenEnvVar, "")
	store := NewStoreAt(filepath.Join(t.TempDir(), "token"))
	api := client.New(srv.URL, store)
	m := NewManager(api, store, nil)

	require.NoError(t, m.Login(context.Background(), "ash", "pikachu1"))
	assert.Equal(t, StatusAuthenticated, m.Status())
	assert.Equal(t, "ash", m.Identity().Username)
}

func TestRegisterAdoptsReturnedToken(t *testing.T) {
	tok := mintToken(t, "misty", "ROLE_USER", time.Now().Add(time.Hour))
	api := &fakeAuthAPI{registerFn: func(username, password string, roles []string) (string, error) {
		assert.Equal(t, []string{"USER"}, roles)
		return tok, nil
	}}
	m, _ := newTestManager(t, api)

	require.NoError(t, m.Register(context.Background(), "misty", "togepi99", []string{"USER"}))
	assert.Equal(t, StatusAuthenticated, m.Status())
	assert.Equal(t, "misty", m.Identity().Username)
}

func TestLogoutIsIdempotent(t *testing.T) {
	m, store := newTestManager(t, nil)
	require.NoError(t, store.Save(mintToken(t, "ash", "ROLE_USER", time.Now().Add(time.Hour))))
	m.Restore()
	require.Equal(t, StatusAuthenticated, m.Status())

	m.Logout()
	assert.Equal(t, StatusUnauthenticated, m.Status())
	assert.Empty(t, store.Token())
	assert.Empty(t, m.Token())
	assert.Empty(t, m.Identity().Username)

	m.Logout()
	assert.Equal(t, StatusUnauthenticated, m.Status())
}

func TestSubscribersObserveTransitions(t *testing.T) {
	tok := mintToken(t, "ash", "ROLE_USER", time.Now().Add(time.Hour))
	api := &fakeAuthAPI{loginFn: func(string, string) (string, error) { return tok, nil }}
	m, _ := newTestManager(t, api)

	var seen []Status
	m.Subscribe(func(s Status) { seen = append(seen, s) })

	require.NoError(t, m.Login(context.Background(), "ash", "pikachu1"))
	assert.Equal(t, []Status{StatusAuthenticating, StatusAuthenticated}, seen)
}

func TestStoreTokenEnvOverride(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, store.Save("file-token"))

	t.Setenv(tokenEnvVar, "env-token")
	assert.Equal(t, "env-token", store.Token())

	t.Setenv(tokenEnvVar, "")
	assert.Equal(t, "file-token", store.Token())
}

func TestStoreClearMissingFile(t *testing.T) {
	t.Setenv(tokenEnvVar, "")
	path := filepath.Join(t.TempDir(), "token")
	store := NewStoreAt(path)
	assert.NoError(t, store.Clear(), "clearing an empty store is not an error")

	require.NoError(t, store.Save("tok"))
	require.NoError(t, store.Clear())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "token file should be gone")
	assert.Empty(t, store.Token())
}
