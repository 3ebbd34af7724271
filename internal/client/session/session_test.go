package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/anudeepmamidala/Banking-System/internal/client/api"
	"github.com/anudeepmamidala/Banking-System/internal/client/storage"
	"github.com/anudeepmamidala/Banking-System/internal/shared/models"
)

type env struct {
	manager *Manager
	store   *storage.Store
	api     *api.Client
}

func newEnv(t *testing.T, handler http.Handler) *env {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	apiClient := api.New(srv.URL)
	store := storage.New(t.TempDir())
	return &env{manager: NewManager(apiClient, store, nil), store: store, api: apiClient}
}

func writeJSON(w http.ResponseWriter, status int, v string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(v))
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "1", "exp": exp.Unix()}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	require.NoError(t, err)
	return tok
}

func TestLoginSuccess(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, `{"accessToken":"acc-1","refreshToken":"ref-1"}`)
	})
	e := newEnv(t, r)

	require.Equal(t, StateUnauthenticated, e.manager.State())
	require.NoError(t, e.manager.Login(context.Background(), "u@example.com", "secret1"))

	require.Equal(t, StateAuthenticated, e.manager.State())
	user, ok := e.manager.User()
	require.True(t, ok)
	require.Equal(t, "u@example.com", user.Email)
	require.Equal(t, "User", user.DisplayName)
	require.True(t, e.manager.Loading(), "profile refresh pending after login")

	require.Equal(t, "acc-1", e.store.Token())
	require.Equal(t, "ref-1", e.store.Refresh())
	cached, ok := e.store.Profile()
	require.True(t, ok)
	require.Equal(t, "u@example.com", cached.Email)
	require.Equal(t, "acc-1", e.api.Token())
}

func TestLoginRejected(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"message":"invalid credentials"}`)
	})
	e := newEnv(t, r)

	err := e.manager.Login(context.Background(), "u@example.com", "wrong")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, http.StatusUnauthorized, authErr.Status)
	require.Equal(t, "invalid credentials", authErr.Message)

	require.Equal(t, StateUnauthenticated, e.manager.State())
	_, ok := e.manager.User()
	require.False(t, ok)
	require.Empty(t, e.store.Token())
	_, ok = e.store.Profile()
	require.False(t, ok)
}

func TestRegisterDoesNotEstablishSession(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/register", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusCreated, `{"id":1,"email":"u@example.com"}`)
	})
	e := newEnv(t, r)

	require.NoError(t, e.manager.Register(context.Background(), "u@example.com", "secret1", "Ursula"))
	require.Equal(t, StateUnauthenticated, e.manager.State())
	require.Empty(t, e.store.Token())
}

func TestRegisterConflict(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/register", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"message":"email already exists"}`)
	})
	e := newEnv(t, r)

	err := e.manager.Register(context.Background(), "u@example.com", "secret1", "Ursula")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "email already exists", authErr.Message)
}

func TestHydrateReplacesProfile(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, `{"accessToken":"acc-1"}`)
	})
	r.Get("/auth/profile", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer acc-1" {
			writeJSON(w, http.StatusUnauthorized, `{"message":"missing bearer token"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":7,"email":"u@example.com","displayName":"Ursula"}`)
	})
	e := newEnv(t, r)

	require.NoError(t, e.manager.Login(context.Background(), "u@example.com", "secret1"))
	e.manager.Hydrate(context.Background())

	require.False(t, e.manager.Loading())
	user, ok := e.manager.User()
	require.True(t, ok)
	require.Equal(t, int64(7), user.ID)
	require.Equal(t, "Ursula", user.DisplayName)

	cached, ok := e.store.Profile()
	require.True(t, ok)
	require.Equal(t, "Ursula", cached.DisplayName)
}

func TestHydrateFailureFallsBackToPartialProfile(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, `{"accessToken":"acc-1"}`)
	})
	r.Get("/auth/profile", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
	})
	e := newEnv(t, r)

	require.NoError(t, e.manager.Login(context.Background(), "u@example.com", "secret1"))
	e.manager.Hydrate(context.Background())

	// never stuck loading, still authenticated with the synthesized profile
	require.False(t, e.manager.Loading())
	require.Equal(t, StateAuthenticated, e.manager.State())
	user, ok := e.manager.User()
	require.True(t, ok)
	require.Equal(t, "u@example.com", user.Email)
	require.Equal(t, "User", user.DisplayName)
}

func TestHydrateFallsBackToPersistedProfile(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/auth/profile", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	store := storage.New(t.TempDir())
	require.NoError(t, store.SaveToken("acc-1"))
	require.NoError(t, store.SaveProfile(models.User{ID: 7, Email: "u@example.com", DisplayName: "Cached"}))

	m := NewManager(api.New(srv.URL), store, nil)
	require.Equal(t, StateAuthenticated, m.State())
	require.True(t, m.Loading())

	m.Hydrate(context.Background())
	require.False(t, m.Loading())
	user, ok := m.User()
	require.True(t, ok)
	require.Equal(t, "Cached", user.DisplayName)
}

func TestLogoutClearsEverything(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, `{"accessToken":"acc-1","refreshToken":"ref-1"}`)
	})
	e := newEnv(t, r)
	require.NoError(t, e.manager.Login(context.Background(), "u@example.com", "secret1"))

	e.manager.Logout()
	require.Equal(t, StateUnauthenticated, e.manager.State())
	_, ok := e.manager.User()
	require.False(t, ok)
	require.False(t, e.manager.Loading())
	require.Empty(t, e.store.Token())
	require.Empty(t, e.store.Refresh())
	_, ok = e.store.Profile()
	require.False(t, ok)
	require.Empty(t, e.api.Token())

	// idempotent
	e.manager.Logout()
	require.Equal(t, StateUnauthenticated, e.manager.State())
}

func TestLogoutWinsOverInFlightProfileFetch(t *testing.T) {
	release := make(chan struct{})
	r := chi.NewRouter()
	r.Get("/auth/profile", func(w http.ResponseWriter, req *http.Request) {
		<-release
		writeJSON(w, http.StatusOK, `{"id":7,"email":"u@example.com","displayName":"Late"}`)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	store := storage.New(t.TempDir())
	require.NoError(t, store.SaveToken("acc-1"))
	m := NewManager(api.New(srv.URL), store, nil)

	done := make(chan struct{})
	go func() {
		m.Hydrate(context.Background())
		close(done)
	}()

	m.Logout()
	close(release)
	<-done

	require.Equal(t, StateUnauthenticated, m.State())
	_, ok := m.User()
	require.False(t, ok, "late profile response must be discarded")
}

func TestUpdateProfileMerges(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, `{"accessToken":"acc-1"}`)
	})
	r.Get("/auth/profile", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":7,"email":"u@example.com","displayName":"Ursula"}`)
	})
	r.Put("/auth/profile", func(w http.ResponseWriter, req *http.Request) {
		// server echoes only the changed field
		writeJSON(w, http.StatusOK, `{"displayName":"Renamed"}`)
	})
	e := newEnv(t, r)
	require.NoError(t, e.manager.Login(context.Background(), "u@example.com", "secret1"))
	e.manager.Hydrate(context.Background())

	user, err := e.manager.UpdateProfile(context.Background(), "Renamed")
	require.NoError(t, err)
	require.Equal(t, "Renamed", user.DisplayName)
	require.Equal(t, int64(7), user.ID, "unspecified fields retained")
	require.Equal(t, "u@example.com", user.Email)

	cached, ok := e.store.Profile()
	require.True(t, ok)
	require.Equal(t, "Renamed", cached.DisplayName)
}

func TestUpdateProfileFailureKeepsPrevious(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, `{"accessToken":"acc-1"}`)
	})
	r.Put("/auth/profile", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"message":"name too long"}`)
	})
	e := newEnv(t, r)
	require.NoError(t, e.manager.Login(context.Background(), "u@example.com", "secret1"))

	_, err := e.manager.UpdateProfile(context.Background(), "Renamed")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "name too long", apiErr.Message)

	user, ok := e.manager.User()
	require.True(t, ok)
	require.Equal(t, "User", user.DisplayName)
}

func TestChangePasswordNoStateChange(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, `{"accessToken":"acc-1"}`)
	})
	r.Post("/auth/change-password", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"message":"wrong old password"}`)
	})
	e := newEnv(t, r)
	require.NoError(t, e.manager.Login(context.Background(), "u@example.com", "secret1"))

	err := e.manager.ChangePassword(context.Background(), "old", "newpass1")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)

	require.Equal(t, StateAuthenticated, e.manager.State())
	require.Equal(t, "acc-1", e.store.Token())
}

func TestTokenExpiry(t *testing.T) {
	srv := httptest.NewServer(chi.NewRouter())
	t.Cleanup(srv.Close)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	store := storage.New(t.TempDir())
	require.NoError(t, store.SaveToken(signedToken(t, exp)))

	m := NewManager(api.New(srv.URL), store, nil)
	got, ok := m.TokenExpiry()
	require.True(t, ok)
	require.Equal(t, exp.Unix(), got.Unix())
}

func TestTokenExpiryOpaqueToken(t *testing.T) {
	srv := httptest.NewServer(chi.NewRouter())
	t.Cleanup(srv.Close)

	store := storage.New(t.TempDir())
	require.NoError(t, store.SaveToken("not-a-jwt"))

	m := NewManager(api.New(srv.URL), store, nil)
	_, ok := m.TokenExpiry()
	require.False(t, ok)
}

func TestHydrateRefreshesExpiredToken(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/refresh", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, `{"accessToken":"fresh-1"}`)
	})
	r.Get("/auth/profile", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer fresh-1" {
			writeJSON(w, http.StatusUnauthorized, `{"message":"expired"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":7,"email":"u@example.com","displayName":"Ursula"}`)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	store := storage.New(t.TempDir())
	require.NoError(t, store.SaveToken(signedToken(t, time.Now().Add(-time.Minute))))
	require.NoError(t, store.SaveRefresh("ref-1"))

	m := NewManager(api.New(srv.URL), store, nil)
	m.Hydrate(context.Background())

	user, ok := m.User()
	require.True(t, ok)
	require.Equal(t, "Ursula", user.DisplayName)
	require.Equal(t, "fresh-1", store.Token())
}
