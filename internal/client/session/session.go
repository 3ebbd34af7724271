// Package session owns the authentication token and the current user
// profile. The token is the single source of truth: without it the session
// is unauthenticated regardless of any cached profile. The persisted
// profile is strictly a fallback for when the full fetch fails.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/anudeepmamidala/Banking-System/internal/client/api"
	"github.com/anudeepmamidala/Banking-System/internal/client/storage"
	"github.com/anudeepmamidala/Banking-System/internal/shared/models"
)

type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
)

// placeholderName stands in for the display name until the full profile
// arrives.
const placeholderName = "User"

// Manager is the session state holder. Construct with NewManager, tear down
// with Logout; safe for concurrent use, last response wins.
type Manager struct {
	api    *api.Client
	store  *storage.Store
	logger *log.Logger

	mu      sync.Mutex
	state   State
	token   string
	user    *models.User
	loading bool
}

// NewManager restores any persisted token into memory. When a token is
// present the session starts authenticated with the loading flag set until
// Hydrate settles the profile.
func NewManager(apiClient *api.Client, store *storage.Store, logger *log.Logger) *Manager {
	m := &Manager{api: apiClient, store: store, logger: logger, state: StateUnauthenticated}
	if tok := store.Token(); tok != "" {
		m.token = tok
		m.state = StateAuthenticated
		m.loading = true
		apiClient.SetToken(tok)
		if u, ok := store.Profile(); ok {
			m.user = &u
		}
	}
	return m
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the current profile; ok is false when unauthenticated or no
// profile is known yet.
func (m *Manager) User() (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" || m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Login exchanges credentials for tokens. On success the tokens are
// persisted, a partial profile (the submitted email plus a placeholder
// name) is installed without waiting for the full fetch, and the session
// becomes authenticated. Nothing is mutated on failure.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	prev := m.state
	m.state = StateAuthenticating
	m.mu.Unlock()

	var tokens models.TokenResponse
	err := m.api.Post(ctx, "/auth/login", map[string]string{"email": email, "password": password}, &tokens)
	if err != nil {
		m.mu.Lock()
		m.state = prev
		m.mu.Unlock()
		return authError("login failed", err)
	}

	partial := models.User{Email: email, DisplayName: placeholderName}
	m.mu.Lock()
	m.token = tokens.AccessToken
	m.user = &partial
	m.state = StateAuthenticated
	m.loading = true
	m.mu.Unlock()

	m.api.SetToken(tokens.AccessToken)
	if err := m.store.SaveToken(tokens.AccessToken); err != nil {
		m.logf("save token: %v", err)
	}
	if tokens.RefreshToken != "" {
		if err := m.store.SaveRefresh(tokens.RefreshToken); err != nil {
			m.logf("save refresh token: %v", err)
		}
	}
	if err := m.store.SaveProfile(partial); err != nil {
		m.logf("save profile: %v", err)
	}
	return nil
}

// Register creates a user on the remote service without establishing a
// session.
func (m *Manager) Register(ctx context.Context, email, password, displayName string) error {
	body := map[string]string{"email": email, "password": password, "displayName": displayName}
	if err := m.api.Post(ctx, "/auth/register", body, nil); err != nil {
		return authError("registration failed", err)
	}
	return nil
}

// Logout clears the in-memory session and erases the persisted copies.
// Idempotent; never fails.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.state = StateUnauthenticated
	m.loading = false
	m.mu.Unlock()

	m.api.SetToken("")
	if err := m.store.Clear(); err != nil {
		m.logf("clear session state: %v", err)
	}
}

// UpdateProfile pushes the new display name and shallow-merges the server's
// reply into the current profile: returned fields overwrite, absent fields
// are retained. The previous profile survives any failure.
func (m *Manager) UpdateProfile(ctx context.Context, displayName string) (models.User, error) {
	m.mu.Lock()
	cur := models.User{}
	if m.user != nil {
		cur = *m.user
	}
	m.mu.Unlock()

	body := map[string]string{"displayName": displayName, "email": cur.Email}
	var reply models.User
	if err := m.api.Put(ctx, "/auth/profile", body, &reply); err != nil {
		return models.User{}, err
	}

	merged := mergeProfile(cur, reply)
	m.mu.Lock()
	m.user = &merged
	m.mu.Unlock()
	if err := m.store.SaveProfile(merged); err != nil {
		m.logf("save profile: %v", err)
	}
	return merged, nil
}

// ChangePassword is forwarded verbatim; no local state changes either way.
func (m *Manager) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return m.api.Post(ctx, "/auth/change-password", body, nil)
}

// Hydrate performs the passive profile refresh: one full-profile fetch for
// the present token. Success replaces the in-memory profile entirely;
// failure falls back to the persisted copy without surfacing an error. The
// loading flag is cleared exactly once either way. A logout that lands
// while the fetch is in flight wins: the late response is discarded.
func (m *Manager) Hydrate(ctx context.Context) {
	m.mu.Lock()
	tok := m.token
	m.mu.Unlock()
	if tok == "" {
		m.setLoading(false)
		return
	}
	defer m.setLoading(false)

	m.refreshIfExpired(ctx)

	var u models.User
	if err := m.api.Get(ctx, "/auth/profile", nil, &u); err != nil {
		m.logf("profile fetch: %v", err)
		if cached, ok := m.store.Profile(); ok {
			m.apply(cached)
		}
		return
	}
	if m.apply(u) {
		if err := m.store.SaveProfile(u); err != nil {
			m.logf("save profile: %v", err)
		}
	}
}

// apply installs a fetched profile unless the session was torn down while
// the request was in flight.
func (m *Manager) apply(u models.User) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return false
	}
	m.user = &u
	return true
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

func (m *Manager) logf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
	}
}

func mergeProfile(cur, reply models.User) models.User {
	merged := cur
	if reply.ID != 0 {
		merged.ID = reply.ID
	}
	if reply.Email != "" {
		merged.Email = reply.Email
	}
	if reply.DisplayName != "" {
		merged.DisplayName = reply.DisplayName
	}
	if !reply.CreatedAt.IsZero() {
		merged.CreatedAt = reply.CreatedAt
	}
	return merged
}

// TokenExpiry reports the access token's expiry when the token happens to
// be a JWT. The token is otherwise treated as opaque; the signature is the
// server's business.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	m.mu.Lock()
	tok := m.token
	m.mu.Unlock()
	if tok == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// refreshIfExpired trades the stored refresh token for a fresh access token
// when the current one has passed its exp claim. Best effort: on any
// failure the stale token stays and the subsequent fetch is allowed to 401.
func (m *Manager) refreshIfExpired(ctx context.Context) {
	exp, ok := m.TokenExpiry()
	if !ok || time.Now().Before(exp) {
		return
	}
	refresh := m.store.Refresh()
	if refresh == "" {
		return
	}
	var tokens models.TokenResponse
	err := m.api.Post(ctx, "/auth/refresh", map[string]string{"refreshToken": refresh}, &tokens)
	if err != nil || tokens.AccessToken == "" {
		m.logf("token refresh: %v", err)
		return
	}
	m.mu.Lock()
	if m.token == "" {
		m.mu.Unlock()
		return
	}
	m.token = tokens.AccessToken
	m.mu.Unlock()
	m.api.SetToken(tokens.AccessToken)
	if err := m.store.SaveToken(tokens.AccessToken); err != nil {
		m.logf("save token: %v", err)
	}
}
