package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/andreazagoit/upcominghub-native/enums"
	"github.com/andreazagoit/upcominghub-native/models"
	"github.com/andreazagoit/upcominghub-native/store"
	"github.com/andreazagoit/upcominghub-native/utils/logger"
)

// Manager is the public session facade: sign-in/out, restore, current user, and
// the authenticated transport. Construct one per application root and hand the
// reference to whatever needs it; there is no package-level instance.
type Manager struct {
	cfg         Config
	client      *identityClient
	state       *State
	tokens      store.TokenStore
	coordinator *RefreshCoordinator
	transport   *Transport
	validate    *validator.Validate
}

// NewManager builds a Manager against the given identity API. A nil tokens store
// falls back to an in-memory store, which means sessions do not survive the
// process.
func NewManager(cfg Config, tokens store.TokenStore) (*Manager, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("auth config: %w", err)
	}
	if tokens == nil {
		tokens = store.NewMemoryStore()
	}

	client := newIdentityClient(cfg)
	state := NewState()
	coordinator := newRefreshCoordinator(client, state, tokens)

	m := &Manager{
		cfg:         cfg,
		client:      client,
		state:       state,
		tokens:      tokens,
		coordinator: coordinator,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
	m.transport = &Transport{
		client:      client,
		state:       state,
		coordinator: coordinator,
		teardown:    m.clearSession,
	}
	return m, nil
}

// State exposes the observable session state for reads and subscriptions.
func (m *Manager) State() *State {
	return m.state
}

// Transport returns the authenticated request path used by data-fetching code.
func (m *Manager) Transport() *Transport {
	return m.transport
}

// CurrentUser returns the cached profile, nil when signed out. Never does I/O.
func (m *Manager) CurrentUser() *models.User {
	sess := m.state.Read()
	if !sess.Authenticated() {
		return nil
	}
	return sess.User
}

// SignIn exchanges credentials for a session. On success both tokens and the
// profile are persisted and published as one state change. On failure the
// session is left exactly as it was.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	creds := credentials{Email: email, Password: password}
	if err := m.validate.Struct(creds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	pair, user, err := m.client.login(ctx, creds)
	if err != nil {
		return nil, err
	}
	m.establish(ctx, pair, user)
	return user, nil
}

// Register creates an account and signs it in, with the same persistence path as
// SignIn.
func (m *Manager) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	if len(strings.TrimSpace(name)) < 3 {
		return nil, fmt.Errorf("%w: name must be at least 3 characters", ErrInvalidCredentials)
	}
	creds := credentials{Email: email, Password: password, Name: name}
	if err := m.validate.Struct(creds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	pair, user, err := m.client.register(ctx, creds)
	if err != nil {
		return nil, err
	}
	m.establish(ctx, pair, user)
	return user, nil
}

// SignOut calls the logout endpoint best effort, then unconditionally clears the
// persistent store and the session. Safe to call when already signed out.
func (m *Manager) SignOut(ctx context.Context) {
	sess := m.state.Read()
	if sess.Tokens.Complete() {
		if err := m.client.logout(ctx, sess.Tokens); err != nil {
			logger.LogWarn("logout endpoint call failed", zap.Error(err))
		}
	}
	m.clearSession(ctx)
}

// Refresh rotates the session tokens through the coordinator. A rejected
// exchange is terminal: the session is torn down, matching the behaviour of a
// refresh triggered by an expired request.
func (m *Manager) Refresh(ctx context.Context) (models.TokenPair, error) {
	pair, err := m.coordinator.Refresh(ctx)
	if errors.Is(err, ErrRefreshFailed) {
		m.clearSession(ctx)
	}
	return pair, err
}

// RestoreSession rebuilds the session from the persistent store at startup.
// With a complete stored pair the session becomes authenticated optimistically,
// then the profile is revalidated through the authenticated transport. A refresh
// failure during revalidation tears the session down like any other terminal
// failure; a plain network failure leaves the optimistic session in place.
func (m *Manager) RestoreSession(ctx context.Context) {
	m.state.mutate(func(s *Session) {
		s.Status = enums.SessionRestoring
		s.Loading = true
	})

	pair := store.LoadTokens(ctx, m.tokens)
	if !pair.Complete() {
		m.state.mutate(func(s *Session) {
			*s = Session{Status: enums.SessionUnauthenticated}
		})
		return
	}

	m.state.mutate(func(s *Session) {
		s.Status = enums.SessionAuthenticated
		s.Tokens = pair
		s.Loading = false
	})

	// A locally verifiable expired access token gets one eager rotation, so the
	// first data fetch after startup does not pay the 401 round trip.
	if accessTokenExpired(pair.AccessToken, time.Now()) {
		if _, err := m.Refresh(ctx); err != nil {
			logger.LogInfo("eager refresh on restore failed", zap.Error(err))
			m.clearSession(ctx)
			return
		}
	}

	user, err := m.fetchCurrentUser(ctx)
	if err != nil {
		// ErrAuthenticationExpired already tore the session down inside the
		// transport; anything else is not terminal.
		logger.LogWarn("session revalidation failed", zap.Error(err))
		return
	}
	m.state.mutate(func(s *Session) {
		s.User = user
	})
}

// establish is the shared success path of SignIn and Register.
func (m *Manager) establish(ctx context.Context, pair models.TokenPair, user *models.User) {
	store.SaveTokens(ctx, m.tokens, pair)
	m.state.mutate(func(s *Session) {
		s.Status = enums.SessionAuthenticated
		s.Tokens = pair
		s.User = user
		s.Loading = false
	})
}

// clearSession is the terminal path shared by SignOut, failed refresh, and the
// transport's forced teardown.
func (m *Manager) clearSession(ctx context.Context) {
	store.ClearTokens(ctx, m.tokens)
	m.state.mutate(func(s *Session) {
		*s = Session{Status: enums.SessionUnauthenticated}
	})
}

// fetchCurrentUser loads the profile through the authenticated transport.
func (m *Manager) fetchCurrentUser(ctx context.Context) (*models.User, error) {
	resp, err := m.transport.Request(ctx, mePath, RequestOptions{})
	if err != nil {
		return nil, err
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK || !gjson.GetBytes(body, "success").Bool() {
		return nil, fmt.Errorf("me: status %d", resp.StatusCode())
	}
	var user models.User
	if err := json.Unmarshal([]byte(gjson.GetBytes(body, "data.user").Raw), &user); err != nil {
		return nil, fmt.Errorf("me: decode user: %w", err)
	}
	return &user, nil
}
