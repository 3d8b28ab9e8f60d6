// Package session holds the identity of one tab and gates routes on it.
//
// A Store is the session context of a single tab: the web frontend builds
// one per browser session cookie, the CLI one per shell session. Nothing is
// shared between tabs and no server-side session exists.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mcoot/qrinvite/internal/i18n"
	"github.com/mcoot/qrinvite/internal/model"
	"github.com/mcoot/qrinvite/internal/storage"
)

// identityKey is the per-tab storage slot holding the serialized Identity
const identityKey = "user"

// Config holds the collaborators of a Store
type Config struct {
	Storage       storage.Storage
	TabID         string
	Authenticator Authenticator
	Navigator     Navigator
	Logger        *slog.Logger
}

// Store is the session context of one tab
type Store struct {
	storage   storage.Storage
	tabID     string
	auth      Authenticator
	navigator Navigator
	logger    *slog.Logger
}

// LoginResult is the outcome of Login. Reason is set only on failure.
type LoginResult struct {
	Success  bool
	Identity *model.Identity
	Reason   string
}

// NewTabID returns a fresh random tab identifier
func NewTabID() string {
	return uuid.NewString()
}

// New creates the session context for a tab
func New(cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	navigator := cfg.Navigator
	if navigator == nil {
		navigator = NavigatorFunc(func(string) {})
	}
	tabID := cfg.TabID
	if tabID == "" {
		tabID = NewTabID()
	}

	return &Store{
		storage:   cfg.Storage,
		tabID:     tabID,
		auth:      cfg.Authenticator,
		navigator: navigator,
		logger:    logger.With(slog.String("tab", tabID)),
	}
}

// TabID returns the identifier this store is scoped to
func (s *Store) TabID() string {
	return s.tabID
}

func (s *Store) key() string {
	return storage.TabKey(s.tabID, identityKey)
}

// Login authenticates the pair and, on success, stores the identity for the tab.
// On failure the stored identity is left untouched.
func (s *Store) Login(ctx context.Context, username, password string) LoginResult {
	identity, err := s.auth.Authenticate(ctx, username, password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			s.logger.Warn("authenticator error", slog.String("error", err.Error()))
		}
		return LoginResult{Reason: i18n.T(i18n.InvalidCredentialsKey)}
	}

	data, err := json.Marshal(identity)
	if err != nil {
		return LoginResult{Reason: i18n.T(i18n.SessionUnavailableKey)}
	}

	if s.storage == nil {
		return LoginResult{Reason: i18n.T(i18n.SessionUnavailableKey)}
	}
	if err := s.storage.Set(ctx, s.key(), data); err != nil {
		s.logger.Warn("session storage unavailable", slog.String("error", err.Error()))
		return LoginResult{Reason: i18n.T(i18n.SessionUnavailableKey)}
	}

	s.logger.Info("login", slog.String("username", identity.Username))
	return LoginResult{Success: true, Identity: &identity}
}

// Logout clears the identity and navigates to the login route.
// It is safe to call without an identity.
func (s *Store) Logout(ctx context.Context) {
	if s.storage != nil {
		if err := s.storage.Delete(ctx, s.key()); err != nil {
			s.logger.Warn("failed to clear session", slog.String("error", err.Error()))
		}
	}
	s.navigator.Navigate(LoginPath)
}

// CurrentIdentity reads the tab's identity. Missing, unreadable and corrupt
// values all count as absent.
func (s *Store) CurrentIdentity(ctx context.Context) (*model.Identity, bool) {
	if s.storage == nil {
		return nil, false
	}

	data, err := s.storage.Get(ctx, s.key())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("session storage unavailable", slog.String("error", err.Error()))
		}
		return nil, false
	}

	var identity model.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		s.logger.Warn("discarding corrupt identity", slog.String("error", err.Error()))
		return nil, false
	}
	if identity.Username == "" {
		return nil, false
	}
	return &identity, true
}

// EnforceRouteGuard is the gate run before rendering any page.
// Anonymous visits to secured paths go to the login route, and logged-in
// visits to public paths go to the dashboard; both return false.
func (s *Store) EnforceRouteGuard(ctx context.Context, path string) bool {
	_, loggedIn := s.CurrentIdentity(ctx)
	public := IsPublic(path)

	switch {
	case !loggedIn && !public:
		s.navigator.Navigate(LoginPath)
		return false
	case loggedIn && public:
		s.navigator.Navigate(DashboardPath)
		return false
	default:
		return true
	}
}
