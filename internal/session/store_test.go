package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/qrinvite/internal/dependencies/mocks"
	"github.com/mcoot/qrinvite/internal/storage"
	"github.com/mcoot/qrinvite/internal/storage/memory"
	"github.com/mcoot/qrinvite/internal/testutil"
)

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type StoreSuite struct {
	suite.Suite
	storage   *memory.Storage
	navigator *Recorder
	store     *Store
	ctx       context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func newTestAuthenticator(t *testing.T) *StaticAuthenticator {
	auth, err := NewStaticAuthenticator(mocks.NewMockClock(testNow), bcrypt.MinCost, DefaultUsers...)
	require.NoError(t, err)
	return auth
}

func (s *StoreSuite) SetupTest() {
	s.storage = memory.New()
	s.navigator = &Recorder{}
	s.store = New(Config{
		Storage:       s.storage,
		TabID:         "tab-1",
		Authenticator: newTestAuthenticator(s.T()),
		Navigator:     s.navigator,
		Logger:        testutil.NopLogger(),
	})
	s.ctx = context.Background()
}

// Login tests

func (s *StoreSuite) TestLoginSucceeds() {
	result := s.store.Login(s.ctx, "admin", "admin123")

	s.Require().True(result.Success)
	s.Empty(result.Reason)
	s.Equal("admin", result.Identity.Username)
	s.Equal("Administrador", result.Identity.DisplayName)
	s.Equal(testNow, result.Identity.LoginTime)

	identity, ok := s.store.CurrentIdentity(s.ctx)
	s.Require().True(ok)
	s.Equal(*result.Identity, *identity)
}

func (s *StoreSuite) TestLoginSecondUser() {
	result := s.store.Login(s.ctx, "user", "user123")

	s.Require().True(result.Success)
	s.Equal("Usuário", result.Identity.DisplayName)
}

func (s *StoreSuite) TestLoginRejectsNonMatchingPairs() {
	pairs := []struct{ username, password string }{
		{"admin", "wrong"},
		{"admin", "user123"},
		{"user", "admin123"},
		{"Admin", "admin123"},
		{"admin ", "admin123"},
		{"admin", "admin123 "},
		{"nobody", "admin123"},
		{"", ""},
	}

	for _, p := range pairs {
		result := s.store.Login(s.ctx, p.username, p.password)

		s.False(result.Success, "%q/%q", p.username, p.password)
		s.Nil(result.Identity)
		s.Equal("Usuário ou senha inválidos", result.Reason)
		s.Equal(0, s.storage.Len(), "storage must be untouched")
	}
}

func (s *StoreSuite) TestFailedLoginKeepsExistingIdentity() {
	s.Require().True(s.store.Login(s.ctx, "admin", "admin123").Success)

	result := s.store.Login(s.ctx, "user", "nope")
	s.False(result.Success)

	identity, ok := s.store.CurrentIdentity(s.ctx)
	s.Require().True(ok)
	s.Equal("admin", identity.Username)
}

// Logout tests

func (s *StoreSuite) TestLogoutClearsIdentityAndNavigates() {
	s.store.Login(s.ctx, "admin", "admin123")

	s.store.Logout(s.ctx)

	_, ok := s.store.CurrentIdentity(s.ctx)
	s.False(ok)
	s.Equal(LoginPath, s.navigator.Last())
}

func (s *StoreSuite) TestLogoutWithoutIdentityOnlyNavigates() {
	s.store.Logout(s.ctx)
	s.store.Logout(s.ctx)

	s.Equal([]string{LoginPath, LoginPath}, s.navigator.Paths())
	s.Equal(0, s.storage.Len())
}

// CurrentIdentity tests

func (s *StoreSuite) TestCorruptIdentityIsAbsent() {
	for _, raw := range []string{"{not json", `"admin"`, `{}`, ``} {
		s.Require().NoError(s.storage.Set(s.ctx, storage.TabKey("tab-1", "user"), []byte(raw)))

		identity, ok := s.store.CurrentIdentity(s.ctx)
		s.False(ok, "%q", raw)
		s.Nil(identity)
	}
}

func (s *StoreSuite) TestTabsAreIsolated() {
	other := New(Config{
		Storage:       s.storage,
		TabID:         "tab-2",
		Authenticator: newTestAuthenticator(s.T()),
		Navigator:     &Recorder{},
	})

	s.store.Login(s.ctx, "admin", "admin123")

	_, ok := other.CurrentIdentity(s.ctx)
	s.False(ok)
}

// EnforceRouteGuard tests

func (s *StoreSuite) TestGuardAnonymousOnPublicPath() {
	for _, path := range []string{"/", "/login", "/login.html"} {
		s.True(s.store.EnforceRouteGuard(s.ctx, path), path)
	}
	s.Empty(s.navigator.Paths())
}

func (s *StoreSuite) TestGuardAnonymousOnSecuredPath() {
	s.False(s.store.EnforceRouteGuard(s.ctx, "/dashboard"))
	s.Equal([]string{LoginPath}, s.navigator.Paths())
}

func (s *StoreSuite) TestGuardLoggedInOnPublicPath() {
	s.store.Login(s.ctx, "admin", "admin123")

	s.False(s.store.EnforceRouteGuard(s.ctx, "/login"))
	s.Equal([]string{DashboardPath}, s.navigator.Paths())
}

func (s *StoreSuite) TestGuardLoggedInOnSecuredPath() {
	s.store.Login(s.ctx, "admin", "admin123")

	for _, path := range []string{"/dashboard", "/create", "/list", "/validate"} {
		s.True(s.store.EnforceRouteGuard(s.ctx, path), path)
	}
	s.Empty(s.navigator.Paths())
}

func (s *StoreSuite) TestGuardTreatsCorruptIdentityAsAnonymous() {
	_ = s.storage.Set(s.ctx, storage.TabKey("tab-1", "user"), []byte("garbage"))

	s.False(s.store.EnforceRouteGuard(s.ctx, "/list"))
	s.Equal(LoginPath, s.navigator.Last())
}

// Storage failure tests

type brokenStorage struct{}

var errDisabled = errors.New("storage disabled")

func (brokenStorage) Get(context.Context, string) ([]byte, error) { return nil, errDisabled }
func (brokenStorage) Set(context.Context, string, []byte) error   { return errDisabled }
func (brokenStorage) Delete(context.Context, string) error        { return errDisabled }

func (s *StoreSuite) TestUnavailableStorageMeansNeverAuthenticated() {
	nav := &Recorder{}
	store := New(Config{
		Storage:       brokenStorage{},
		TabID:         "tab-1",
		Authenticator: newTestAuthenticator(s.T()),
		Navigator:     nav,
		Logger:        testutil.NopLogger(),
	})

	result := store.Login(s.ctx, "admin", "admin123")
	s.False(result.Success)
	s.NotEmpty(result.Reason)

	_, ok := store.CurrentIdentity(s.ctx)
	s.False(ok)

	s.False(store.EnforceRouteGuard(s.ctx, "/dashboard"))
	s.Equal(LoginPath, nav.Last())

	s.NotPanics(func() { store.Logout(s.ctx) })
}

func TestIsPublic(t *testing.T) {
	assert.True(t, IsPublic("/"))
	assert.True(t, IsPublic("/login"))
	assert.True(t, IsPublic("/login.html"))
	assert.False(t, IsPublic("/dashboard"))
	assert.False(t, IsPublic("/login/"))
	assert.False(t, IsPublic(""))
}
