package factory

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/qrinvite/internal/apiclient"
	"github.com/mcoot/qrinvite/internal/dependencies/clock"
	"github.com/mcoot/qrinvite/internal/pages"
	"github.com/mcoot/qrinvite/internal/session"
	"github.com/mcoot/qrinvite/internal/storage"
	"github.com/mcoot/qrinvite/internal/storage/file"
	"github.com/mcoot/qrinvite/internal/storage/memory"
	redisstorage "github.com/mcoot/qrinvite/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeFile   = "file"
)

// App contains all wired application components
type App struct {
	// Storage holds per-tab session state
	Storage storage.Storage

	Clock         clock.Clock
	API           *apiclient.Client
	Authenticator session.Authenticator
	Logger        *slog.Logger

	closer io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// APIURL is the invite API base URL (optional)
	// If empty, defaults to apiclient.DefaultBaseURL
	APIURL string
	// HTTPClient is used for API calls (optional)
	HTTPClient *http.Client
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "file")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// FileDir is the session directory (required if StorageType is "file")
	FileDir string
	// FileTTL bounds how long a file-stored value lives; zero means file.DefaultTTL
	FileTTL time.Duration
	// BcryptCost hashes the credential table; zero means bcrypt.DefaultCost
	BcryptCost int
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	var store storage.Storage
	var closer io.Closer
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closer = redisStore
	case StorageTypeFile:
		if cfg.FileDir == "" {
			return nil, errors.New("FileDir required when StorageType is file")
		}
		store = file.New(cfg.FileDir, clk, cfg.FileTTL)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'file'")
	}

	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	auth, err := session.NewStaticAuthenticator(clk, cost, session.DefaultUsers...)
	if err != nil {
		return nil, err
	}

	api := apiclient.New(apiclient.Config{
		BaseURL:    cfg.APIURL,
		HTTPClient: cfg.HTTPClient,
		Clock:      clk,
		Logger:     logger,
	})

	app := newWithDependencies(store, clk, api, auth, logger)
	app.closer = closer
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, api *apiclient.Client, auth session.Authenticator, logger *slog.Logger) *App {
	return &App{
		Storage:       store,
		Clock:         clk,
		API:           api,
		Authenticator: auth,
		Logger:        logger,
	}
}

// NewSession opens the session context of one tab.
// An empty tabID starts a fresh tab.
func (a *App) NewSession(tabID string, navigator session.Navigator) *session.Store {
	return session.New(session.Config{
		Storage:       a.Storage,
		TabID:         tabID,
		Authenticator: a.Authenticator,
		Navigator:     navigator,
		Logger:        a.Logger,
	})
}

// NewTab opens the session context and pages of one tab
func (a *App) NewTab(tabID string, navigator session.Navigator) *pages.Tab {
	return pages.NewTab(a.NewSession(tabID, navigator), pages.Deps{API: a.API, Clock: a.Clock, Logger: a.Logger})
}

// Close releases the storage connection, if any
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
