package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/qrinvite/internal/factory"
	"github.com/mcoot/qrinvite/internal/pages"
	"github.com/mcoot/qrinvite/internal/session"
	"github.com/mcoot/qrinvite/internal/web/handler"
	"github.com/mcoot/qrinvite/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger *slog.Logger
	App    *factory.App
	// Tabs defaults to a registry building tabs from App
	Tabs *TabRegistry
	// TabIdleTimeout applies to the default registry
	TabIdleTimeout time.Duration
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	tabs := cfg.Tabs
	if tabs == nil {
		tabs = NewTabRegistry(func(tabID string) *pages.Tab {
			return cfg.App.NewTab(tabID, nil)
		}, cfg.App.Clock, cfg.TabIdleTimeout)
	}

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger, cfg.App.Clock)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	tabCookieMiddleware := middleware.TabCookie()
	guardMiddleware := middleware.Guard(cfg.App.NewSession)
	tabStateMiddleware := middleware.TabState(tabs)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	authHandler := handler.NewAuthHandler(tabs, cfg.Logger)
	inviteHandler := handler.NewInviteHandler(cfg.App.API, cfg.Logger)

	// Every page goes through the route guard; public and secured paths
	// differ only in which way it redirects
	pagesRouter := r.NewRoute().Subrouter()
	pagesRouter.Use(flashMiddleware)
	pagesRouter.Use(tabCookieMiddleware)
	pagesRouter.Use(guardMiddleware)
	pagesRouter.Use(tabStateMiddleware)

	// Public routes
	pagesRouter.HandleFunc(session.RootPath, authHandler.Home).Methods(http.MethodGet)
	pagesRouter.HandleFunc(session.LoginPath, authHandler.LoginPage).Methods(http.MethodGet)
	pagesRouter.HandleFunc(session.LoginHTMLPath, authHandler.LoginPage).Methods(http.MethodGet)
	pagesRouter.HandleFunc(session.LoginPath, authHandler.Login).Methods(http.MethodPost)

	// Secured routes
	pagesRouter.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	pagesRouter.HandleFunc(session.DashboardPath, handler.Dashboard).Methods(http.MethodGet)
	pagesRouter.HandleFunc(session.CreatePath, inviteHandler.CreatePage).Methods(http.MethodGet)
	pagesRouter.HandleFunc(session.CreatePath, inviteHandler.Create).Methods(http.MethodPost)
	pagesRouter.HandleFunc("/create/qrcode.png", inviteHandler.QRCode).Methods(http.MethodGet)
	pagesRouter.HandleFunc("/create/reset", inviteHandler.Reset).Methods(http.MethodPost)
	pagesRouter.HandleFunc(session.ListPath, inviteHandler.List).Methods(http.MethodGet)
	pagesRouter.HandleFunc(session.ValidatePath, inviteHandler.ValidatePage).Methods(http.MethodGet)
	pagesRouter.HandleFunc(session.ValidatePath, inviteHandler.Validate).Methods(http.MethodPost)
	pagesRouter.HandleFunc("/invites/{code}", inviteHandler.Invite).Methods(http.MethodGet)

	return r
}
