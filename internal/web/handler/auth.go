package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/qrinvite/internal/i18n"
	"github.com/mcoot/qrinvite/internal/session"
	"github.com/mcoot/qrinvite/internal/web/middleware"
	"github.com/mcoot/qrinvite/internal/web/templates/views"
)

// TabCloser drops the page state of a tab
type TabCloser interface {
	Forget(tabID string)
}

// AuthHandler handles the login page and session actions
type AuthHandler struct {
	tabs   TabCloser
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(tabs TabCloser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		tabs:   tabs,
		logger: logger,
	}
}

// Home sends anonymous visitors to the login page; the guard has already
// sent signed-in ones to the dashboard
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, views.Login(views.LoginData{
		PageData: pageData(r, "Login", session.LoginPath),
	}))
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "", i18n.T(i18n.InvalidCredentialsKey))
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	result := middleware.GetSession(r.Context()).Login(r.Context(), username, password)
	if !result.Success {
		h.renderLoginError(w, r, username, result.Reason)
		return
	}

	middleware.SetFlash(w, "success", i18n.T(i18n.GreetingKey, result.Identity.DisplayName))
	http.Redirect(w, r, session.DashboardPath, http.StatusSeeOther)
}

// Logout ends the tab's session; the session redirects to the login page
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tabID := middleware.GetTabID(r.Context())
	h.tabs.Forget(tabID)

	middleware.SetFlash(w, "info", i18n.T(i18n.LoggedOutKey))
	middleware.GetSession(r.Context()).Logout(r.Context())
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, username, reason string) {
	render(w, r, http.StatusOK, views.Login(views.LoginData{
		PageData: pageData(r, "Login", session.LoginPath),
		Username: username,
		Error:    reason,
	}))
}
