package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/qrinvite/internal/pages"
	"github.com/mcoot/qrinvite/internal/session"
)

type contextKey string

const (
	tabIDContextKey   contextKey = "tabID"
	tabContextKey     contextKey = "tab"
	sessionContextKey contextKey = "session"
)

// TabCookieName is the browser-session cookie identifying a tab
const TabCookieName = "qrinvite_tab"

// Tabs hands out the page state of a tab
type Tabs interface {
	Tab(tabID string) *pages.Tab
}

// SessionFactory opens a tab's session context bound to navigator
type SessionFactory func(tabID string, navigator session.Navigator) *session.Store

// GetTabID retrieves the tab identifier from the request context
func GetTabID(ctx context.Context) string {
	id, _ := ctx.Value(tabIDContextKey).(string)
	return id
}

// GetTab retrieves the tab's page state from the request context
// Returns nil outside the TabState middleware
func GetTab(ctx context.Context) *pages.Tab {
	tab, _ := ctx.Value(tabContextKey).(*pages.Tab)
	return tab
}

// GetSession retrieves the request's session context
// Returns nil outside the Guard middleware
func GetSession(ctx context.Context) *session.Store {
	store, _ := ctx.Value(sessionContextKey).(*session.Store)
	return store
}

// TabCookie returns middleware that identifies the tab by cookie, issuing
// a new one on first visit. It keeps no server-side state.
func TabCookie() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tabID := ""
			if cookie, err := r.Cookie(TabCookieName); err == nil {
				tabID = cookie.Value
			}
			if tabID == "" {
				tabID = session.NewTabID()
				// no MaxAge: the cookie ends with the browser session
				http.SetCookie(w, &http.Cookie{
					Name:     TabCookieName,
					Value:    tabID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), tabIDContextKey, tabID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TabState returns middleware that loads the tab's page state into the
// context. It runs after Guard, so only signed-in tabs on secured paths
// reach it; anonymous visitors never get page state.
func TabState(tabs Tabs) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session.IsPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), tabContextKey, tabs.Tab(GetTabID(r.Context())))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Guard returns middleware that runs the route guard for the requested path.
// Turned-away requests are answered with a redirect and never reach next.
func Guard(newSession SessionFactory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := newSession(GetTabID(r.Context()), session.NavigatorFunc(func(path string) {
				http.Redirect(w, r, path, http.StatusSeeOther)
			}))

			if !store.EnforceRouteGuard(r.Context(), r.URL.Path) {
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
