package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/qrinvite/internal/dependencies/clock"
	"github.com/mcoot/qrinvite/internal/middleware"
)

// Logging creates request logging middleware for the web interface,
// tagging each line with the tab that made the request
func Logging(logger *slog.Logger, clk clock.Clock) func(http.Handler) http.Handler {
	return middleware.Logging(logger, clk, tabAttrs)
}

// tabAttrs reads the tab from the cookie; the outer middleware runs before
// the tab is loaded into the request context
func tabAttrs(r *http.Request) []slog.Attr {
	cookie, err := r.Cookie(TabCookieName)
	if err != nil {
		return nil
	}
	return []slog.Attr{slog.String("tab", cookie.Value)}
}
