package handler

import (
	"net/http"

	"github.com/mcoot/qrinvite/internal/session"
	"github.com/mcoot/qrinvite/internal/web/middleware"
	"github.com/mcoot/qrinvite/internal/web/templates/views"
)

// Dashboard renders the invite statistics
func Dashboard(w http.ResponseWriter, r *http.Request) {
	stats := middleware.GetTab(r.Context()).Dashboard.Stats(r.Context())

	render(w, r, http.StatusOK, views.Dashboard(views.DashboardData{
		PageData: pageData(r, "Dashboard", session.DashboardPath),
		Stats:    stats,
	}))
}
