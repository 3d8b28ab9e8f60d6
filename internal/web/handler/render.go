package handler

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/qrinvite/internal/i18n"
	"github.com/mcoot/qrinvite/internal/web/middleware"
	"github.com/mcoot/qrinvite/internal/web/templates/layout"
	"github.com/mcoot/qrinvite/internal/web/templates/views"
)

// pageData fills the layout fields shared by every page
func pageData(r *http.Request, title, active string) layout.PageData {
	data := layout.PageData{
		Title:  title,
		Flash:  middleware.GetFlash(r.Context()),
		Active: active,
	}
	if store := middleware.GetSession(r.Context()); store != nil {
		if identity, ok := store.CurrentIdentity(r.Context()); ok {
			data.Greeting = i18n.T(i18n.GreetingKey, identity.DisplayName)
		}
	}
	return data
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func renderMessage(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	render(w, r, status, views.Message(views.MessageData{
		PageData: pageData(r, title, ""),
		Message:  message,
	}))
}
