package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/qrinvite/internal/middleware"
	"github.com/mcoot/qrinvite/internal/session"
)

// Recovery creates panic recovery middleware for the web interface
// Returns an HTML error page on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler, tabAttrs)
}

func webPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="utf-8"><title>Erro</title></head>
<body>
<h1>Erro interno</h1>
<p>Algo deu errado. Tente novamente mais tarde.</p>
<p><a href="` + session.DashboardPath + `">Voltar ao dashboard</a></p>
</body>
</html>`))
}
