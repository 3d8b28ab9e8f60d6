// Package views holds the page components and the data each one renders.
package views

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate -path ..

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/qrinvite/internal/i18n"
	"github.com/mcoot/qrinvite/internal/invites"
	"github.com/mcoot/qrinvite/internal/model"
	"github.com/mcoot/qrinvite/internal/pages"
	"github.com/mcoot/qrinvite/internal/web/templates/layout"
)

// LoginData is the login page
type LoginData struct {
	layout.PageData
	Username string
	Error    string
}

// DashboardData is the dashboard page
type DashboardData struct {
	layout.PageData
	Stats pages.Stats
}

// CreateData is the create-invite page
type CreateData struct {
	layout.PageData
	Data  string
	Error string
	// Invite is the QR code on display, if any
	Invite    *model.GeneratedInvite
	ElapsedMS float64
	Share     string
}

// ListData is the invite list page
type ListData struct {
	layout.PageData
	View pages.ListView
}

// InviteData is the single-invite page
type InviteData struct {
	layout.PageData
	Invite model.Invite
}

// MessageData is a page with a single message
type MessageData struct {
	layout.PageData
	Message string
}

// ValidateData is the validate-invite page
type ValidateData struct {
	layout.PageData
	Error  string
	Result *pages.ValidateResult
}

// QRCodeURL is where the current QR image is served
func QRCodeURL(code model.InviteCode, download bool) string {
	q := url.Values{"code": {string(code)}}
	if download {
		q.Set("download", "1")
	}
	return "/create/qrcode.png?" + q.Encode()
}

var statusOptions = []struct {
	value invites.StatusFilter
	label string
}{
	{invites.StatusAll, "Todos"},
	{invites.StatusValidated, "Validados"},
	{invites.StatusPending, "Pendentes"},
}

// statCount hides the numbers behind a short error label when loading failed
func statCount(stats pages.Stats, n int) string {
	if stats.State == pages.StatsError {
		return i18n.T(i18n.ErrorShortKey)
	}
	return strconv.Itoa(n)
}

func elapsedText(ms float64) string {
	return fmt.Sprintf("%.0f ms", ms)
}

func inviteURL(inv model.Invite) templ.SafeURL {
	return templ.SafeURL("/invites/" + url.PathEscape(string(inv.InviteCode)))
}

func dataText(inv model.Invite) string {
	if data := inv.DataOrEmpty(); data != "" {
		return data
	}
	return i18n.T(i18n.NotAvailableKey)
}

func statusText(inv model.Invite) string {
	if inv.IsValidated {
		return i18n.T(i18n.ValidatedKey)
	}
	return i18n.T(i18n.PendingKey)
}

func validatedText(inv model.Invite) string {
	if !inv.IsValidated {
		return "-"
	}
	if t, ok := inv.ValidatedTime(); ok {
		return i18n.FormatDate(t)
	}
	return i18n.T(i18n.UnknownTimeKey)
}

func countsText(c invites.Counts) string {
	return "Total: " + strconv.Itoa(c.Total) + " | " + i18n.T(i18n.ValidatedKey) + ": " + strconv.Itoa(c.Validated) + " | " + i18n.T(i18n.PendingKey) + ": " + strconv.Itoa(c.Pending)
}
