// Package i18n holds the user-facing strings and date formatting.
// The interface is fixed to Brazilian Portuguese; English strings are the
// message keys and double as the fallback catalog.
package i18n

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale is the fixed display locale
var Locale = language.BrazilianPortuguese

// DateLayout renders timestamps as DD/MM/YYYY HH:MM
const DateLayout = "02/01/2006 15:04"

// Message keys
const (
	InvalidCredentialsKey = "Invalid username or password"
	ServerUnreachableKey  = "Could not connect to the server. Check that the API is running."
	GenerateFailedKey     = "Failed to generate QR Code"
	MissingHeadersKey     = "The server did not return the invite code"
	InvalidQRCodeKey      = "Invalid QR Code or invite not found."
	SelectImageKey        = "Please select an image of the QR Code."
	NotAnImageKey         = "Please select a valid image."
	LoadInvitesFailedKey  = "Failed to load invites. Check that the API is running."
	LoadStatsFailedKey    = "Failed to load statistics"
	NoInvitesKey          = "No invites created yet."
	NoFilterMatchKey      = "No invites found for the applied filters."
	ValidatedKey          = "Validated"
	PendingKey            = "Pending"
	NotAvailableKey       = "N/A"
	ErrorShortKey         = "Error"
	GreetingKey           = "Hello, %s"
	BusyKey               = "An operation is already in progress"
	InviteCodeShareKey    = "Invite code: %s"
	ValidationSuccessKey  = "QR Code read and validated successfully"
	UnknownTimeKey        = "unknown"
	LoggedOutKey          = "You have been logged out"
	InviteNotFoundKey     = "Invite not found"
	SessionUnavailableKey = "Could not start the session"
)

var printer = message.NewPrinter(Locale)

// T returns the localized string for key
func T(key string, args ...any) string {
	return printer.Sprintf(key, args...)
}

// DisplayLocation is the zone timestamps are rendered in
var DisplayLocation = time.Local

// FormatDate renders t in DisplayLocation
func FormatDate(t time.Time) string {
	return FormatDateIn(t, DisplayLocation)
}

// FormatDateIn renders t in loc using DateLayout
func FormatDateIn(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}
