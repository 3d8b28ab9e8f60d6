package pages

import (
	"errors"

	"github.com/mcoot/qrinvite/internal/apiclient"
	"github.com/mcoot/qrinvite/internal/i18n"
)

// Input errors, raised before any network call
var (
	ErrBusy           = errors.New("operation already in progress")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNoFileSelected = errors.New("no file selected")
	ErrNotAnImage     = errors.New("file is not an image")
	ErrNoQRCode       = errors.New("no generated QR code")
)

// ErrorKind classifies a failed action for presentation
type ErrorKind int

const (
	KindNone ErrorKind = iota
	// KindTransport: no response; shown as "cannot reach server"
	KindTransport
	// KindHTTP: error status or unusable body; shown with the body's detail when present
	KindHTTP
	// KindInput: rejected locally before any request
	KindInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindInput:
		return "input"
	default:
		return "unknown"
	}
}

// Classify maps an action error onto its ErrorKind
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrBusy),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrNoFileSelected),
		errors.Is(err, ErrNotAnImage),
		errors.Is(err, ErrNoQRCode):
		return KindInput
	case errors.Is(err, apiclient.ErrTransport):
		return KindTransport
	default:
		return KindHTTP
	}
}

// UserMessage returns the localized message shown for err.
// fallback is used for HTTP errors whose body carried no detail.
func UserMessage(err error, fallback string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBusy):
		return i18n.T(i18n.BusyKey)
	case errors.Is(err, ErrNoFileSelected):
		return i18n.T(i18n.SelectImageKey)
	case errors.Is(err, ErrNotAnImage):
		return i18n.T(i18n.NotAnImageKey)
	case errors.Is(err, apiclient.ErrTransport):
		return i18n.T(i18n.ServerUnreachableKey)
	case errors.Is(err, apiclient.ErrMissingInviteHeaders):
		return i18n.T(i18n.MissingHeadersKey)
	}

	if apiErr, ok := apiclient.AsAPIError(err); ok && apiErr.FromBody {
		return apiErr.Detail
	}
	return fallback
}
