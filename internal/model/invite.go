package model

import "time"

// InviteCode is the unique, server-assigned code encoded in an invite's QR image
type InviteCode string

// Invite is the client's read-only copy of an invite owned by the API
type Invite struct {
	ID          int64      `json:"id,omitempty"`
	InviteCode  InviteCode `json:"invite_code"`
	Data        *string    `json:"data"`
	IsValidated bool       `json:"is_validated"`
	CreatedAt   Timestamp  `json:"created_at"`
	ValidatedAt *Timestamp `json:"validated_at,omitempty"`
}

// DataOrEmpty returns the invite payload, or "" when absent
func (i Invite) DataOrEmpty() string {
	if i.Data == nil {
		return ""
	}
	return *i.Data
}

// ValidatedTime returns when the invite was validated.
// ok is false when the invite is pending or the API did not report a time.
func (i Invite) ValidatedTime() (t time.Time, ok bool) {
	if !i.IsValidated || i.ValidatedAt == nil || i.ValidatedAt.IsZero() {
		return time.Time{}, false
	}
	return i.ValidatedAt.Time, true
}

// GeneratedInvite is a freshly created invite together with its QR image
type GeneratedInvite struct {
	InviteCode  InviteCode
	InviteID    string
	Data        string
	Image       []byte
	ContentType string
	CreatedAt   time.Time
}

// Filename returns the download name for the QR image
func (g *GeneratedInvite) Filename() string {
	return "qrcode_" + string(g.InviteCode) + ".png"
}

// ValidationResult is the API's answer to a QR image upload
type ValidationResult struct {
	Success     bool        `json:"success"`
	InviteCode  *InviteCode `json:"invite_code,omitempty"`
	Data        *string     `json:"data,omitempty"`
	IsValidated bool        `json:"is_validated"`
	Message     *string     `json:"message,omitempty"`
}

// Found reports whether the upload matched a known invite.
// Both success and an invite code are required.
func (r ValidationResult) Found() bool {
	return r.Success && r.InviteCode != nil && *r.InviteCode != ""
}
