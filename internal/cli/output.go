package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mcoot/qrinvite/internal/i18n"
	"github.com/mcoot/qrinvite/internal/invites"
	"github.com/mcoot/qrinvite/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case IdentityResult:
		o.printIdentity(v)
	case StatsResult:
		o.printStats(v)
	case ListResult:
		o.printList(v)
	case CreateResult:
		o.printCreate(v)
	case ValidateResult:
		o.printValidate(v)
	case model.Invite:
		o.printInvite(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// IdentityResult is the signed-in user
type IdentityResult struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	LoginTime time.Time `json:"login_time"`
	Greeting  string    `json:"greeting"`
}

// StatsResult is the dashboard summary. Error is set when the API could not be reached.
type StatsResult struct {
	invites.Counts
	Error bool `json:"error,omitempty"`
}

// ListResult is a filtered invite list
type ListResult struct {
	Invites []model.Invite `json:"invites"`
	Counts  invites.Counts `json:"counts"`
	Search  string         `json:"search,omitempty"`
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
}

// CreateResult is a newly created invite
type CreateResult struct {
	InviteCode string  `json:"invite_code"`
	InviteID   string  `json:"invite_id"`
	Data       string  `json:"data"`
	ElapsedMS  float64 `json:"elapsed_ms"`
	File       string  `json:"file,omitempty"`
	Share      string  `json:"share"`
}

// ValidateResult is the verdict for a QR image
type ValidateResult struct {
	Valid       bool    `json:"valid"`
	InviteCode  string  `json:"invite_code,omitempty"`
	Data        string  `json:"data,omitempty"`
	IsValidated bool    `json:"is_validated"`
	Message     string  `json:"message"`
	CheckedAt   string  `json:"checked_at"`
	ElapsedMS   float64 `json:"elapsed_ms"`
}

// HealthResult is the API health check
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printIdentity(id IdentityResult) {
	fmt.Fprintln(o.w, id.Greeting)
	fmt.Fprintf(o.w, "Username: %s\n", id.Username)
	fmt.Fprintf(o.w, "Logged in: %s\n", i18n.FormatDate(id.LoginTime))
}

func (o *Output) printStats(s StatsResult) {
	if s.Error {
		errText := i18n.T(i18n.ErrorShortKey)
		fmt.Fprintf(o.w, "Total: %s\n", errText)
		fmt.Fprintf(o.w, "%s: %s\n", i18n.T(i18n.ValidatedKey), errText)
		fmt.Fprintf(o.w, "%s: %s\n", i18n.T(i18n.PendingKey), errText)
		return
	}
	fmt.Fprintf(o.w, "Total: %d\n", s.Total)
	fmt.Fprintf(o.w, "%s: %d\n", i18n.T(i18n.ValidatedKey), s.Validated)
	fmt.Fprintf(o.w, "%s: %d\n", i18n.T(i18n.PendingKey), s.Pending)
}

func (o *Output) printList(l ListResult) {
	if len(l.Invites) == 0 {
		fmt.Fprintln(o.w, l.Message)
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tDATA\tSTATUS\tCREATED\tVALIDATED")
	for _, inv := range l.Invites {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			inv.InviteCode,
			truncate(inv.DataOrEmpty(), 40),
			statusText(inv),
			i18n.FormatDate(inv.CreatedAt.Time),
			validatedText(inv),
		)
	}
	_ = tw.Flush()
	fmt.Fprintf(o.w, "\n%d of %d invites (%s %d, %s %d)\n",
		len(l.Invites), l.Counts.Total,
		strings.ToLower(i18n.T(i18n.ValidatedKey)), l.Counts.Validated,
		strings.ToLower(i18n.T(i18n.PendingKey)), l.Counts.Pending,
	)
}

func (o *Output) printCreate(c CreateResult) {
	fmt.Fprintf(o.w, "Invite code: %s\n", c.InviteCode)
	fmt.Fprintf(o.w, "Invite ID: %s\n", c.InviteID)
	if c.Data != "" {
		fmt.Fprintf(o.w, "Data: %s\n", c.Data)
	}
	fmt.Fprintf(o.w, "Elapsed: %.0fms\n", c.ElapsedMS)
	if c.File != "" {
		fmt.Fprintf(o.w, "QR code saved to %s\n", c.File)
	} else {
		fmt.Fprintln(o.w, c.Share)
	}
}

func (o *Output) printValidate(v ValidateResult) {
	if !v.Valid {
		fmt.Fprintf(o.w, "INVALID: %s\n", v.Message)
		return
	}
	fmt.Fprintf(o.w, "VALID: %s\n", v.Message)
	fmt.Fprintf(o.w, "Invite code: %s\n", v.InviteCode)
	if v.Data != "" {
		fmt.Fprintf(o.w, "Data: %s\n", v.Data)
	}
	fmt.Fprintf(o.w, "Checked at: %s\n", v.CheckedAt)
}

func (o *Output) printInvite(inv model.Invite) {
	fmt.Fprintf(o.w, "Invite: %s (#%d)\n", inv.InviteCode, inv.ID)
	if data := inv.DataOrEmpty(); data != "" {
		fmt.Fprintf(o.w, "Data: %s\n", data)
	}
	fmt.Fprintf(o.w, "Status: %s\n", statusText(inv))
	fmt.Fprintf(o.w, "Created: %s\n", i18n.FormatDate(inv.CreatedAt.Time))
	if inv.IsValidated {
		fmt.Fprintf(o.w, "Validated: %s\n", validatedText(inv))
	}
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

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
