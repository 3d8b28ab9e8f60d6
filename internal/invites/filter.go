package invites

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mcoot/qrinvite/internal/model"
)

// StatusFilter narrows a list to validated or pending invites
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusValidated StatusFilter = "validated"
	StatusPending   StatusFilter = "pending"
)

// ErrUnknownStatusFilter is returned for a filter other than all/validated/pending
var ErrUnknownStatusFilter = errors.New("unknown status filter")

// ParseStatusFilter reads a filter name; the empty string means all
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusValidated:
		return StatusValidated, nil
	case StatusPending:
		return StatusPending, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatusFilter, s)
	}
}

// Filter returns the invites matching text and status, in their original order.
// It never returns nil.
func Filter(invites []model.Invite, text string, status StatusFilter) []model.Invite {
	needle := strings.ToLower(text)
	out := make([]model.Invite, 0, len(invites))
	for _, inv := range invites {
		if matchesText(inv, needle) && matchesStatus(inv, status) {
			out = append(out, inv)
		}
	}
	return out
}

// matchesText expects needle already lowercased
func matchesText(inv model.Invite, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(string(inv.InviteCode)), needle) {
		return true
	}
	return inv.Data != nil && strings.Contains(strings.ToLower(*inv.Data), needle)
}

func matchesStatus(inv model.Invite, status StatusFilter) bool {
	switch status {
	case StatusValidated:
		return inv.IsValidated
	case StatusPending:
		return !inv.IsValidated
	default:
		return true
	}
}

// Counts are aggregate numbers over a list of invites
type Counts struct {
	Total     int `json:"total"`
	Validated int `json:"validated"`
	Pending   int `json:"pending"`
}

// CountOf tallies invites. Pending is always Total - Validated.
func CountOf(invites []model.Invite) Counts {
	c := Counts{Total: len(invites)}
	for _, inv := range invites {
		if inv.IsValidated {
			c.Validated++
		}
	}
	c.Pending = c.Total - c.Validated
	return c
}
