package pages

import (
	"context"

	"github.com/mcoot/qrinvite/internal/i18n"
	"github.com/mcoot/qrinvite/internal/invites"
	"github.com/mcoot/qrinvite/internal/model"
)

// ListMode selects which affordance the list page shows
type ListMode int

const (
	ListItems ListMode = iota + 1
	// ListEmpty: nothing has been created yet
	ListEmpty
	// ListNoMatch: invites exist but none pass the filters
	ListNoMatch
	// ListError: the collection could not be loaded
	ListError
)

// ListView is the render-ready state of the list page
type ListView struct {
	Mode    ListMode
	Invites []model.Invite
	Counts  invites.Counts
	Text    string
	Status  invites.StatusFilter
	Message string
}

// Lister handles the invite list page
type Lister struct {
	state *invites.ListState
}

// NewLister creates a Lister over state
func NewLister(state *invites.ListState) *Lister {
	return &Lister{state: state}
}

// Refresh reloads the collection and shows it unfiltered
func (l *Lister) Refresh(ctx context.Context) ListView {
	_, _ = l.state.Load(ctx)
	return ProjectList(l.state, "", invites.StatusAll)
}

// Filter re-renders the cached collection with text and status
func (l *Lister) Filter(text string, status invites.StatusFilter) ListView {
	return ProjectList(l.state, text, status)
}

// ProjectList derives the list page from a ListState. It performs no I/O.
func ProjectList(state *invites.ListState, text string, status invites.StatusFilter) ListView {
	view := ListView{Text: text, Status: status}

	if state.Status() == invites.StatusFailed {
		view.Mode = ListError
		view.Message = i18n.T(i18n.LoadInvitesFailedKey)
		return view
	}

	view.Counts = state.Counts()
	if view.Counts.Total == 0 {
		view.Mode = ListEmpty
		view.Message = i18n.T(i18n.NoInvitesKey)
		return view
	}

	view.Invites = state.Filter(text, status)
	if len(view.Invites) == 0 {
		view.Mode = ListNoMatch
		view.Message = i18n.T(i18n.NoFilterMatchKey)
		return view
	}

	view.Mode = ListItems
	return view
}
