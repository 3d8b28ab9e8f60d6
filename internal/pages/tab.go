package pages

import (
	"context"
	"log/slog"

	"github.com/mcoot/qrinvite/internal/apiclient"
	"github.com/mcoot/qrinvite/internal/dependencies/clock"
	"github.com/mcoot/qrinvite/internal/i18n"
	"github.com/mcoot/qrinvite/internal/invites"
	"github.com/mcoot/qrinvite/internal/session"
)

// Deps are the collaborators shared by every page of a tab
type Deps struct {
	API    *apiclient.Client
	Clock  clock.Clock
	Logger *slog.Logger
}

// Tab groups the session and page state of one tab
type Tab struct {
	Session   *session.Store
	Invites   *invites.ListState
	Creator   *Creator
	Validator *Validator
	Lister    *Lister
	Dashboard *Dashboard
}

// NewTab builds the page handlers for a tab around its session
func NewTab(store *session.Store, deps Deps) *Tab {
	logger := deps.Logger.With(slog.String("tab", store.TabID()))
	state := invites.New(deps.API, logger)

	return &Tab{
		Session:   store,
		Invites:   state,
		Creator:   NewCreator(deps.API, logger),
		Validator: NewValidator(deps.API, deps.Clock, logger),
		Lister:    NewLister(state),
		// dashboard keeps its own cache so a failed stats load never blanks the list page
		Dashboard: NewDashboard(invites.New(deps.API, logger)),
	}
}

// Greeting returns the header greeting for the signed-in user, or "" when nobody is
func (t *Tab) Greeting(ctx context.Context) string {
	identity, ok := t.Session.CurrentIdentity(ctx)
	if !ok {
		return ""
	}
	return i18n.T(i18n.GreetingKey, identity.DisplayName)
}
