package pages

import (
	"context"
	"errors"

	"github.com/mcoot/qrinvite/internal/apiclient"
	"github.com/mcoot/qrinvite/internal/invites"
)

// StatsState tells the dashboard which numbers it can show
type StatsState int

const (
	StatsOK StatsState = iota + 1
	// StatsUnavailable: the API answered with an error status; counts read as zero
	StatsUnavailable
	// StatsError: the API could not be reached; counts read as an error marker
	StatsError
)

// Stats is the render-ready state of the dashboard
type Stats struct {
	invites.Counts
	State StatsState
}

// Dashboard handles the dashboard page
type Dashboard struct {
	state *invites.ListState
}

// NewDashboard creates a Dashboard
func NewDashboard(state *invites.ListState) *Dashboard {
	return &Dashboard{state: state}
}

// Stats loads the collection and summarizes it
func (d *Dashboard) Stats(ctx context.Context) Stats {
	_, err := d.state.Load(ctx)
	switch {
	case err == nil:
		return Stats{Counts: d.state.Counts(), State: StatsOK}
	case errors.Is(err, apiclient.ErrTransport):
		return Stats{State: StatsError}
	default:
		return Stats{State: StatsUnavailable}
	}
}
