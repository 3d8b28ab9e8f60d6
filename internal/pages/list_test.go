package pages

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/qrinvite/internal/apiclient"
	"github.com/mcoot/qrinvite/internal/invites"
	"github.com/mcoot/qrinvite/internal/model"
	"github.com/mcoot/qrinvite/internal/testutil"
	"github.com/mcoot/qrinvite/internal/testutil/fakeapi"
)

type ListerSuite struct {
	suite.Suite
	api       *fakeapi.Server
	state     *invites.ListState
	lister    *Lister
	dashboard *Dashboard
	ctx       context.Context
}

func TestListerSuite(t *testing.T) {
	suite.Run(t, new(ListerSuite))
}

func (s *ListerSuite) SetupTest() {
	s.api = fakeapi.New()
	client := apiclient.New(apiclient.Config{BaseURL: s.api.BaseURL(), Logger: testutil.NopLogger()})
	s.state = invites.New(client, testutil.NopLogger())
	s.lister = NewLister(s.state)
	s.dashboard = NewDashboard(invites.New(client, testutil.NopLogger()))
	s.ctx = context.Background()
}

func (s *ListerSuite) TearDownTest() {
	s.api.Close()
}

func (s *ListerSuite) TestRefreshShowsItems() {
	s.api.AddInvite("AB12", "Festa", false)
	s.api.AddInvite("CD34", "", true)

	view := s.lister.Refresh(s.ctx)

	s.Equal(ListItems, view.Mode)
	s.Len(view.Invites, 2)
	s.Equal(invites.Counts{Total: 2, Validated: 1, Pending: 1}, view.Counts)
	s.Equal(invites.StatusAll, view.Status)
	s.Empty(view.Text)
}

func (s *ListerSuite) TestEmptyIsNotError() {
	view := s.lister.Refresh(s.ctx)

	s.Equal(ListEmpty, view.Mode)
	s.Equal("Nenhum convite criado ainda.", view.Message)
}

func (s *ListerSuite) TestFailedLoadIsError() {
	s.api.AddInvite("AB12", "", false)
	s.api.SetListStatus(http.StatusInternalServerError)

	view := s.lister.Refresh(s.ctx)

	s.Equal(ListError, view.Mode)
	s.Empty(view.Invites)
	s.Equal("Erro ao carregar convites. Verifique se a API está rodando.", view.Message)
}

func (s *ListerSuite) TestFilterNoMatch() {
	s.api.AddInvite("AB12", "Festa", false)
	s.lister.Refresh(s.ctx)

	view := s.lister.Filter("zzz", invites.StatusAll)
	s.Equal(ListNoMatch, view.Mode)
	s.Equal("zzz", view.Text)
	s.Equal("Nenhum convite encontrado com os filtros aplicados.", view.Message)

	view = s.lister.Filter("fest", invites.StatusPending)
	s.Equal(ListItems, view.Mode)
	s.Equal([]model.InviteCode{"AB12"}, inviteCodes(view.Invites))
}

func (s *ListerSuite) TestFilterDoesNotRefetch() {
	s.api.AddInvite("AB12", "", false)
	s.lister.Refresh(s.ctx)
	s.api.AddInvite("CD34", "", false)

	view := s.lister.Filter("", invites.StatusAll)
	s.Len(view.Invites, 1)
	s.Len(s.api.Requests(), 1)
}

func (s *ListerSuite) TestDashboardStats() {
	s.api.AddInvite("AB12", "", false)
	s.api.AddInvite("CD34", "", true)
	s.api.AddInvite("EF56", "", true)

	stats := s.dashboard.Stats(s.ctx)
	s.Equal(StatsOK, stats.State)
	s.Equal(invites.Counts{Total: 3, Validated: 2, Pending: 1}, stats.Counts)
}

func (s *ListerSuite) TestDashboardErrorStatusShowsZeros() {
	s.api.AddInvite("AB12", "", false)
	s.api.SetListStatus(http.StatusServiceUnavailable)

	stats := s.dashboard.Stats(s.ctx)
	s.Equal(StatsUnavailable, stats.State)
	s.Equal(invites.Counts{}, stats.Counts)
}

func (s *ListerSuite) TestDashboardTransportFailure() {
	s.api.Close()

	stats := s.dashboard.Stats(s.ctx)
	s.Equal(StatsError, stats.State)
}

func inviteCodes(list []model.Invite) []model.InviteCode {
	out := make([]model.InviteCode, 0, len(list))
	for _, inv := range list {
		out = append(out, inv.InviteCode)
	}
	return out
}
