package pages

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/qrinvite/internal/apiclient"
	"github.com/mcoot/qrinvite/internal/model"
	"github.com/mcoot/qrinvite/internal/testutil"
	"github.com/mcoot/qrinvite/internal/testutil/fakeapi"
)

// blockingGenerator holds every call until release is closed
type blockingGenerator struct {
	entered chan struct{}
	release chan struct{}
}

func (g *blockingGenerator) GenerateQRCode(ctx context.Context, data string) (*model.GeneratedInvite, time.Duration, error) {
	g.entered <- struct{}{}
	<-g.release
	return &model.GeneratedInvite{InviteCode: "held", Data: data}, time.Millisecond, nil
}

type CreatorSuite struct {
	suite.Suite
	api     *fakeapi.Server
	creator *Creator
	ctx     context.Context
}

func TestCreatorSuite(t *testing.T) {
	suite.Run(t, new(CreatorSuite))
}

func (s *CreatorSuite) SetupTest() {
	s.api = fakeapi.New()
	client := apiclient.New(apiclient.Config{BaseURL: s.api.BaseURL(), Logger: testutil.NopLogger()})
	s.creator = NewCreator(client, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *CreatorSuite) TearDownTest() {
	s.api.Close()
}

func (s *CreatorSuite) TestCreate() {
	result, err := s.creator.Create(s.ctx, CreateRequest{Data: "Festa"})
	s.Require().NoError(err)

	s.NotEmpty(result.Invite.InviteCode)
	s.Equal("Festa", result.Invite.Data)
	s.NotEmpty(result.Invite.Image)
	s.Same(result.Invite, s.creator.Current())
	s.False(s.creator.Submitting())
}

func (s *CreatorSuite) TestCreateRejectsEmptyDataLocally() {
	_, err := s.creator.Create(s.ctx, CreateRequest{})
	s.ErrorIs(err, ErrInvalidInput)
	s.Equal(KindInput, Classify(err))
	s.Empty(s.api.Requests())
}

func (s *CreatorSuite) TestCreateMissingHeader() {
	s.api.OmitInviteID(true)

	_, err := s.creator.Create(s.ctx, CreateRequest{Data: "x"})
	s.ErrorIs(err, apiclient.ErrMissingInviteHeaders)
	s.Equal(KindHTTP, Classify(err))
	s.Nil(s.creator.Current())
}

func (s *CreatorSuite) TestCreateServerErrorUsesDetail() {
	s.api.FailGenerate(http.StatusInternalServerError)

	_, err := s.creator.Create(s.ctx, CreateRequest{Data: "x"})
	s.Require().Error(err)
	s.Equal(KindHTTP, Classify(err))
	s.Equal("Erro ao gerar QR Code: falha simulada", UserMessage(err, "fallback"))
}

func (s *CreatorSuite) TestCreateReleasesPreviousImage() {
	first, err := s.creator.Create(s.ctx, CreateRequest{Data: "a"})
	s.Require().NoError(err)
	_, err = s.creator.Create(s.ctx, CreateRequest{Data: "b"})
	s.Require().NoError(err)

	s.Equal(1, s.creator.Released())
	s.Nil(first.Invite.Image)
	s.Equal("b", s.creator.Current().Data)
}

func (s *CreatorSuite) TestResetReleasesOnce() {
	_, err := s.creator.Create(s.ctx, CreateRequest{Data: "a"})
	s.Require().NoError(err)

	s.True(s.creator.Reset())
	s.False(s.creator.Reset())
	s.Equal(1, s.creator.Released())
	s.Nil(s.creator.Current())
}

func (s *CreatorSuite) TestDownload() {
	result, err := s.creator.Create(s.ctx, CreateRequest{Data: "a"})
	s.Require().NoError(err)
	dir := s.T().TempDir()

	path, err := s.creator.Download(dir)
	s.Require().NoError(err)

	s.Equal(filepath.Join(dir, "qrcode_"+string(result.Invite.InviteCode)+".png"), path)
	written, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Equal(result.Invite.Image, written)
}

func (s *CreatorSuite) TestDownloadWithoutQRCode() {
	_, err := s.creator.Download(s.T().TempDir())
	s.ErrorIs(err, ErrNoQRCode)
}

func (s *CreatorSuite) TestShareText() {
	_, err := s.creator.ShareText()
	s.ErrorIs(err, ErrNoQRCode)

	result, err := s.creator.Create(s.ctx, CreateRequest{Data: "a"})
	s.Require().NoError(err)

	text, err := s.creator.ShareText()
	s.Require().NoError(err)
	s.Contains(text, string(result.Invite.InviteCode))
}

func (s *CreatorSuite) TestSecondSubmitWhileBusy() {
	gen := &blockingGenerator{entered: make(chan struct{}), release: make(chan struct{})}
	creator := NewCreator(gen, testutil.NopLogger())

	done := make(chan error, 1)
	go func() {
		_, err := creator.Create(s.ctx, CreateRequest{Data: "a"})
		done <- err
	}()
	<-gen.entered

	s.True(creator.Submitting())
	_, err := creator.Create(s.ctx, CreateRequest{Data: "b"})
	s.True(errors.Is(err, ErrBusy))

	close(gen.release)
	s.NoError(<-done)
	s.False(creator.Submitting())
}
