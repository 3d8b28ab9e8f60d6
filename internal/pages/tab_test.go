package pages

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/qrinvite/internal/apiclient"
	"github.com/mcoot/qrinvite/internal/dependencies/mocks"
	"github.com/mcoot/qrinvite/internal/session"
	"github.com/mcoot/qrinvite/internal/storage/memory"
	"github.com/mcoot/qrinvite/internal/testutil"
	"github.com/mcoot/qrinvite/internal/testutil/fakeapi"
)

func TestTabGreeting(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()

	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	auth, err := session.NewStaticAuthenticator(clk, bcrypt.MinCost, session.DefaultUsers...)
	require.NoError(t, err)

	store := session.New(session.Config{Storage: memory.New(), Authenticator: auth})
	tab := NewTab(store, Deps{
		API:    apiclient.New(apiclient.Config{BaseURL: api.BaseURL(), Clock: clk}),
		Clock:  clk,
		Logger: testutil.NopLogger(),
	})
	ctx := context.Background()

	assert.Empty(t, tab.Greeting(ctx))

	require.True(t, store.Login(ctx, "admin", "admin123").Success)
	assert.Equal(t, "Olá, Administrador", tab.Greeting(ctx))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindNone},
		{"busy", ErrBusy, KindInput},
		{"not an image", fmt.Errorf("select: %w", ErrNotAnImage), KindInput},
		{"transport", fmt.Errorf("%w: boom", apiclient.ErrTransport), KindTransport},
		{"http", &apiclient.APIError{StatusCode: 500, Detail: "x"}, KindHTTP},
		{"missing headers", apiclient.ErrMissingInviteHeaders, KindHTTP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil, "fallback"))
	assert.Equal(t, "detail", UserMessage(&apiclient.APIError{StatusCode: 400, Detail: "detail", FromBody: true}, "fallback"))
	assert.Equal(t, "fallback", UserMessage(&apiclient.APIError{StatusCode: 502, Detail: "Bad Gateway"}, "fallback"))
	assert.Equal(t,
		"Erro ao conectar com o servidor. Verifique se a API está rodando.",
		UserMessage(fmt.Errorf("%w: x", apiclient.ErrTransport), "fallback"),
	)
}
