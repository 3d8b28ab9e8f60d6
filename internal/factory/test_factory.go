package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/qrinvite/internal/apiclient"
	"github.com/mcoot/qrinvite/internal/dependencies/mocks"
	"github.com/mcoot/qrinvite/internal/session"
	"github.com/mcoot/qrinvite/internal/storage/memory"
	"github.com/mcoot/qrinvite/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MockClock drives login times and request timing
	MockClock *mocks.MockClock
	// Memory is the tab storage, exposed for assertions
	Memory *memory.Storage
}

// NewTestApp creates an App against the API at apiURL with mocked dependencies
func NewTestApp(apiURL string) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()

	auth, err := session.NewStaticAuthenticator(mockClock, bcrypt.MinCost, session.DefaultUsers...)
	if err != nil {
		panic(err)
	}
	api := apiclient.New(apiclient.Config{BaseURL: apiURL, Clock: mockClock, Logger: logger})

	return &TestApp{
		App:       newWithDependencies(store, mockClock, api, auth, logger),
		MockClock: mockClock,
		Memory:    store,
	}
}
