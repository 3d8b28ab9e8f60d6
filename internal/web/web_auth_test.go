package web_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymousIsRedirectedToLogin(t *testing.T) {
	ts := newWebTestServer(t)

	for _, path := range []string{"/dashboard", "/create", "/list", "/validate", "/invites/AB12"} {
		rr := ts.get(path)
		assert.Equal(t, http.StatusSeeOther, rr.Code, path)
		assert.Equal(t, "/login", rr.Header().Get("Location"), path)
	}

	// The first visit issued a tab cookie
	assert.NotEmpty(t, ts.cookies.tabID())
}

func TestRootRedirectsToLogin(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestLoginPage(t *testing.T) {
	ts := newWebTestServer(t)

	for _, path := range []string{"/login", "/login.html"} {
		rr := ts.get(path)
		require.Equal(t, http.StatusOK, rr.Code, path)

		doc := parseHTML(rr.Body)
		assertContainsElement(t, doc, "form#login-form")
		assertNotContainsElement(t, doc, "nav")
	}
}

func TestLogin(t *testing.T) {
	ts := newWebTestServer(t)

	ts.login("admin", "admin123")

	rr := ts.get("/dashboard")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#user-greeting", "Olá, Administrador")
	assertContainsText(t, doc, ".flash-success", "Olá, Administrador")
}

func TestLoginRejected(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	rr := ts.post("/login", form)
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#login-error", "Usuário ou senha inválidos")
	assert.Equal(t, "admin", doc.Find("input[name='username']").AttrOr("value", ""))

	// Still not signed in
	rr = ts.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, 0, ts.app.Memory.Len())
}

func TestPublicPagesRedirectWhenLoggedIn(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login("user", "user123")

	for _, path := range []string{"/", "/login", "/login.html"} {
		rr := ts.get(path)
		assert.Equal(t, http.StatusSeeOther, rr.Code, path)
		assert.Equal(t, "/dashboard", rr.Header().Get("Location"), path)
	}
}

func TestLogout(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login("admin", "admin123")
	require.Equal(t, http.StatusOK, ts.get("/dashboard").Code)
	require.Equal(t, 1, ts.tabs.Len())

	rr := ts.post("/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	assert.Equal(t, 0, ts.app.Memory.Len())
	assert.Equal(t, 0, ts.tabs.Len())

	rr = ts.followRedirect(rr)
	require.Equal(t, http.StatusOK, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), ".flash", "Você saiu da sua conta")

	rr = ts.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestTabsAreIsolated(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login("admin", "admin123")

	other := ts.newTab()
	rr := other.get("/dashboard")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	assert.NotEqual(t, ts.cookies.tabID(), other.cookies.tabID())
}

func TestAnonymousVisitsKeepNoTabState(t *testing.T) {
	ts := newWebTestServer(t)

	for i := 0; i < 200; i++ {
		visitor := ts.newTab()
		require.Equal(t, http.StatusOK, visitor.get("/login").Code)
		require.Equal(t, http.StatusSeeOther, visitor.get("/dashboard").Code)
	}

	assert.Equal(t, 0, ts.tabs.Len())
}

func TestSignedInPublicVisitKeepsNoTabState(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login("admin", "admin123")

	assert.Equal(t, http.StatusSeeOther, ts.get("/login").Code)
	assert.Equal(t, 0, ts.tabs.Len())
}

func TestIdleTabStateIsEvicted(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login("admin", "admin123")
	require.Equal(t, http.StatusOK, ts.post("/create", url.Values{"data": {"Festa"}}).Code)
	require.Equal(t, 1, ts.tabs.Len())

	ts.app.MockClock.Advance(2 * time.Hour)

	other := ts.newTab()
	other.login("user", "user123")
	require.Equal(t, http.StatusOK, other.get("/dashboard").Code)
	assert.Equal(t, 1, ts.tabs.Len())

	// The evicted tab is still signed in but starts with fresh page state
	rr := ts.get("/create/qrcode.png")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, 2, ts.tabs.Len())
}
