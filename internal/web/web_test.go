package web_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/qrinvite/internal/factory"
	"github.com/mcoot/qrinvite/internal/pages"
	"github.com/mcoot/qrinvite/internal/testutil"
	"github.com/mcoot/qrinvite/internal/testutil/fakeapi"
	"github.com/mcoot/qrinvite/internal/web"
	"github.com/mcoot/qrinvite/internal/web/middleware"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	api     *fakeapi.Server
	tabs    *web.TabRegistry
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
// against a fake invite API
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	api := fakeapi.New()
	t.Cleanup(api.Close)

	app := factory.NewTestApp(api.BaseURL())
	tabs := web.NewTabRegistry(func(tabID string) *pages.Tab {
		return app.NewTab(tabID, nil)
	}, app.MockClock, time.Hour)

	router := web.NewRouter(web.RouterConfig{
		Logger: testutil.NopLogger(),
		App:    app.App,
		Tabs:   tabs,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		api:     api,
		tabs:    tabs,
		cookies: newCookieJar(),
	}
}

// newTab returns a second browser tab against the same server
func (ts *webTestServer) newTab() *webTestServer {
	other := *ts
	other.cookies = newCookieJar()
	return &other
}

// do serves req with the jar's cookies and records the response cookies
func (ts *webTestServer) do(req *http.Request) *httptest.ResponseRecorder {
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	ts.cookies.extract(rr)
	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(http.MethodPost, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return ts.do(req)
}

// upload posts a single file as multipart form field "file"
func (ts *webTestServer) upload(path, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	ts.t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(ts.t, err)
	_, err = part.Write(content)
	require.NoError(ts.t, err)
	require.NoError(ts.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return ts.do(req)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// tabID returns the tab cookie value, or ""
func (j *cookieJar) tabID() string {
	if c, ok := j.cookies[middleware.TabCookieName]; ok {
		return c.Value
	}
	return ""
}

// Helper functions for common test operations

// login signs the tab in and checks it lands on the dashboard
func (ts *webTestServer) login(username, password string) {
	ts.t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	rr := ts.post("/login", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after login")
	require.Equal(ts.t, "/dashboard", rr.Header().Get("Location"))
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
