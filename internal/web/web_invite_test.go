package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/qrinvite/internal/model"
)

func TestDashboardStats(t *testing.T) {
	ts := newWebTestServer(t)
	ts.api.AddInvite("AB12", "", true)
	ts.api.AddInvite("CD34", "", false)
	ts.api.AddInvite("EF56", "", false)
	ts.login("admin", "admin123")

	rr := ts.get("/dashboard")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, "3", doc.Find("#stat-total").Text())
	assert.Equal(t, "1", doc.Find("#stat-validated").Text())
	assert.Equal(t, "2", doc.Find("#stat-pending").Text())
	assertNotContainsElement(t, doc, "#stats-error")
}

func TestDashboardAPIErrorShowsZeros(t *testing.T) {
	ts := newWebTestServer(t)
	ts.api.AddInvite("AB12", "", true)
	ts.api.SetListStatus(http.StatusInternalServerError)
	ts.login("admin", "admin123")

	doc := parseHTML(ts.get("/dashboard").Body)

	assert.Equal(t, "0", doc.Find("#stat-total").Text())
	assertNotContainsElement(t, doc, "#stats-error")
}

func TestDashboardAPIUnreachable(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login("admin", "admin123")
	ts.api.Close()

	doc := parseHTML(ts.get("/dashboard").Body)

	assert.Equal(t, "Erro", doc.Find("#stat-total").Text())
	assertContainsElement(t, doc, "#stats-error")
}

func TestCreateInvite(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login("admin", "admin123")

	rr := ts.post("/create", url.Values{"data": {"Festa"}})
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	code := doc.Find("#invite-code").Text()
	require.NotEmpty(t, code)
	assertContainsText(t, doc, "#invite-data", "Festa")
	assertContainsText(t, doc, "#share-text", code)

	src, ok := doc.Find("#qr-image").Attr("src")
	require.True(t, ok)
	rr = ts.get(src)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	png, ok := ts.api.QRCodeFor(model.InviteCode(code))
	require.True(t, ok)
	assert.Equal(t, png, rr.Body.Bytes())

	href, ok := doc.Find("#qr-download").Attr("href")
	require.True(t, ok)
	rr = ts.get(href)
	assert.Equal(t, `attachment; filename="qrcode_`+code+`.png"`, rr.Header().Get("Content-Disposition"))

	// The QR code survives a reload of the page
	doc = parseHTML(ts.get("/create").Body)
	assert.Equal(t, code, doc.Find("#invite-code").Text())
}

func TestCreateReset(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login("admin", "admin123")
	require.Equal(t, http.StatusOK, ts.post("/create", url.Values{"data": {"Festa"}}).Code)

	rr := ts.post("/create/reset", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/create", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsElement(t, doc, "form#create-form")
	assertNotContainsElement(t, doc, "#qr-image")

	assert.Equal(t, http.StatusNotFound, ts.get("/create/qrcode.png").Code)
}

func TestCreateAPIError(t *testing.T) {
	ts := newWebTestServer(t)
	ts.api.FailGenerate(http.StatusInternalServerError)
	ts.login("admin", "admin123")

	rr := ts.post("/create", url.Values{"data": {"Festa"}})
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#create-error", "Erro ao gerar QR Code: falha simulada")
	assert.Equal(t, "Festa", doc.Find("textarea[name='data']").Text())
}

func TestCreateAPIUnreachable(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login("admin", "admin123")
	ts.api.Close()

	doc := parseHTML(ts.post("/create", url.Values{"data": {"Festa"}}).Body)

	assertContainsText(t, doc, "#create-error", "Erro ao conectar com o servidor")
}

func TestListInvites(t *testing.T) {
	ts := newWebTestServer(t)
	ts.api.AddInvite("AB12", "Festa", false)
	ts.api.AddInvite("CD34", "Casamento", true)
	ts.login("admin", "admin123")

	doc := parseHTML(ts.get("/list").Body)
	assert.Equal(t, 2, doc.Find("tr.invite").Length())
	assertContainsText(t, doc, "tr[data-code='CD34'] .status", "Validado")

	doc = parseHTML(ts.get("/list?search=fest&status=all").Body)
	assert.Equal(t, 1, doc.Find("tr.invite").Length())
	assertContainsElement(t, doc, "tr[data-code='AB12']")

	doc = parseHTML(ts.get("/list?search=&status=validated").Body)
	assert.Equal(t, 1, doc.Find("tr.invite").Length())
	assertContainsElement(t, doc, "tr[data-code='CD34']")

	doc = parseHTML(ts.get("/list?search=zzz&status=all").Body)
	assertContainsText(t, doc, "#list-no-match", "Nenhum convite encontrado com os filtros aplicados.")
}

func TestListFiltersDoNotRefetch(t *testing.T) {
	ts := newWebTestServer(t)
	ts.api.AddInvite("AB12", "", false)
	ts.login("admin", "admin123")
	ts.get("/list")
	ts.api.AddInvite("CD34", "", false)

	doc := parseHTML(ts.get("/list?status=all").Body)
	assert.Equal(t, 1, doc.Find("tr.invite").Length())

	doc = parseHTML(ts.get("/list?refresh=1").Body)
	assert.Equal(t, 2, doc.Find("tr.invite").Length())
}

func TestListEmptyAndError(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login("admin", "admin123")

	doc := parseHTML(ts.get("/list").Body)
	assertContainsElement(t, doc, "#list-empty")
	assertNotContainsElement(t, doc, "#list-error")

	ts.api.SetListStatus(http.StatusInternalServerError)
	doc = parseHTML(ts.get("/list").Body)
	assertContainsElement(t, doc, "#list-error")
	assertNotContainsElement(t, doc, "#list-empty")
}

func TestValidateInvite(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login("admin", "admin123")

	doc := parseHTML(ts.post("/create", url.Values{"data": {"Festa"}}).Body)
	code := doc.Find("#invite-code").Text()
	png, ok := ts.api.QRCodeFor(model.InviteCode(code))
	require.True(t, ok)

	rr := ts.upload("/validate", "qr.png", "image/png", png)
	require.Equal(t, http.StatusOK, rr.Code)

	doc = parseHTML(rr.Body)
	assertContainsElement(t, doc, "#validation-result.valid")
	assert.Equal(t, code, doc.Find("#result-code").Text())
	assertContainsText(t, doc, "#result-data", "Festa")
}

func TestValidateUnknownImage(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login("admin", "admin123")

	rr := ts.upload("/validate", "qr.png", "image/png", []byte("\x89PNG\r\n\x1a\nunknown"))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#validation-result.invalid")
	assertContainsText(t, doc, "#validation-result", "Nenhum QR Code encontrado na imagem")
}

func TestValidateRejectsNonImage(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login("admin", "admin123")
	before := len(ts.api.Requests())

	rr := ts.upload("/validate", "notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#validate-error", "Por favor, selecione uma imagem válida.")
	assertNotContainsElement(t, doc, "#validation-result")
	assert.Len(t, ts.api.Requests(), before)
}

func TestValidateWithoutFile(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login("admin", "admin123")

	rr := ts.post("/validate", url.Values{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), "#validate-error", "Por favor, selecione uma imagem do QR Code.")
}

func TestInviteDetail(t *testing.T) {
	ts := newWebTestServer(t)
	ts.api.AddInvite("AB12", "Festa", true)
	ts.login("admin", "admin123")

	rr := ts.get("/invites/AB12")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "AB12", parseHTML(rr.Body).Find("#invite-code").Text())

	rr = ts.get("/invites/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), "#message", "Convite não encontrado")
}
