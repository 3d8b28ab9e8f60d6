package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/qrinvite/internal/i18n"
	"github.com/mcoot/qrinvite/internal/invites"
	"github.com/mcoot/qrinvite/internal/model"
	"github.com/mcoot/qrinvite/internal/pages"
	"github.com/mcoot/qrinvite/internal/session"
	"github.com/mcoot/qrinvite/internal/web/middleware"
	"github.com/mcoot/qrinvite/internal/web/templates/views"
)

// MaxUploadSize caps the QR image accepted by the validate form
const MaxUploadSize = 10 << 20

// InviteLookup fetches a single invite
type InviteLookup interface {
	GetInvite(ctx context.Context, code model.InviteCode) (*model.Invite, error)
}

// InviteHandler handles the create, list, validate and invite detail pages
type InviteHandler struct {
	api    InviteLookup
	logger *slog.Logger
}

// NewInviteHandler creates a new InviteHandler
func NewInviteHandler(api InviteLookup, logger *slog.Logger) *InviteHandler {
	return &InviteHandler{
		api:    api,
		logger: logger,
	}
}

// CreatePage renders the create form, or the QR code created last
func (h *InviteHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	creator := middleware.GetTab(r.Context()).Creator
	data := views.CreateData{
		PageData: pageData(r, "Criar convite", session.CreatePath),
		Invite:   creator.Current(),
	}
	if data.Invite != nil {
		data.Share, _ = creator.ShareText()
	}
	render(w, r, http.StatusOK, views.Create(data))
}

// Create handles create form submission
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderMessage(w, r, http.StatusBadRequest, "Criar convite", err.Error())
		return
	}

	creator := middleware.GetTab(r.Context()).Creator
	input := r.FormValue("data")

	result, err := creator.Create(r.Context(), pages.CreateRequest{Data: input})
	if err != nil {
		status := http.StatusOK
		if pages.Classify(err) == pages.KindInput && !errors.Is(err, pages.ErrBusy) {
			status = http.StatusBadRequest
		}
		render(w, r, status, views.Create(views.CreateData{
			PageData: pageData(r, "Criar convite", session.CreatePath),
			Data:     input,
			Error:    pages.UserMessage(err, i18n.T(i18n.GenerateFailedKey)),
		}))
		return
	}

	share, _ := creator.ShareText()
	render(w, r, http.StatusOK, views.Create(views.CreateData{
		PageData:  pageData(r, "Criar convite", session.CreatePath),
		Invite:    result.Invite,
		ElapsedMS: float64(result.Elapsed.Microseconds()) / 1000,
		Share:     share,
	}))
}

// QRCode serves the tab's current QR image.
// A code query parameter that no longer matches the current image is a 404.
func (h *InviteHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	current := middleware.GetTab(r.Context()).Creator.Current()
	code := r.URL.Query().Get("code")
	if current == nil || len(current.Image) == 0 || (code != "" && code != string(current.InviteCode)) {
		http.NotFound(w, r)
		return
	}

	contentType := current.ContentType
	if contentType == "" {
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", current.Filename()))
	}
	_, _ = w.Write(current.Image)
}

// Reset clears the current QR code and shows an empty form
func (h *InviteHandler) Reset(w http.ResponseWriter, r *http.Request) {
	middleware.GetTab(r.Context()).Creator.Reset()
	http.Redirect(w, r, session.CreatePath, http.StatusSeeOther)
}

// List renders the invite list. Query filters apply to the cached list;
// a refresh, or the first visit, reloads it and clears the filters.
func (h *InviteHandler) List(w http.ResponseWriter, r *http.Request) {
	tab := middleware.GetTab(r.Context())
	query := r.URL.Query()

	var view pages.ListView
	_, filtering := query["search"]
	if _, ok := query["status"]; ok {
		filtering = true
	}

	if !filtering || query.Get("refresh") != "" || tab.Invites.Status() == invites.StatusNotLoaded {
		view = tab.Lister.Refresh(r.Context())
	} else {
		status, err := invites.ParseStatusFilter(query.Get("status"))
		if err != nil {
			status = invites.StatusAll
		}
		view = tab.Lister.Filter(query.Get("search"), status)
	}

	render(w, r, http.StatusOK, views.List(views.ListData{
		PageData: pageData(r, "Convites", session.ListPath),
		View:     view,
	}))
}

// ValidatePage renders the upload form
func (h *InviteHandler) ValidatePage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, views.Validate(views.ValidateData{
		PageData: pageData(r, "Validar convite", session.ValidatePath),
	}))
}

// Validate handles a QR image upload
func (h *InviteHandler) Validate(w http.ResponseWriter, r *http.Request) {
	validator := middleware.GetTab(r.Context()).Validator
	upload, err := readUpload(r)
	if err != nil {
		h.logger.Debug("rejected upload", slog.String("error", err.Error()))
		upload = pages.FileUpload{}
	}

	result, err := validator.ValidateFile(r.Context(), upload)
	data := views.ValidateData{
		PageData: pageData(r, "Validar convite", session.ValidatePath),
		Result:   result,
	}
	status := http.StatusOK
	if err != nil {
		data.Error = pages.UserMessage(err, i18n.T(i18n.InvalidQRCodeKey))
		if pages.Classify(err) == pages.KindInput {
			status = http.StatusBadRequest
		}
	}
	render(w, r, status, views.Validate(data))
}

// Invite renders a single invite
func (h *InviteHandler) Invite(w http.ResponseWriter, r *http.Request) {
	code := model.InviteCode(mux.Vars(r)["code"])

	inv, err := h.api.GetInvite(r.Context(), code)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, model.ErrInviteNotFound) {
			status = http.StatusNotFound
		}
		renderMessage(w, r, status, "Convite", pages.UserMessage(err, i18n.T(i18n.InviteNotFoundKey)))
		return
	}

	render(w, r, http.StatusOK, views.Invite(views.InviteData{
		PageData: pageData(r, "Convite "+string(inv.InviteCode), session.ListPath),
		Invite:   *inv,
	}))
}

func readUpload(r *http.Request) (pages.FileUpload, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		return pages.FileUpload{}, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return pages.FileUpload{}, err
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return pages.FileUpload{}, err
	}

	return pages.FileUpload{
		Filename:    header.Filename,
		ContentType: strings.TrimSpace(header.Header.Get("Content-Type")),
		Content:     content,
	}, nil
}
