// Package fakeapi is an in-process stand-in for the invite API used by tests.
// Generated QR images are real PNGs; reading one back matches the exact bytes
// previously handed out rather than decoding the image.
package fakeapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/skip2/go-qrcode"

	"github.com/mcoot/qrinvite/internal/model"
)

// APIPrefix is the versioned path the fake serves under
const APIPrefix = "/api/v1"

// Server is a fake invite API backed by httptest
type Server struct {
	srv *httptest.Server

	mu        sync.Mutex
	invites   []model.Invite
	images    map[string]model.InviteCode
	nextID    int64
	listCode  int
	omitIDHdr bool
	failWith  int
	requests  []string
	now       func() time.Time
}

// New starts a fake API. Callers must Close it.
func New() *Server {
	s := &Server{
		images:   make(map[string]model.InviteCode),
		nextID:   1,
		listCode: http.StatusOK,
		now:      func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) },
	}
	s.srv = httptest.NewServer(s.router())
	return s
}

// Close shuts the server down
func (s *Server) Close() {
	s.srv.Close()
}

// BaseURL returns the versioned API base URL
func (s *Server) BaseURL() string {
	return s.srv.URL + APIPrefix
}

// AddInvite seeds an invite and returns it
func (s *Server) AddInvite(code, data string, validated bool) model.Invite {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv := model.Invite{
		ID:          s.nextID,
		InviteCode:  model.InviteCode(code),
		IsValidated: validated,
		CreatedAt:   model.NewTimestamp(s.now()),
	}
	if data != "" {
		d := data
		inv.Data = &d
	}
	if validated {
		ts := model.NewTimestamp(s.now().Add(time.Hour))
		inv.ValidatedAt = &ts
	}
	s.nextID++
	s.invites = append(s.invites, inv)
	return inv
}

// Invites returns a copy of the current invites
func (s *Server) Invites() []model.Invite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Invite(nil), s.invites...)
}

// SetListStatus makes GET /invites answer with code
func (s *Server) SetListStatus(code int) {
	s.mu.Lock()
	s.listCode = code
	s.mu.Unlock()
}

// OmitInviteID drops the X-Invite-ID header from generate responses
func (s *Server) OmitInviteID(omit bool) {
	s.mu.Lock()
	s.omitIDHdr = omit
	s.mu.Unlock()
}

// FailGenerate makes POST /generate-qrcode answer with code and a detail body
func (s *Server) FailGenerate(code int) {
	s.mu.Lock()
	s.failWith = code
	s.mu.Unlock()
}

// Requests returns "METHOD path" for every request received
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.record)

	api := r.PathPrefix(APIPrefix).Subrouter()
	api.HandleFunc("/invites", s.listInvites).Methods(http.MethodGet)
	api.HandleFunc("/invites/{code}", s.getInvite).Methods(http.MethodGet)
	api.HandleFunc("/generate-qrcode", s.generate).Methods(http.MethodPost)
	api.HandleFunc("/read-qrcode", s.read).Methods(http.MethodPost)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods(http.MethodGet)

	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listInvites(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	code := s.listCode
	invites := append([]model.Invite{}, s.invites...)
	s.mu.Unlock()

	if code != http.StatusOK {
		writeJSON(w, code, map[string]string{"detail": "list unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, invites)
}

func (s *Server) getInvite(w http.ResponseWriter, r *http.Request) {
	code := model.InviteCode(strings.TrimSpace(mux.Vars(r)["code"]))

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invites {
		if inv.InviteCode == code {
			writeJSON(w, http.StatusOK, inv)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Convite não encontrado"})
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data *string `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Data == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]string{{"msg": "Field required"}},
		})
		return
	}

	s.mu.Lock()
	failWith := s.failWith
	s.mu.Unlock()
	if failWith != 0 {
		writeJSON(w, failWith, map[string]string{"detail": "Erro ao gerar QR Code: falha simulada"})
		return
	}

	code := uuid.NewString()
	png, err := qrcode.Encode(code, qrcode.Low, 256)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
		return
	}

	inv := s.AddInvite(code, *req.Data, false)

	s.mu.Lock()
	s.images[string(png)] = inv.InviteCode
	omitID := s.omitIDHdr
	s.mu.Unlock()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=qrcode_%s.png", code))
	w.Header().Set("X-Invite-Code", code)
	if !omitID {
		w.Header().Set("X-Invite-ID", fmt.Sprint(inv.ID))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, bytes.NewReader(png))
}

func (s *Server) read(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Arquivo deve ser uma imagem"})
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.images[string(content)]
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      false,
			"is_validated": false,
			"message":      "Nenhum QR Code encontrado na imagem",
		})
		return
	}

	for i := range s.invites {
		if s.invites[i].InviteCode != code {
			continue
		}
		if !s.invites[i].IsValidated {
			ts := model.NewTimestamp(s.now().Add(time.Hour))
			s.invites[i].IsValidated = true
			s.invites[i].ValidatedAt = &ts
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"invite_code":  code,
			"data":         s.invites[i].Data,
			"is_validated": true,
			"message":      "QR Code lido e validado com sucesso",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      false,
		"invite_code":  code,
		"is_validated": false,
		"message":      "Convite não encontrado no banco de dados",
	})
}

// QRCodeFor returns the PNG previously generated for code
func (s *Server) QRCodeFor(code model.InviteCode) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for png, c := range s.images {
		if c == code {
			return []byte(png), true
		}
	}
	return nil, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
