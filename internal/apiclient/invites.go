package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"github.com/mcoot/qrinvite/internal/i18n"
	"github.com/mcoot/qrinvite/internal/model"
)

// API endpoints, relative to the base URL
const (
	InvitesEndpoint  = "/invites"
	GenerateEndpoint = "/generate-qrcode"
	ReadEndpoint     = "/read-qrcode"
	healthEndpoint   = "/health"
)

// Correlation headers sent with a generated QR code
const (
	HeaderInviteCode = "X-Invite-Code"
	HeaderInviteID   = "X-Invite-ID"
)

// ListInvites fetches the whole invite collection in server order
func (c *Client) ListInvites(ctx context.Context) ([]model.Invite, time.Duration, error) {
	result, err := c.Execute(ctx, InvitesEndpoint, Options{Method: http.MethodGet})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = result.Response.Body.Close() }()

	if !result.OK {
		return nil, result.Elapsed, decodeAPIError(result.Response, i18n.T(i18n.LoadInvitesFailedKey))
	}

	var invites []model.Invite
	if err := json.NewDecoder(result.Response.Body).Decode(&invites); err != nil {
		return nil, result.Elapsed, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if invites == nil {
		invites = []model.Invite{}
	}
	return invites, result.Elapsed, nil
}

// GetInvite looks up a single invite by code
func (c *Client) GetInvite(ctx context.Context, code model.InviteCode) (*model.Invite, error) {
	endpoint := InvitesEndpoint + "/" + url.PathEscape(string(code))
	result, err := c.Execute(ctx, endpoint, Options{Method: http.MethodGet})
	if err != nil {
		return nil, err
	}
	defer func() { _ = result.Response.Body.Close() }()

	if result.Response.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", model.ErrInviteNotFound, code)
	}
	if !result.OK {
		return nil, decodeAPIError(result.Response, i18n.T(i18n.InviteNotFoundKey))
	}

	var invite model.Invite
	if err := json.NewDecoder(result.Response.Body).Decode(&invite); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return &invite, nil
}

type generateRequest struct {
	Data string `json:"data"`
}

// GenerateQRCode creates an invite carrying data and returns its QR image.
// Both correlation headers must be present for the result to count as a success.
func (c *Client) GenerateQRCode(ctx context.Context, data string) (*model.GeneratedInvite, time.Duration, error) {
	body, err := json.Marshal(generateRequest{Data: data})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	result, err := c.Execute(ctx, GenerateEndpoint, Options{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": {"application/json"}},
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = result.Response.Body.Close() }()

	if !result.OK {
		return nil, result.Elapsed, decodeAPIError(result.Response, i18n.T(i18n.GenerateFailedKey))
	}

	code := result.Response.Header.Get(HeaderInviteCode)
	id := result.Response.Header.Get(HeaderInviteID)
	if code == "" || id == "" {
		return nil, result.Elapsed, ErrMissingInviteHeaders
	}

	image, err := io.ReadAll(result.Response.Body)
	if err != nil {
		return nil, result.Elapsed, fmt.Errorf("failed to read image: %w", err)
	}

	contentType := result.Response.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	return &model.GeneratedInvite{
		InviteCode:  model.InviteCode(code),
		InviteID:    id,
		Data:        data,
		Image:       image,
		ContentType: contentType,
		CreatedAt:   c.clock.Now(),
	}, result.Elapsed, nil
}

// ReadQRCode uploads an image as the multipart field "file" and returns the
// API's verdict. A 200 with success=false is a result, not an error.
func (c *Client) ReadQRCode(ctx context.Context, filename, contentType string, content io.Reader) (*model.ValidationResult, time.Duration, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	partHeader.Set("Content-Type", contentType)

	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, 0, fmt.Errorf("failed to write form part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, 0, fmt.Errorf("failed to close form: %w", err)
	}

	result, err := c.Execute(ctx, ReadEndpoint, Options{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": {writer.FormDataContentType()}},
		Body:   &buf,
	})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = result.Response.Body.Close() }()

	if !result.OK {
		return nil, result.Elapsed, decodeAPIError(result.Response, i18n.T(i18n.InvalidQRCodeKey))
	}

	var verdict model.ValidationResult
	if err := json.NewDecoder(result.Response.Body).Decode(&verdict); err != nil {
		return nil, result.Elapsed, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return &verdict, result.Elapsed, nil
}

// HealthResult is the API's health check answer
type HealthResult struct {
	Status string `json:"status"`
}

// Health calls the health endpoint at the API root, outside the versioned prefix
func (c *Client) Health(ctx context.Context) (*HealthResult, error) {
	result, err := c.execute(ctx, c.rootURL+healthEndpoint, healthEndpoint, Options{Method: http.MethodGet})
	if err != nil {
		return nil, err
	}
	defer func() { _ = result.Response.Body.Close() }()

	if !result.OK {
		return nil, decodeAPIError(result.Response, http.StatusText(result.Response.StatusCode))
	}

	var health HealthResult
	if err := json.NewDecoder(result.Response.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return &health, nil
}
