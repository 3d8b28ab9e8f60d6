package pages

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/mcoot/qrinvite/internal/apiclient"
	"github.com/mcoot/qrinvite/internal/dependencies/clock"
	"github.com/mcoot/qrinvite/internal/i18n"
	"github.com/mcoot/qrinvite/internal/model"
)

// Reader submits QR images to the API
type Reader interface {
	ReadQRCode(ctx context.Context, filename, contentType string, content io.Reader) (*model.ValidationResult, time.Duration, error)
}

// FileUpload is a file chosen by the user
type FileUpload struct {
	Filename string
	// ContentType as reported by the picker; sniffed from Content when empty
	ContentType string
	Content     []byte
}

// Outcome is the verdict shown after a validation
type Outcome int

const (
	// OutcomeValid: the image matched a known invite
	OutcomeValid Outcome = iota + 1
	// OutcomeInvalid: the API answered but found nothing; not an error
	OutcomeInvalid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// ValidateResult is the projection-ready outcome of Validate
type ValidateResult struct {
	Outcome     Outcome
	InviteCode  model.InviteCode
	Data        string
	IsValidated bool
	Message     string
	CheckedAt   time.Time
	Elapsed     time.Duration
}

// Validator handles the validate-invite page
type Validator struct {
	api    Reader
	clock  clock.Clock
	logger *slog.Logger
	submit Control

	mu       sync.Mutex
	selected *FileUpload
}

// NewValidator creates a Validator
func NewValidator(api Reader, clk clock.Clock, logger *slog.Logger) *Validator {
	return &Validator{api: api, clock: clk, logger: logger}
}

// Select checks that file is an image and makes it the pending upload.
// A rejected file leaves the previous selection in place.
func (v *Validator) Select(file FileUpload) error {
	checked, err := checkImage(file)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.selected = &checked
	v.mu.Unlock()
	return nil
}

// checkImage rejects empty and non-image files and fills in a sniffed content type
func checkImage(file FileUpload) (FileUpload, error) {
	if len(file.Content) == 0 {
		return file, ErrNoFileSelected
	}

	contentType := file.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(file.Content).String()
	}
	if !strings.HasPrefix(contentType, "image/") {
		return file, ErrNotAnImage
	}

	file.ContentType = contentType
	return file, nil
}

// Selected returns the pending upload, or nil
func (v *Validator) Selected() *FileUpload {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

// Clear drops the pending upload
func (v *Validator) Clear() {
	v.mu.Lock()
	v.selected = nil
	v.mu.Unlock()
}

// Submitting reports whether a Validate is in flight
func (v *Validator) Submitting() bool {
	return v.submit.Disabled()
}

// Validate uploads the selected file.
// A 200 answer without success and an invite code is OutcomeInvalid, not an error.
func (v *Validator) Validate(ctx context.Context) (*ValidateResult, error) {
	file := v.Selected()
	if file == nil {
		return nil, ErrNoFileSelected
	}

	if !v.submit.TryAcquire() {
		return nil, ErrBusy
	}
	defer v.submit.Release()

	return v.upload(ctx, *file)
}

// ValidateFile selects file and validates it in one step. The control is
// taken before the selection changes and the upload sends file itself.
func (v *Validator) ValidateFile(ctx context.Context, file FileUpload) (*ValidateResult, error) {
	checked, err := checkImage(file)
	if err != nil {
		return nil, err
	}

	if !v.submit.TryAcquire() {
		return nil, ErrBusy
	}
	defer v.submit.Release()

	v.mu.Lock()
	v.selected = &checked
	v.mu.Unlock()

	return v.upload(ctx, checked)
}

// upload sends file to the API; the caller holds the submit control
func (v *Validator) upload(ctx context.Context, file FileUpload) (*ValidateResult, error) {
	verdict, elapsed, err := v.api.ReadQRCode(ctx, file.Filename, file.ContentType, bytes.NewReader(file.Content))
	if err != nil {
		v.logger.Error("failed to validate QR code",
			slog.String("kind", Classify(err).String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	result := &ValidateResult{
		CheckedAt: v.clock.Now(),
		Elapsed:   elapsed,
	}

	if verdict.Found() {
		result.Outcome = OutcomeValid
		result.InviteCode = *verdict.InviteCode
		result.IsValidated = verdict.IsValidated
		if verdict.Data != nil {
			result.Data = *verdict.Data
		}
		result.Message = i18n.T(i18n.ValidationSuccessKey)
		if verdict.Message != nil && *verdict.Message != "" {
			result.Message = *verdict.Message
		}
		v.logger.Info("validation complete",
			slog.String("invite_code", string(result.InviteCode)),
			slog.Duration("elapsed", elapsed),
		)
		if apiclient.IsSlow(elapsed) {
			v.logger.Warn("response time above expected", slog.Duration("elapsed", elapsed))
		}
		return result, nil
	}

	result.Outcome = OutcomeInvalid
	result.Message = i18n.T(i18n.InvalidQRCodeKey)
	if verdict.Message != nil && *verdict.Message != "" {
		result.Message = *verdict.Message
	}
	if verdict.InviteCode != nil {
		result.InviteCode = *verdict.InviteCode
	}
	return result, nil
}
