package pages

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mcoot/qrinvite/internal/apiclient"
	"github.com/mcoot/qrinvite/internal/i18n"
	"github.com/mcoot/qrinvite/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Generator creates invites on the API
type Generator interface {
	GenerateQRCode(ctx context.Context, data string) (*model.GeneratedInvite, time.Duration, error)
}

// CreateRequest is the create-invite form
type CreateRequest struct {
	Data string `validate:"required"`
}

// CreateResult is a successfully created invite
type CreateResult struct {
	Invite  *model.GeneratedInvite
	Elapsed time.Duration
	Slow    bool
}

// Creator handles the create-invite page
type Creator struct {
	api    Generator
	logger *slog.Logger
	submit Control

	mu       sync.Mutex
	current  *model.GeneratedInvite
	released int
}

// NewCreator creates a Creator
func NewCreator(api Generator, logger *slog.Logger) *Creator {
	return &Creator{api: api, logger: logger}
}

// Create submits req.Data for a new invite. The generated QR code stays
// current until Reset or the next successful Create.
func (c *Creator) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	if !c.submit.TryAcquire() {
		return nil, ErrBusy
	}
	defer c.submit.Release()

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	generated, elapsed, err := c.api.GenerateQRCode(ctx, req.Data)
	if err != nil {
		c.logger.Error("failed to generate QR code",
			slog.String("kind", Classify(err).String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("QR code generated",
		slog.String("invite_code", string(generated.InviteCode)),
		slog.Duration("elapsed", elapsed),
	)
	if apiclient.IsSlow(elapsed) {
		c.logger.Warn("response time above expected", slog.Duration("elapsed", elapsed))
	}

	c.mu.Lock()
	if c.current != nil {
		c.releaseLocked()
	}
	c.current = generated
	c.mu.Unlock()

	return &CreateResult{Invite: generated, Elapsed: elapsed, Slow: apiclient.IsSlow(elapsed)}, nil
}

// Submitting reports whether a Create is in flight
func (c *Creator) Submitting() bool {
	return c.submit.Disabled()
}

// Current returns the generated QR code on display, or nil
func (c *Creator) Current() *model.GeneratedInvite {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Reset returns the page to the empty form and releases the current QR
// image. It reports whether there was an image to release.
func (c *Creator) Reset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return false
	}
	c.releaseLocked()
	return true
}

// Released returns how many QR images have been released so far
func (c *Creator) Released() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

func (c *Creator) releaseLocked() {
	c.current.Image = nil
	c.current = nil
	c.released++
}

// Download writes the current QR image into dir as qrcode_<code>.png
func (c *Creator) Download(dir string) (string, error) {
	c.mu.Lock()
	current := c.current
	var image []byte
	if current != nil {
		image = append([]byte(nil), current.Image...)
	}
	c.mu.Unlock()

	if current == nil {
		return "", ErrNoQRCode
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, current.Filename())
	if err := os.WriteFile(path, image, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// ShareText is what gets shared when the image itself cannot be
func (c *Creator) ShareText() (string, error) {
	current := c.Current()
	if current == nil {
		return "", ErrNoQRCode
	}
	return i18n.T(i18n.InviteCodeShareKey, string(current.InviteCode)), nil
}
