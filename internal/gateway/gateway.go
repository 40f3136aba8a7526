// Package gateway delivers enquiries and item uploads to the outside world.
//
// The only Notifier shipped is Simulated, which stands in for a mail and
// upload backend by waiting a fixed delay and logging what it would have
// sent. WithTimeout bounds any Notifier and turns its failures into
// *model.GatewayError values.
package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/erazemk/vitrina/internal/model"
)

// Operation names reported in *model.GatewayError.
const (
	OpSendEnquiry = "sending enquiry"
	OpUploadItem  = "uploading item"
)

// Result is the outcome of a successful gateway call.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Notifier sends enquiries about items and uploads new items.
type Notifier interface {
	SendEnquiry(ctx context.Context, itemName string) (Result, error)
	UploadItem(ctx context.Context, draft model.Draft) (Result, error)
}

// Simulated defaults.
const (
	DefaultRecipient    = "admin@example.com"
	DefaultEnquiryDelay = 1500 * time.Millisecond
	DefaultUploadDelay  = time.Second
)

// Simulated is a Notifier that only waits and logs.
type Simulated struct {
	recipient    string
	enquiryDelay time.Duration
	uploadDelay  time.Duration
	logger       *slog.Logger
}

// SimulatedOption configures a Simulated notifier.
type SimulatedOption func(*Simulated)

// WithRecipient sets the address enquiries are addressed to.
func WithRecipient(addr string) SimulatedOption {
	return func(s *Simulated) { s.recipient = addr }
}

// WithDelays overrides the simulated latency of each call.
func WithDelays(enquiry, upload time.Duration) SimulatedOption {
	return func(s *Simulated) {
		s.enquiryDelay = enquiry
		s.uploadDelay = upload
	}
}

// WithLogger sets the logger simulated deliveries are written to.
func WithLogger(l *slog.Logger) SimulatedOption {
	return func(s *Simulated) { s.logger = l }
}

// NewSimulated returns a simulated notifier with the default delays.
func NewSimulated(opts ...SimulatedOption) *Simulated {
	s := &Simulated{
		recipient:    DefaultRecipient,
		enquiryDelay: DefaultEnquiryDelay,
		uploadDelay:  DefaultUploadDelay,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendEnquiry pretends to email the recipient about itemName.
func (s *Simulated) SendEnquiry(ctx context.Context, itemName string) (Result, error) {
	if err := sleep(ctx, s.enquiryDelay); err != nil {
		return Result{}, &model.GatewayError{Op: OpSendEnquiry, Err: err}
	}

	s.logger.Info("enquiry email sent", "recipient", s.recipient, "item", itemName)
	return Result{Success: true, Message: "Enquiry sent successfully!"}, nil
}

// UploadItem pretends to upload the draft to a remote database.
func (s *Simulated) UploadItem(ctx context.Context, draft model.Draft) (Result, error) {
	if err := sleep(ctx, s.uploadDelay); err != nil {
		return Result{}, &model.GatewayError{Op: OpUploadItem, Err: err}
	}

	s.logger.Info("item uploaded",
		"name", draft.Name,
		"type", draft.Type,
		"images", len(draft.AdditionalImages)+1,
	)
	return Result{Success: true, Message: "Item uploaded successfully!"}, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
