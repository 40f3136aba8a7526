package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/erazemk/vitrina/internal/metrics"
	"github.com/erazemk/vitrina/internal/model"
)

// DefaultTimeout bounds a single gateway call.
const DefaultTimeout = 5 * time.Second

type timeoutNotifier struct {
	next    Notifier
	timeout time.Duration
}

// WithTimeout wraps n so that each call is cancelled after d (DefaultTimeout
// if d is not positive). Every failure of the wrapped notifier, including an
// unsuccessful Result, is returned as a *model.GatewayError. Calls are not
// retried.
func WithTimeout(n Notifier, d time.Duration) Notifier {
	if d <= 0 {
		d = DefaultTimeout
	}
	return &timeoutNotifier{next: n, timeout: d}
}

func (t *timeoutNotifier) SendEnquiry(ctx context.Context, itemName string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	res, err := t.next.SendEnquiry(ctx, itemName)
	return observe(metrics.CallEnquiry, OpSendEnquiry, res, err)
}

func (t *timeoutNotifier) UploadItem(ctx context.Context, draft model.Draft) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	res, err := t.next.UploadItem(ctx, draft)
	return observe(metrics.CallUpload, OpUploadItem, res, err)
}

func observe(call, op string, res Result, err error) (Result, error) {
	if err == nil && !res.Success {
		msg := res.Message
		if msg == "" {
			msg = "unsuccessful response"
		}
		err = errors.New(msg)
	}

	if err != nil {
		metrics.GatewayCalls.WithLabelValues(call, metrics.ResultFailure).Inc()
		var gerr *model.GatewayError
		if !errors.As(err, &gerr) {
			err = &model.GatewayError{Op: op, Err: err}
		}
		return Result{}, err
	}

	metrics.GatewayCalls.WithLabelValues(call, metrics.ResultSuccess).Inc()
	return res, nil
}
