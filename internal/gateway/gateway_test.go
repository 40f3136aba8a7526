package gateway

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/vitrina/internal/metrics"
	"github.com/erazemk/vitrina/internal/model"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func fastSimulated() *Simulated {
	return NewSimulated(WithDelays(5*time.Millisecond, 5*time.Millisecond), WithLogger(quietLogger))
}

// stubNotifier returns canned responses and counts calls.
type stubNotifier struct {
	result Result
	err    error
	calls  atomic.Int32
	block  chan struct{}
}

func (s *stubNotifier) SendEnquiry(ctx context.Context, _ string) (Result, error) {
	s.calls.Add(1)
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
	return s.result, s.err
}

func (s *stubNotifier) UploadItem(ctx context.Context, _ model.Draft) (Result, error) {
	return s.SendEnquiry(ctx, "")
}

func TestSimulatedDefaults(t *testing.T) {
	s := NewSimulated()
	assert.Equal(t, DefaultRecipient, s.recipient)
	assert.Equal(t, 1500*time.Millisecond, s.enquiryDelay)
	assert.Equal(t, time.Second, s.uploadDelay)
}

func TestSimulatedSendEnquiry(t *testing.T) {
	start := time.Now()
	res, err := fastSimulated().SendEnquiry(context.Background(), "Classic Denim Jacket")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "Enquiry sent successfully!", res.Message)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestSimulatedUploadItem(t *testing.T) {
	res, err := fastSimulated().UploadItem(context.Background(), model.Draft{Name: "Bag"})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestSimulatedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulated(WithLogger(quietLogger)).SendEnquiry(ctx, "Bag")

	var gerr *model.GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, OpSendEnquiry, gerr.Op)
	assert.True(t, gerr.Temporary())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithTimeoutExpires(t *testing.T) {
	n := WithTimeout(NewSimulated(WithLogger(quietLogger)), 10*time.Millisecond)

	start := time.Now()
	_, err := n.UploadItem(context.Background(), model.Draft{Name: "Bag"})

	var gerr *model.GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, OpUploadItem, gerr.Op)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWithTimeoutDefault(t *testing.T) {
	n := WithTimeout(fastSimulated(), 0).(*timeoutNotifier)
	assert.Equal(t, DefaultTimeout, n.timeout)
}

func TestWithTimeoutWrapsFailures(t *testing.T) {
	failed := testutil.ToFloat64(metrics.GatewayCalls.WithLabelValues(metrics.CallEnquiry, metrics.ResultFailure))

	stub := &stubNotifier{err: errors.New("smtp: connection refused")}
	_, err := WithTimeout(stub, time.Second).SendEnquiry(context.Background(), "Bag")

	var gerr *model.GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, OpSendEnquiry, gerr.Op)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, failed+1, testutil.ToFloat64(metrics.GatewayCalls.WithLabelValues(metrics.CallEnquiry, metrics.ResultFailure)))
}

func TestWithTimeoutUnsuccessfulResult(t *testing.T) {
	stub := &stubNotifier{result: Result{Success: false, Message: "mailbox full"}}
	_, err := WithTimeout(stub, time.Second).UploadItem(context.Background(), model.Draft{})

	var gerr *model.GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.EqualError(t, gerr.Err, "mailbox full")
}

func TestWithTimeoutSuccessCounted(t *testing.T) {
	before := testutil.ToFloat64(metrics.GatewayCalls.WithLabelValues(metrics.CallUpload, metrics.ResultSuccess))

	res, err := WithTimeout(fastSimulated(), time.Second).UploadItem(context.Background(), model.Draft{Name: "Bag"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.GatewayCalls.WithLabelValues(metrics.CallUpload, metrics.ResultSuccess)))
}
