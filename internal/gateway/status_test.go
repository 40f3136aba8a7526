package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusBoardIdleByDefault(t *testing.T) {
	b := NewStatusBoard(0, quietLogger)
	assert.Equal(t, DefaultClearAfter, b.clearAfter)
	assert.Equal(t, StateIdle, b.Get("1").State)
}

func TestStatusBoardLifecycle(t *testing.T) {
	b := NewStatusBoard(30*time.Millisecond, quietLogger)

	require.NoError(t, b.Begin("1"))
	assert.Equal(t, StateSending, b.Get("1").State)
	assert.ErrorIs(t, b.Begin("1"), ErrInFlight)
	assert.Equal(t, StateIdle, b.Get("2").State, "items are tracked independently")

	b.Finish("1", nil)
	st := b.Get("1")
	assert.Equal(t, StateSuccess, st.State)
	assert.Equal(t, MessageEnquirySent, st.Message)

	assert.Eventually(t, func() bool { return b.Get("1").State == StateIdle },
		time.Second, 5*time.Millisecond)
}

func TestStatusBoardError(t *testing.T) {
	b := NewStatusBoard(time.Hour, quietLogger)

	require.NoError(t, b.Begin("1"))
	b.Finish("1", errors.New("boom"))

	st := b.Get("1")
	assert.Equal(t, StateError, st.State)
	assert.Equal(t, MessageEnquiryFailed, st.Message)
	assert.NoError(t, b.Begin("1"), "a finished enquiry can be retried")
}

func TestStatusBoardNewSendCancelsClear(t *testing.T) {
	b := NewStatusBoard(20*time.Millisecond, quietLogger)

	require.NoError(t, b.Begin("1"))
	b.Finish("1", nil)
	require.NoError(t, b.Begin("1"))

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, StateSending, b.Get("1").State)
}

func TestEnquire(t *testing.T) {
	b := NewStatusBoard(time.Hour, quietLogger)
	stub := &stubNotifier{result: Result{Success: true}, block: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, b.Enquire(ctx, stub, "1", "Bag"))
	cancel()

	assert.Equal(t, StateSending, b.Get("1").State)
	assert.ErrorIs(t, b.Enquire(context.Background(), stub, "1", "Bag"), ErrInFlight)

	close(stub.block)
	b.Wait()

	assert.Equal(t, StateSuccess, b.Get("1").State, "cancelling the caller's context does not abort the send")
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestEnquireFailure(t *testing.T) {
	b := NewStatusBoard(time.Hour, quietLogger)
	stub := &stubNotifier{err: errors.New("down")}

	require.NoError(t, b.Enquire(context.Background(), WithTimeout(stub, time.Second), "1", "Bag"))
	b.Wait()

	assert.Equal(t, StateError, b.Get("1").State)
}
