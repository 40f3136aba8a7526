package gateway

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// State is the progress of an item's most recent enquiry.
type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Messages shown for finished enquiries.
const (
	MessageEnquirySent   = "Enquiry sent successfully! We'll get back to you soon."
	MessageEnquiryFailed = "Failed to send enquiry. Please try again."
)

// DefaultClearAfter is how long a finished enquiry stays visible.
const DefaultClearAfter = 3 * time.Second

// ErrInFlight is returned when an enquiry for the item is already being sent.
var ErrInFlight = errors.New("enquiry already in progress")

// Status is the enquiry state of one item.
type Status struct {
	State     State     `json:"state"`
	Message   string    `json:"message,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

type entry struct {
	status Status
	timer  *time.Timer
	gen    uint64
}

// StatusBoard tracks per-item enquiry state. Success and error states revert
// to idle after the clear interval; starting a new enquiry cancels a
// pending revert.
type StatusBoard struct {
	clearAfter time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
	gen     uint64
	wg      sync.WaitGroup
}

// NewStatusBoard returns an empty board. A non-positive clearAfter uses
// DefaultClearAfter.
func NewStatusBoard(clearAfter time.Duration, logger *slog.Logger) *StatusBoard {
	if clearAfter <= 0 {
		clearAfter = DefaultClearAfter
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusBoard{
		clearAfter: clearAfter,
		logger:     logger,
		entries:    make(map[string]*entry),
	}
}

// Get returns the current status of the item.
func (b *StatusBoard) Get(itemID string) Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.entries[itemID]; ok {
		return e.status
	}
	return Status{State: StateIdle}
}

// Begin marks the item as sending. It fails with ErrInFlight if an enquiry
// is already in progress.
func (b *StatusBoard) Begin(itemID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[itemID]
	if ok && e.status.State == StateSending {
		return ErrInFlight
	}
	if ok && e.timer != nil {
		e.timer.Stop()
	}

	b.gen++
	b.entries[itemID] = &entry{
		status: Status{State: StateSending, UpdatedAt: time.Now()},
		gen:    b.gen,
	}
	return nil
}

// Finish records the outcome of the item's enquiry and schedules the revert
// to idle.
func (b *StatusBoard) Finish(itemID string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	status := Status{State: StateSuccess, Message: MessageEnquirySent, UpdatedAt: time.Now()}
	if err != nil {
		status = Status{State: StateError, Message: MessageEnquiryFailed, UpdatedAt: time.Now()}
	}

	b.gen++
	gen := b.gen
	e := &entry{status: status, gen: gen}
	e.timer = time.AfterFunc(b.clearAfter, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		// A newer Begin may have replaced the entry after this timer fired.
		if cur, ok := b.entries[itemID]; ok && cur.gen == gen {
			delete(b.entries, itemID)
		}
	})
	b.entries[itemID] = e
}

// Enquire starts sending an enquiry for the item in the background and
// returns once it is marked as sending. The send is not tied to ctx's
// cancellation, only to its values; n is expected to bound the call.
func (b *StatusBoard) Enquire(ctx context.Context, n Notifier, itemID, itemName string) error {
	if err := b.Begin(itemID); err != nil {
		return err
	}

	ctx = context.WithoutCancel(ctx)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		_, err := n.SendEnquiry(ctx, itemName)
		if err != nil {
			b.logger.Warn("enquiry failed", "item_id", itemID, "error", err)
		}
		b.Finish(itemID, err)
	}()
	return nil
}

// Wait blocks until every enquiry started with Enquire has finished.
func (b *StatusBoard) Wait() {
	b.wg.Wait()
}
