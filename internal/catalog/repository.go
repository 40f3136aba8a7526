// Package catalog owns the canonical item collection and its durable mirror.
//
// A Repository holds the items in memory for the lifetime of the process and
// writes the whole collection to a store.Store under StorageKey after every
// mutation. The in-memory copy is the source of truth: a failed write is
// logged and reported through Degraded but never undoes the mutation.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/vitrina/internal/metrics"
	"github.com/erazemk/vitrina/internal/model"
	"github.com/erazemk/vitrina/internal/store"
)

// StorageKey is the durable store key holding the serialized collection.
const StorageKey = "item-management-items"

// Repository is the item collection. It is safe for concurrent use.
type Repository struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() (string, error)
	seed   []model.Item

	mu       sync.RWMutex
	items    []model.Item
	degraded error
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger for storage warnings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) { r.logger = l }
}

// WithClock sets the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator sets the source of item IDs.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(r *Repository) { r.newID = gen }
}

// WithSeed replaces the built-in items an empty store is seeded with.
func WithSeed(items []model.Item) Option {
	return func(r *Repository) { r.seed = cloneItems(items) }
}

// New returns an empty repository backed by s. Call Load before use.
func New(s store.Store, opts ...Option) *Repository {
	r := &Repository{
		store:  s,
		logger: slog.Default(),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  newUUID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// newUUID returns a time-ordered UUID, so IDs sort by creation and two items
// added within the same clock tick still get distinct IDs.
func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Load replaces the in-memory collection with the stored one and returns it.
//
// An empty store, or one holding an empty value, is seeded with the built-in
// items, which are written back immediately. If the store cannot be read, or holds data that cannot be
// decoded, the seed is used in memory only and the repository is marked
// degraded; the stored value is left untouched. Only a broken built-in seed
// makes Load fail.
func (r *Repository) Load(ctx context.Context) ([]model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok, err := r.store.Get(ctx, StorageKey)
	if err == nil && ok && data != "" {
		items, decodeErr := Decode(data)
		if decodeErr == nil {
			r.items = items
			r.degraded = nil
			return cloneItems(r.items), nil
		}
		err = model.StorageError("loading items", decodeErr)
	}

	seedItems, seedErr := r.seedItems()
	if seedErr != nil {
		return nil, seedErr
	}
	r.items = seedItems

	if err != nil {
		metrics.StorageErrors.WithLabelValues(metrics.OpRead).Inc()
		r.degraded = err
		r.logger.Warn("item storage unavailable, continuing with built-in items in memory",
			"key", StorageKey, "error", err)
		return cloneItems(r.items), nil
	}

	r.logger.Info("seeding item storage", "key", StorageKey, "items", len(r.items))
	r.persistLocked(ctx)
	return cloneItems(r.items), nil
}

func (r *Repository) seedItems() ([]model.Item, error) {
	if r.seed != nil {
		return cloneItems(r.seed), nil
	}
	items, err := SeedItems()
	if err != nil {
		return nil, fmt.Errorf("loading built-in items: %w", err)
	}
	return items, nil
}

// Add validates the draft, assigns it an ID and creation time, appends it to
// the collection and persists the collection. Validation failures are
// returned as *model.ValidationError; storage failures are not returned.
func (r *Repository) Add(ctx context.Context, d model.Draft) (model.Item, error) {
	if err := d.Validate(); err != nil {
		return model.Item{}, err
	}

	id, err := r.newID()
	if err != nil {
		return model.Item{}, fmt.Errorf("generating item id: %w", err)
	}
	item := d.Item(id, r.now())

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(id) >= 0 {
		return model.Item{}, fmt.Errorf("adding item: duplicate id %q", id)
	}
	r.items = append(r.items, item)
	r.persistLocked(ctx)
	metrics.ItemsAdded.Inc()

	r.logger.Info("item added", "id", item.ID, "name", item.Name, "type", item.Type)
	return item.Clone(), nil
}

// GetByID returns the item with the given ID. ok is false if there is none.
func (r *Repository) GetByID(id string) (item model.Item, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexLocked(id); i >= 0 {
		return r.items[i].Clone(), true
	}
	return model.Item{}, false
}

// Items returns a copy of the collection in insertion order.
func (r *Repository) Items() []model.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneItems(r.items)
}

// Len returns the number of items.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Update applies the patch to the item with the given ID. The item keeps its
// ID, creation time and position.
func (r *Repository) Update(ctx context.Context, id string, p model.Patch) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return model.Item{}, fmt.Errorf("updating item %q: %w", id, model.ErrNotFound)
	}

	d := p.Apply(model.DraftOf(r.items[i]))
	if err := d.Validate(); err != nil {
		return model.Item{}, err
	}

	updated := d.Item(id, r.items[i].CreatedAt)
	r.items[i] = updated
	r.persistLocked(ctx)
	metrics.ItemsUpdated.Inc()

	r.logger.Info("item updated", "id", id, "name", updated.Name)
	return updated.Clone(), nil
}

// Remove deletes the item with the given ID, keeping the order of the rest.
func (r *Repository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("removing item %q: %w", id, model.ErrNotFound)
	}

	name := r.items[i].Name
	r.items = slices.Delete(r.items, i, i+1)
	r.persistLocked(ctx)
	metrics.ItemsRemoved.Inc()

	r.logger.Info("item removed", "id", id, "name", name)
	return nil
}

// Degraded returns the most recent storage error, or nil if the last read or
// write of the durable store succeeded.
func (r *Repository) Degraded() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.degraded
}

func (r *Repository) indexLocked(id string) int {
	return slices.IndexFunc(r.items, func(it model.Item) bool { return it.ID == id })
}

// persistLocked writes the whole collection. Failures are recorded, not returned.
func (r *Repository) persistLocked(ctx context.Context) {
	data, err := Encode(r.items)
	if err == nil {
		err = r.store.Set(ctx, StorageKey, data)
	}
	if err != nil {
		if !errors.Is(err, model.ErrStorageUnavailable) {
			err = model.StorageError("persisting items", err)
		}
		metrics.StorageErrors.WithLabelValues(metrics.OpWrite).Inc()
		r.degraded = err
		r.logger.Warn("failed to persist items, keeping changes in memory",
			"key", StorageKey, "items", len(r.items), "error", err)
		return
	}
	r.degraded = nil
}

func cloneItems(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
