package todo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/todos/internal/store"
)

// maxIDAttempts bounds retries when a generator returns an id already in use.
const maxIDAttempts = 8

// Slot is a durable key-value slot holding the serialized item sequence.
// *store.Store satisfies it.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store is the todo state container.
//
// Items are kept most recent first. The filter is process-local and never
// persisted. All methods are safe for concurrent use, although the intended
// model is a single owner issuing one call at a time.
type Store struct {
	mu     sync.Mutex
	items  []Item
	filter Filter

	slot   Slot
	key    string
	clock  Clock
	ids    IDGenerator
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the slot key (default DefaultKey).
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for swallowed storage failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the clock used for createdAt.
func WithClock(clock Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator sets the item id generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// New creates a Store and hydrates it from slot.
//
// Hydration never fails: a missing, unreadable, or invalid payload yields an
// empty list. A nil slot gives a store that lives only in memory.
func New(ctx context.Context, slot Slot, opts ...Option) *Store {
	s := &Store{
		items:  []Item{},
		filter: FilterAll,
		slot:   slot,
		key:    DefaultKey,
		clock:  SystemClock{},
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.hydrate(ctx)
	return s
}

func (s *Store) hydrate(ctx context.Context) {
	if s.slot == nil {
		return
	}

	data, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("no persisted todos", "key", s.key)
		return
	}
	if err != nil {
		s.logger.Warn("read persisted todos", "key", s.key, "error", err)
		return
	}

	items, err := Decode(data)
	if err != nil {
		s.logger.Warn("discarding persisted todos", "key", s.key, "error", err)
		return
	}

	s.items = items
	s.logger.Debug("hydrated todos", "key", s.key, "count", len(items))
}

// Add trims and normalizes rawText and, if anything is left, inserts a new
// pending item at the head of the list.
//
// Returns the new item and true, or the zero Item and false when the text
// was blank.
func (s *Store) Add(ctx context.Context, rawText string) (Item, bool) {
	text := NormalizeText(rawText)
	if text == "" {
		return Item{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.newIDLocked()
	if !ok {
		s.logger.Error("could not allocate unique todo id", "attempts", maxIDAttempts)
		return Item{}, false
	}

	item := Item{
		ID:        id,
		Text:      text,
		Done:      false,
		CreatedAt: s.clock.Now().UnixMilli(),
	}

	items := make([]Item, 0, len(s.items)+1)
	items = append(items, item)
	items = append(items, s.items...)
	s.items = items

	s.persistLocked(ctx, "add")
	return item, true
}

// Toggle flips the done flag of the item with id.
// Returns false, changing nothing, when no such item exists.
func (s *Store) Toggle(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}

	s.items[idx].Done = !s.items[idx].Done
	s.persistLocked(ctx, "toggle")
	return true
}

// Remove deletes the item with id.
// Returns false, changing nothing, when no such item exists.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}

	items := make([]Item, 0, len(s.items)-1)
	items = append(items, s.items[:idx]...)
	items = append(items, s.items[idx+1:]...)
	s.items = items

	s.persistLocked(ctx, "remove")
	return true
}

// ClearCompleted removes every done item, keeping the order of the rest.
// Returns the number of items removed. Nothing is written when none were done.
func (s *Store) ClearCompleted(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if !item.Done {
			kept = append(kept, item)
		}
	}

	removed := len(s.items) - len(kept)
	if removed == 0 {
		return 0
	}

	s.items = kept
	s.persistLocked(ctx, "clear_completed")
	return removed
}

// SetFilter changes the active filter. Invalid filters are rejected with
// ErrInvalidFilter and leave the current filter in place.
func (s *Store) SetFilter(f Filter) error {
	if !f.Valid() {
		return fmt.Errorf("%w %q: must be one of %v", ErrInvalidFilter, string(f), Filters)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	return nil
}

// Filter returns the active filter.
func (s *Store) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// VisibleItems returns the items matching the active filter, in list order.
func (s *Store) VisibleItems() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterItems(s.items, s.filter)
}

// ItemsFor returns the items matching f, in list order, without changing
// the active filter. An invalid filter yields an empty slice.
func (s *Store) ItemsFor(f Filter) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterItems(s.items, f)
}

// Items returns a copy of the full item sequence.
func (s *Store) Items() []Item {
	return s.ItemsFor(FilterAll)
}

// Find looks up an item by id.
func (s *Store) Find(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Item{}, false
	}
	return s.items[idx], true
}

// Stats returns counts over the whole sequence.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeStats(s.items)
}

// Commit writes the full item sequence to the slot, replacing its value.
//
// Mutations call this themselves and drop the error; it is exported so a
// caller can force a write and observe its outcome.
func (s *Store) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx)
}

func (s *Store) commitLocked(ctx context.Context) error {
	if s.slot == nil {
		return nil
	}

	data, err := Encode(s.items)
	if err != nil {
		return err
	}

	if err := s.slot.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("write todos to slot %q: %w", s.key, err)
	}
	return nil
}

// persistLocked commits after a mutation. In-memory state stays
// authoritative when the write fails.
func (s *Store) persistLocked(ctx context.Context, op string) {
	if err := s.commitLocked(ctx); err != nil {
		s.logger.Warn("persist todos failed", "op", op, "key", s.key, "error", err)
		return
	}
	s.logger.Debug("persisted todos", "op", op, "key", s.key, "count", len(s.items))
}

func (s *Store) indexLocked(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) newIDLocked() (string, bool) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.ids.Generate()
		if id != "" && s.indexLocked(id) < 0 {
			return id, true
		}
	}
	return "", false
}

func filterItems(items []Item, f Filter) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}
