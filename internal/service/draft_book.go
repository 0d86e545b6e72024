package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrDraftNotFound = errors.New("draft not found")

// DraftBook holds the drafts of HTTP clients between requests, keyed by a
// random id. Drafts idle for longer than the book's TTL are dropped the next
// time a draft is created.
type DraftBook struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*heldDraft
	ttl    time.Duration
	now    func() time.Time
}

type heldDraft struct {
	draft    *Draft
	lastUsed time.Time
}

// NewDraftBook creates an empty book. A ttl of zero keeps drafts forever.
func NewDraftBook(ttl time.Duration) *DraftBook {
	return &DraftBook{
		drafts: make(map[uuid.UUID]*heldDraft),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create starts a new empty draft and returns its id.
func (b *DraftBook) Create() uuid.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pruneLocked()

	id := uuid.New()
	b.drafts[id] = &heldDraft{draft: NewDraft(), lastUsed: b.now()}
	return id
}

// With runs fn on the draft with the given id while holding the book lock.
func (b *DraftBook) With(id uuid.UUID, fn func(d *Draft) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	held, exists := b.drafts[id]
	if !exists {
		return ErrDraftNotFound
	}
	held.lastUsed = b.now()
	return fn(held.draft)
}

// Commit commits the draft to tableID and discards it on success. A draft
// that cannot be committed is kept so the caller can fix it.
func (b *DraftBook) Commit(ctx context.Context, id uuid.UUID, orders OrderCreator, tableID int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	held, exists := b.drafts[id]
	if !exists {
		return ErrDraftNotFound
	}
	if err := held.draft.Commit(ctx, orders, tableID); err != nil {
		held.lastUsed = b.now()
		return err
	}
	delete(b.drafts, id)
	return nil
}

// Discard drops a draft. It reports whether the draft existed.
func (b *DraftBook) Discard(id uuid.UUID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, exists := b.drafts[id]
	delete(b.drafts, id)
	return exists
}

// Len returns the number of drafts held.
func (b *DraftBook) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.drafts)
}

func (b *DraftBook) pruneLocked() {
	if b.ttl <= 0 {
		return
	}
	cutoff := b.now().Add(-b.ttl)
	for id, held := range b.drafts {
		if held.lastUsed.Before(cutoff) {
			delete(b.drafts, id)
		}
	}
}
