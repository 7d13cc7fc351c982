package notification

import (
	"context"
	"fmt"
	"sync"

	"lendhub/models"

	"go.uber.org/zap"
)

// Feed mirrors one recipient's notification set while subscribed. Every
// snapshot from the store replaces the local list wholesale; feeds are small
// and unpaginated, so there is no incremental patching.
type Feed struct {
	store  Store
	query  Query
	logger *zap.Logger

	mu      sync.Mutex
	list    []models.Notification
	watcher Watcher
	closed  bool
	done    chan struct{}
}

// OpenResult reports the per-item mark-as-read writes issued by one open
// transition, so callers can surface partial failure instead of losing it.
type OpenResult struct {
	Issued int
	Failed int
}

func NewFeed(store Store, query Query, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{store: store, query: query, logger: logger}
}

// Subscribe establishes the live query and starts applying snapshots. It must
// be paired with Close; a Feed subscribes at most once.
func (f *Feed) Subscribe(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return fmt.Errorf("feed is closed")
	}
	if f.watcher != nil {
		return fmt.Errorf("feed is already subscribed")
	}

	w, err := f.store.Watch(ctx, f.query)
	if err != nil {
		return fmt.Errorf("failed to establish notification watch: %w", err)
	}
	f.watcher = w
	f.done = make(chan struct{})

	go func() {
		defer close(f.done)
		// The channel closes on Stop or when the stream drops; there is no
		// reconnect, the feed just stops updating until resubscribed.
		for snapshot := range w.Updates() {
			f.apply(snapshot)
		}
		f.logger.Debug("Notification watch ended",
			zap.String("recipientId", f.query.RecipientID))
	}()
	return nil
}

func (f *Feed) apply(snapshot []models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.list = append(f.list[:0:0], snapshot...)
}

// Notifications returns the current list, newest first.
func (f *Feed) Notifications() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append(f.list[:0:0], f.list...)
}

// Unread reports whether the badge should show. It is derived from the list
// on every call, never stored.
func (f *Feed) Unread() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.list {
		if !n.Read {
			return true
		}
	}
	return false
}

// Open is the hidden-to-visible transition of the feed surface. It issues one
// independent mark-as-read write per entry still unread in the local list;
// entries already read are never re-mutated, so open/close/open is idempotent.
// Failures are logged and counted but do not stop the remaining writes.
func (f *Feed) Open(ctx context.Context) OpenResult {
	f.mu.Lock()
	unread := make([]string, 0, len(f.list))
	for _, n := range f.list {
		if !n.Read {
			unread = append(unread, n.ID)
		}
	}
	f.mu.Unlock()

	if len(unread) == 0 {
		return OpenResult{}
	}

	var (
		wg     sync.WaitGroup
		failMu sync.Mutex
		failed int
	)
	for _, id := range unread {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := f.store.MarkRead(ctx, id); err != nil {
				f.logger.Warn("Failed to mark notification read",
					zap.String("id", id), zap.Error(err))
				failMu.Lock()
				failed++
				failMu.Unlock()
				return
			}
			f.markLocalRead(id)
		}(id)
	}
	wg.Wait()

	return OpenResult{Issued: len(unread), Failed: failed}
}

// MarkAll is the notifications-page bulk action: one query for the unread
// set, then a single batched write flipping all of it.
func (f *Feed) MarkAll(ctx context.Context) error {
	ids, err := f.store.UnreadIDs(ctx, f.query)
	if err != nil {
		return fmt.Errorf("failed to list unread notifications: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := f.store.MarkAllRead(ctx, ids); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	for _, id := range ids {
		f.markLocalRead(id)
	}
	return nil
}

// markLocalRead flips one local entry false→true ahead of the next snapshot.
func (f *Feed) markLocalRead(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.list {
		if f.list[i].ID == id {
			f.list[i].Read = true
			return
		}
	}
}

// Close releases the live query. After Close returns, no snapshot mutates
// the feed again.
func (f *Feed) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	w := f.watcher
	done := f.done
	f.mu.Unlock()

	if w != nil {
		w.Stop()
		<-done
	}
}
