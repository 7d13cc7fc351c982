package notification

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"lendhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWatcher lets tests push snapshots and spy on Stop.
type fakeWatcher struct {
	mu      sync.Mutex
	ch      chan []models.Notification
	stopped bool
	stops   int
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{ch: make(chan []models.Notification, 8)}
}

func (w *fakeWatcher) Updates() <-chan []models.Notification { return w.ch }

func (w *fakeWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stops++
	if !w.stopped {
		w.stopped = true
		close(w.ch)
	}
}

// push mimics the store: a stopped watcher delivers nothing.
func (w *fakeWatcher) push(snapshot []models.Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.ch <- snapshot
}

func (w *fakeWatcher) stopCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stops
}

// fakeStore counts every write call so tests can distinguish the per-item
// path from the batched path.
type fakeStore struct {
	mu            sync.Mutex
	watcher       *fakeWatcher
	watchQuery    Query
	markReadIDs   []string
	markReadErrs  map[string]error
	unreadIDs     []string
	unreadQueries []Query
	markAllCalls  [][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{watcher: newFakeWatcher(), markReadErrs: map[string]error{}}
}

func (s *fakeStore) Watch(ctx context.Context, q Query) (Watcher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchQuery = q
	return s.watcher, nil
}

func (s *fakeStore) MarkRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markReadIDs = append(s.markReadIDs, id)
	return s.markReadErrs[id]
}

func (s *fakeStore) UnreadIDs(ctx context.Context, q Query) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unreadQueries = append(s.unreadQueries, q)
	return append([]string(nil), s.unreadIDs...), nil
}

func (s *fakeStore) MarkAllRead(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markAllCalls = append(s.markAllCalls, append([]string(nil), ids...))
	return nil
}

func (s *fakeStore) markReadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.markReadIDs)
}

func note(id string, read bool, age time.Duration) models.Notification {
	return models.Notification{
		ID:          id,
		RecipientID: "U1",
		Title:       "Loan update",
		Text:        "your loan status changed",
		Timestamp:   time.Now().Add(-age),
		Read:        read,
		Delivered:   true,
	}
}

func subscribed(t *testing.T, store *fakeStore, q Query) *Feed {
	t.Helper()
	feed := NewFeed(store, q, nil)
	require.NoError(t, feed.Subscribe(context.Background()))
	t.Cleanup(feed.Close)
	return feed
}

func eventuallyLen(t *testing.T, feed *Feed, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(feed.Notifications()) == n
	}, time.Second, 5*time.Millisecond)
}

func TestFeedSnapshotReplacesList(t *testing.T) {
	store := newFakeStore()
	feed := subscribed(t, store, Query{RecipientID: "U1"})

	first := []models.Notification{note("n3", false, time.Minute), note("n2", true, time.Hour)}
	store.watcher.push(first)
	eventuallyLen(t, feed, 2)
	assert.Equal(t, first, feed.Notifications())

	// The next snapshot wins wholesale: no merging with the old list.
	second := []models.Notification{note("n4", false, 0), note("n3", false, time.Minute)}
	store.watcher.push(second)
	require.Eventually(t, func() bool {
		got := feed.Notifications()
		return len(got) == 2 && got[0].ID == "n4"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, second, feed.Notifications())
}

func TestUnreadBadgeDerivation(t *testing.T) {
	store := newFakeStore()
	feed := subscribed(t, store, Query{RecipientID: "U1"})

	assert.False(t, feed.Unread(), "empty feed shows no badge")

	store.watcher.push([]models.Notification{note("n1", true, 0)})
	eventuallyLen(t, feed, 1)
	assert.False(t, feed.Unread())

	store.watcher.push([]models.Notification{
		note("n1", true, 0), note("n2", false, time.Minute), note("n3", false, time.Hour),
	})
	eventuallyLen(t, feed, 3)
	assert.True(t, feed.Unread())
}

func TestOpenMarksOnlyUnreadEntries(t *testing.T) {
	store := newFakeStore()
	feed := subscribed(t, store, Query{RecipientID: "U1"})

	store.watcher.push([]models.Notification{
		note("n1", false, 0), note("n2", true, time.Minute), note("n3", false, time.Hour),
	})
	eventuallyLen(t, feed, 3)

	res := feed.Open(context.Background())
	assert.Equal(t, 2, res.Issued)
	assert.Zero(t, res.Failed)
	assert.ElementsMatch(t, []string{"n1", "n3"}, store.markReadIDs)

	// Open, close, open again: already-read entries are not re-mutated.
	res = feed.Open(context.Background())
	assert.Zero(t, res.Issued)
	assert.Equal(t, 2, store.markReadCount())
	assert.False(t, feed.Unread())
}

func TestOpenReportsPartialFailure(t *testing.T) {
	store := newFakeStore()
	store.markReadErrs["n2"] = fmt.Errorf("permission denied")
	feed := subscribed(t, store, Query{RecipientID: "U1"})

	store.watcher.push([]models.Notification{note("n1", false, 0), note("n2", false, time.Minute)})
	eventuallyLen(t, feed, 2)

	res := feed.Open(context.Background())
	assert.Equal(t, 2, res.Issued)
	assert.Equal(t, 1, res.Failed)

	// The failed entry is still unread, so the next open retries just it.
	assert.True(t, feed.Unread())
	res = feed.Open(context.Background())
	assert.Equal(t, 1, res.Issued)
}

func TestMarkAllUsesOneBatchedWrite(t *testing.T) {
	store := newFakeStore()
	store.unreadIDs = []string{"n1", "n2", "n3"}
	feed := subscribed(t, store, Query{RecipientID: "U1"})

	store.watcher.push([]models.Notification{
		note("n1", false, 0), note("n2", false, time.Minute), note("n3", false, time.Hour),
	})
	eventuallyLen(t, feed, 3)

	require.NoError(t, feed.MarkAll(context.Background()))

	// One batch, zero per-item writes: the two paths differ by call count.
	require.Len(t, store.markAllCalls, 1)
	assert.Equal(t, []string{"n1", "n2", "n3"}, store.markAllCalls[0])
	assert.Zero(t, store.markReadCount())
	assert.False(t, feed.Unread())
}

func TestMarkAllWithNothingUnread(t *testing.T) {
	store := newFakeStore()
	feed := subscribed(t, store, Query{RecipientID: "U1"})

	require.NoError(t, feed.MarkAll(context.Background()))
	assert.Empty(t, store.markAllCalls)
}

func TestCloseReleasesWatchAndFreezesState(t *testing.T) {
	store := newFakeStore()
	feed := NewFeed(store, Query{RecipientID: "U1"}, nil)
	require.NoError(t, feed.Subscribe(context.Background()))

	store.watcher.push([]models.Notification{note("n1", false, 0)})
	eventuallyLen(t, feed, 1)

	feed.Close()
	assert.Equal(t, 1, store.watcher.stopCount())

	// Store changes after teardown never reach the feed.
	store.watcher.push([]models.Notification{note("n1", false, 0), note("n2", false, 0)})
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, feed.Notifications(), 1)

	feed.Close() // second close is a no-op
	assert.Equal(t, 1, store.watcher.stopCount())
}

func TestSubscribeTwiceFails(t *testing.T) {
	store := newFakeStore()
	feed := subscribed(t, store, Query{RecipientID: "U1"})
	assert.Error(t, feed.Subscribe(context.Background()))
}

func TestDeliveredFilterReachesStore(t *testing.T) {
	store := newFakeStore()
	q := Query{RecipientID: "U1", DeliveredOnly: true}
	feed := subscribed(t, store, q)

	assert.Equal(t, q, store.watchQuery)

	require.NoError(t, feed.MarkAll(context.Background()))
	require.Len(t, store.unreadQueries, 1)
	assert.Equal(t, q, store.unreadQueries[0])
}

func TestReadStateStaysMonotonic(t *testing.T) {
	store := newFakeStore()
	feed := subscribed(t, store, Query{RecipientID: "U1"})

	store.watcher.push([]models.Notification{note("n1", false, 0)})
	eventuallyLen(t, feed, 1)

	feed.Open(context.Background())
	require.False(t, feed.Unread())

	// A later snapshot confirming the write keeps the entry read.
	store.watcher.push([]models.Notification{note("n1", true, 0)})
	require.Eventually(t, func() bool {
		got := feed.Notifications()
		return len(got) == 1 && got[0].Read
	}, time.Second, 5*time.Millisecond)
	assert.False(t, feed.Unread())
}

// The bell-dropdown flow end to end: three stored notifications, two unread.
func TestRecipientFeedLifecycle(t *testing.T) {
	store := newFakeStore()
	feed := subscribed(t, store, Query{RecipientID: "U1"})

	store.watcher.push([]models.Notification{
		note("n3", false, time.Minute),
		note("n2", false, time.Hour),
		note("n1", true, 24*time.Hour),
	})
	eventuallyLen(t, feed, 3)
	assert.Equal(t, "n3", feed.Notifications()[0].ID, "newest first")
	assert.True(t, feed.Unread())

	res := feed.Open(context.Background())
	assert.Equal(t, 2, res.Issued)
	assert.Equal(t, 2, store.markReadCount())

	store.watcher.push([]models.Notification{
		note("n3", true, time.Minute),
		note("n2", true, time.Hour),
		note("n1", true, 24*time.Hour),
	})
	require.Eventually(t, func() bool { return !feed.Unread() }, time.Second, 5*time.Millisecond)
}

func TestEmptyFeedIsCaughtUp(t *testing.T) {
	store := newFakeStore()
	feed := subscribed(t, store, Query{RecipientID: "U2"})

	store.watcher.push(nil)
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, feed.Notifications())
	assert.False(t, feed.Unread())

	assert.Zero(t, feed.Open(context.Background()).Issued)
}

// An external writer inserts a document while the feed is mounted.
func TestExternalInsertGrowsFeed(t *testing.T) {
	store := newFakeStore()
	feed := subscribed(t, store, Query{RecipientID: "U1"})

	base := []models.Notification{
		note("n3", true, time.Minute), note("n2", true, time.Hour), note("n1", true, 24*time.Hour),
	}
	store.watcher.push(base)
	eventuallyLen(t, feed, 3)
	require.False(t, feed.Unread())

	store.watcher.push(append([]models.Notification{note("n4", false, 0)}, base...))
	eventuallyLen(t, feed, 4)
	assert.True(t, feed.Unread())
}
