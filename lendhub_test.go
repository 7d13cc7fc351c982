package lendhub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"lendhub/config"
	"lendhub/models"
	"lendhub/services/auth"
	"lendhub/services/notification"
	"lendhub/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubNoteStore satisfies notification.Store for wiring tests.
type stubNoteStore struct {
	mu         sync.Mutex
	watchQuery notification.Query
	updates    chan []models.Notification
}

func newStubNoteStore() *stubNoteStore {
	return &stubNoteStore{updates: make(chan []models.Notification, 1)}
}

func (s *stubNoteStore) Watch(ctx context.Context, q notification.Query) (notification.Watcher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchQuery = q
	return s, nil
}

func (s *stubNoteStore) Updates() <-chan []models.Notification { return s.updates }
func (s *stubNoteStore) Stop()                                 { close(s.updates) }

func (s *stubNoteStore) MarkRead(ctx context.Context, id string) error { return nil }

func (s *stubNoteStore) UnreadIDs(ctx context.Context, q notification.Query) ([]string, error) {
	return nil, nil
}

func (s *stubNoteStore) MarkAllRead(ctx context.Context, ids []string) error { return nil }

func TestClientWiresSessionIntoRequests(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/login":
			json.NewEncoder(w).Encode(auth.AuthResponse{ID: "u1", Name: "Ada", Token: "tok-7"})
		case "/users/me":
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(models.User{ID: "u1", Name: "Ada"})
		}
	}))
	defer srv.Close()

	cfg := config.Config{APIBaseURL: srv.URL, MaxRequestsPerMin: 120}
	client, err := newClient(cfg, session.NewMemoryStore(), newStubNoteStore(), nil, nil)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = client.Auth.SignIn(ctx, "ada@example.com", "pw")
	require.NoError(t, err)

	// The token stored at sign-in rides every later call through the shared
	// token source; no per-service token plumbing exists.
	u, err := client.Users.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Bearer tok-7", gotAuth)

	sess, err := client.Sessions.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-7", sess.Token)
}

func TestClientBuildsWiredFeed(t *testing.T) {
	store := newStubNoteStore()
	client, err := newClient(config.Config{APIBaseURL: "http://localhost"},
		session.NewMemoryStore(), store, nil, nil)
	require.NoError(t, err)

	feed := client.NotificationFeed("U1", true)
	require.NoError(t, feed.Subscribe(context.Background()))
	defer feed.Close()

	assert.Equal(t, notification.Query{RecipientID: "U1", DeliveredOnly: true}, store.watchQuery)

	store.updates <- []models.Notification{{ID: "n1", RecipientID: "U1", Timestamp: time.Now()}}
	require.Eventually(t, func() bool {
		return len(feed.Notifications()) == 1
	}, time.Second, 5*time.Millisecond)
}
