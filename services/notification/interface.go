// Package notification keeps a client's in-memory notification list
// continuously consistent with the external store's matching documents, and
// owns the read-state transitions: per-document marks when the bell dropdown
// opens, one batched write for the notifications page's mark-all action.
package notification

import (
	"context"

	"lendhub/models"
)

// Query selects the documents a feed watches: all notifications addressed to
// one recipient, optionally gated on the delivered flag (notifications can
// exist in the store before the backend releases them to the feed).
type Query struct {
	RecipientID   string
	DeliveredOnly bool
}

// Watcher is a live query in flight. Updates delivers the full current
// matching set, newest first, every time any matching document changes; the
// channel closes when the watcher stops or the stream drops. Stop releases
// the query. Every Watch must be paired with a Stop.
type Watcher interface {
	Updates() <-chan []models.Notification
	Stop()
}

// Store is the document-store surface the feed engine runs on. The
// production implementation is Firestore; tests substitute a fake to count
// calls.
type Store interface {
	// Watch establishes a live query for q.
	Watch(ctx context.Context, q Query) (Watcher, error)
	// MarkRead flips one document's read flag with a single-document write.
	MarkRead(ctx context.Context, id string) error
	// UnreadIDs lists the ids of currently-unread documents matching q.
	UnreadIDs(ctx context.Context, q Query) ([]string, error)
	// MarkAllRead flips every listed document in one batched write.
	MarkAllRead(ctx context.Context, ids []string) error
}
