// File: services/notification/firestore.go
package notification

import (
	"context"
	"fmt"

	"lendhub/models"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const notificationsCollection = "notifications"

// FirestoreStore is the production Store, backed by the platform's managed
// Firestore project. The backend writes notification documents; this client
// only watches them and flips read flags.
type FirestoreStore struct {
	client *firestore.Client
	logger *zap.Logger
}

func NewFirestoreStore(client *firestore.Client, logger *zap.Logger) (*FirestoreStore, error) {
	if client == nil {
		return nil, fmt.Errorf("notification store initialization error: firestore client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FirestoreStore{client: client, logger: logger}, nil
}

func (s *FirestoreStore) feedQuery(q Query) firestore.Query {
	query := s.client.Collection(notificationsCollection).
		Query.Where("recipientId", "==", q.RecipientID)
	if q.DeliveredOnly {
		query = query.Where("delivered", "==", true)
	}
	return query.OrderBy("timestamp", firestore.Desc)
}

// Watch pumps every query snapshot to the returned watcher as a full result
// set, newest first. The stream is not reconnected on failure.
func (s *FirestoreStore) Watch(ctx context.Context, q Query) (Watcher, error) {
	ctx, cancel := context.WithCancel(ctx)
	snaps := s.feedQuery(q).Snapshots(ctx)

	w := &firestoreWatcher{
		cancel:  cancel,
		snaps:   snaps,
		updates: make(chan []models.Notification, 1),
	}

	go func() {
		defer close(w.updates)
		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					s.logger.Warn("Notification snapshot stream ended",
						zap.String("recipientId", q.RecipientID), zap.Error(err))
				}
				return
			}
			list, err := decodeSnapshot(snap)
			if err != nil {
				s.logger.Warn("Failed to decode notification snapshot", zap.Error(err))
				continue
			}
			select {
			case w.updates <- list:
			case <-ctx.Done():
				return
			}
		}
	}()

	return w, nil
}

func decodeSnapshot(snap *firestore.QuerySnapshot) ([]models.Notification, error) {
	list := make([]models.Notification, 0, snap.Size)
	for {
		doc, err := snap.Documents.Next()
		if err == iterator.Done {
			return list, nil
		}
		if err != nil {
			return nil, err
		}
		var n models.Notification
		if err := doc.DataTo(&n); err != nil {
			return nil, err
		}
		n.ID = doc.Ref.ID
		list = append(list, n)
	}
}

func (s *FirestoreStore) MarkRead(ctx context.Context, id string) error {
	doc := s.client.Collection(notificationsCollection).Doc(id)
	if _, err := doc.Update(ctx, []firestore.Update{{Path: "read", Value: true}}); err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) UnreadIDs(ctx context.Context, q Query) ([]string, error) {
	query := s.client.Collection(notificationsCollection).
		Query.Where("recipientId", "==", q.RecipientID).
		Where("read", "==", false)
	if q.DeliveredOnly {
		query = query.Where("delivered", "==", true)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var ids []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return ids, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query unread notifications: %w", err)
		}
		ids = append(ids, doc.Ref.ID)
	}
}

// MarkAllRead commits one batched write covering every listed document.
func (s *FirestoreStore) MarkAllRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	batch := s.client.Batch()
	coll := s.client.Collection(notificationsCollection)
	for _, id := range ids {
		batch.Update(coll.Doc(id), []firestore.Update{{Path: "read", Value: true}})
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit mark-all-read batch: %w", err)
	}
	return nil
}

type firestoreWatcher struct {
	cancel  context.CancelFunc
	snaps   *firestore.QuerySnapshotIterator
	updates chan []models.Notification
}

func (w *firestoreWatcher) Updates() <-chan []models.Notification {
	return w.updates
}

func (w *firestoreWatcher) Stop() {
	w.cancel()
	w.snaps.Stop()
}
