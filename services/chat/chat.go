// Package chat is the customer-support conversation channel, riding the same
// Firestore project as notifications. A conversation is a live query over the
// "messages" collection, oldest first; sending appends one document.
package chat

import (
	"context"
	"fmt"
	"time"

	"lendhub/models"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const messagesCollection = "messages"

// ChatService sends messages and watches conversations.
type ChatService interface {
	Send(ctx context.Context, msg models.Message) (*models.Message, error)
	Watch(ctx context.Context, conversationID string) (*Conversation, error)
}

// Conversation is a live message stream. Updates delivers the full message
// history, oldest first, on every change; Stop releases the query.
type Conversation struct {
	cancel  context.CancelFunc
	snaps   *firestore.QuerySnapshotIterator
	updates chan []models.Message
}

func (c *Conversation) Updates() <-chan []models.Message {
	return c.updates
}

func (c *Conversation) Stop() {
	c.cancel()
	c.snaps.Stop()
}

// DefaultChatService is the production implementation.
type DefaultChatService struct {
	client *firestore.Client
	logger *zap.Logger
}

func NewDefaultChatService(client *firestore.Client, logger *zap.Logger) (*DefaultChatService, error) {
	if client == nil {
		return nil, fmt.Errorf("chat service initialization error: firestore client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultChatService{client: client, logger: logger}, nil
}

// Send writes one message document. The ID is assigned client-side so the
// sender can render the message before the snapshot echoes it back.
func (s *DefaultChatService) Send(ctx context.Context, msg models.Message) (*models.Message, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	doc := s.client.Collection(messagesCollection).Doc(msg.ID)
	if _, err := doc.Set(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return &msg, nil
}

func (s *DefaultChatService) Watch(ctx context.Context, conversationID string) (*Conversation, error) {
	ctx, cancel := context.WithCancel(ctx)
	query := s.client.Collection(messagesCollection).
		Query.Where("conversationId", "==", conversationID).
		OrderBy("timestamp", firestore.Asc)
	snaps := query.Snapshots(ctx)

	conv := &Conversation{
		cancel:  cancel,
		snaps:   snaps,
		updates: make(chan []models.Message, 1),
	}

	go func() {
		defer close(conv.updates)
		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					s.logger.Warn("Chat snapshot stream ended",
						zap.String("conversationId", conversationID), zap.Error(err))
				}
				return
			}
			msgs, err := decodeMessages(snap)
			if err != nil {
				s.logger.Warn("Failed to decode chat snapshot", zap.Error(err))
				continue
			}
			select {
			case conv.updates <- msgs:
			case <-ctx.Done():
				return
			}
		}
	}()

	return conv, nil
}

func decodeMessages(snap *firestore.QuerySnapshot) ([]models.Message, error) {
	msgs := make([]models.Message, 0, snap.Size)
	for {
		doc, err := snap.Documents.Next()
		if err == iterator.Done {
			return msgs, nil
		}
		if err != nil {
			return nil, err
		}
		var m models.Message
		if err := doc.DataTo(&m); err != nil {
			return nil, err
		}
		m.ID = doc.Ref.ID
		msgs = append(msgs, m)
	}
}
