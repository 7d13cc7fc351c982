// Package lendhub assembles the loan-platform client: config, logger, the
// Firebase/Firestore bootstrap, the redis-backed session, and the typed
// service clients riding the shared HTTP layer.
package lendhub

import (
	"context"
	"fmt"

	"lendhub/config"
	"lendhub/services/admin"
	"lendhub/services/api"
	"lendhub/services/auth"
	"lendhub/services/chat"
	"lendhub/services/notification"
	"lendhub/services/payment"
	"lendhub/services/user"
	"lendhub/session"
	"lendhub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Client is the assembled SDK surface the dashboards consume.
type Client struct {
	Auth     auth.AuthService
	Users    user.UserService
	Admins   admin.AdminService
	Payments payment.PaymentService
	Chat     chat.ChatService
	Sessions session.Store

	notifications notification.Store
	logger        *zap.Logger
}

// New bootstraps a production client: loads config, initializes the logger
// and Firebase, connects redis for session persistence, and wires every
// service. clientID scopes the persisted session, e.g. a device or install ID.
func New(ctx context.Context, clientID string) (*Client, error) {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis (sessions): %w", err)
	}
	store := session.NewRedisStore(rdb, clientID)

	fs := config.GetFirestoreClient()
	notes, err := notification.NewFirestoreStore(fs, logger)
	if err != nil {
		return nil, err
	}
	chatSvc, err := chat.NewDefaultChatService(fs, logger)
	if err != nil {
		return nil, err
	}

	return newClient(config.AppConfig, store, notes, chatSvc, logger)
}

// newClient is the wiring seam under New: everything below the external
// connections, so tests can substitute stores.
func newClient(cfg config.Config, store session.Store, notes notification.Store, chatSvc chat.ChatService, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiClient := api.New(cfg.APIBaseURL, session.NewStoreSource(store),
		api.WithRateLimit(cfg.MaxRequestsPerMin),
		api.WithLogger(logger),
	)

	authSvc, err := auth.NewDefaultAuthService(apiClient, store)
	if err != nil {
		return nil, err
	}
	userSvc, err := user.NewDefaultUserService(apiClient)
	if err != nil {
		return nil, err
	}
	adminSvc, err := admin.NewDefaultAdminService(apiClient)
	if err != nil {
		return nil, err
	}
	paymentSvc, err := payment.NewDefaultPaymentService(apiClient)
	if err != nil {
		return nil, err
	}

	return &Client{
		Auth:          authSvc,
		Users:         userSvc,
		Admins:        adminSvc,
		Payments:      paymentSvc,
		Chat:          chatSvc,
		Sessions:      store,
		notifications: notes,
		logger:        logger,
	}, nil
}

// NotificationFeed builds a feed for one recipient. The caller owns its
// lifecycle: Subscribe to start, Close on teardown.
func (c *Client) NotificationFeed(recipientID string, deliveredOnly bool) *notification.Feed {
	q := notification.Query{RecipientID: recipientID, DeliveredOnly: deliveredOnly}
	return notification.NewFeed(c.notifications, q, c.logger)
}
