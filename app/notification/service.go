package notification

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/TestingSDK2/notify-backend/app/config"
	"github.com/TestingSDK2/notify-backend/consts"
	"github.com/TestingSDK2/notify-backend/model"
)

// Service - defines the notification service. ProcessRequest is the single
// entry point: it routes by verb and object identity to search, fetch,
// create or mark-as-read, and fans every change out to the live sessions of
// the affected recipient.
type Service interface {
	ProcessRequest(ctx context.Context, req *model.RequestInfo) (model.Document, error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
}

type service struct {
	store            model.NotificationStore
	sessions         model.SessionRegistry
	delivery         model.Delivery
	shutdown         context.Context
	serviceName      string
	notificationsKey string
}

// NewService - creates new notification service. shutdown is the
// process-wide cancellation signal; it is composed with each request's own
// signal so in-flight work stops on either.
func NewService(repos *model.Repos, conf *config.Config, shutdown context.Context) Service {
	serviceName := conf.ServiceName
	if serviceName == "" {
		serviceName = consts.ServiceName
	}
	if shutdown == nil {
		shutdown = context.Background()
	}
	return &service{
		store:            repos.Store,
		sessions:         repos.Sessions,
		delivery:         repos.Delivery,
		shutdown:         shutdown,
		serviceName:      serviceName,
		notificationsKey: notificationsKey(serviceName),
	}
}

// notificationsKey derives the process-specific server-to-server key from the
// service name and a fixed salt; it is never learned at runtime
func notificationsKey(serviceName string) string {
	sum := sha256.Sum256([]byte(serviceName + consts.NotificationsKeySalt))
	return hex.EncodeToString(sum[:])
}

func (s *service) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	filter := model.NewAndFilter(
		&model.FilterClause{Attribute: "RecipientID", Operation: model.OpEquals, Value: userID},
		&model.FilterClause{Attribute: "Read", Operation: model.OpEquals, Value: false},
	)
	return s.store.Count(ctx, filter)
}
