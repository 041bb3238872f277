package model

import (
	"context"

	"github.com/TestingSDK2/notify-backend/cache"
	"github.com/TestingSDK2/notify-backend/database"
	"github.com/TestingSDK2/notify-backend/mongodatabase"
)

// NotificationStore - the persistent record store collaborator
type NotificationStore interface {
	Count(ctx context.Context, filter Filter) (int64, error)
	Find(ctx context.Context, filter Filter, sort Sort, pageSize, pageNumber int) ([]*Notification, error)
	Create(ctx context.Context, notification *Notification) error
	Update(ctx context.Context, notification *Notification, fullReplace bool) error
	GetByID(ctx context.Context, id string) (*Notification, error)
}

// SessionRegistry - the session registry collaborator; liveness filtering is
// the caller's job
type SessionRegistry interface {
	SessionsOf(ctx context.Context, userID string) ([]UserSession, error)
}

// Delivery - the outbound realtime channel; fire-and-forget, errors are only
// diagnostic
type Delivery interface {
	Send(ctx context.Context, serviceName, deviceID string, payload Document) error
}

// Repos container to hold handles for cache / db repos and the collaborator
// ports built on top of them
type Repos struct {
	MasterDB *database.Database
	Cache    *cache.Cache
	MongoDB  *mongodatabase.DBConfig
	Store    NotificationStore
	Sessions SessionRegistry
	Delivery Delivery
}
