package delivery

import (
	"context"

	"github.com/TestingSDK2/notify-backend/app/config"
	"github.com/TestingSDK2/notify-backend/database"
	"github.com/TestingSDK2/notify-backend/model"
	"github.com/gorilla/websocket"
)

// Service - defines the realtime delivery service. Send pushes a payload to
// one device: over its websocket when the device is connected here, otherwise
// over any stored web-push subscription.
type Service interface {
	Send(ctx context.Context, serviceName, deviceID string, payload model.Document) error
	Attach(deviceID string, conn *websocket.Conn)
	Detach(deviceID string, conn *websocket.Conn)
	CreatePushSubscription(ctx context.Context, subscription *model.PushSubscription) (int, error)
	RemovePushSubscription(ctx context.Context, userID, deviceID string) error
}

type service struct {
	config   *config.Config
	dbMaster *database.Database
	hub      *hub
}

// NewService - creates new delivery service
func NewService(conf *config.Config, dbMaster *database.Database) Service {
	return &service{
		config:   conf,
		dbMaster: dbMaster,
		hub:      newHub(),
	}
}

func (s *service) Send(ctx context.Context, serviceName, deviceID string, payload model.Document) error {
	message := model.Document{
		"Type":     serviceName,
		"DeviceID": deviceID,
		"Data":     payload,
	}
	if s.hub.send(deviceID, message) {
		return nil
	}
	return sendWebPush(ctx, s.config, s.dbMaster, deviceID, message)
}

func (s *service) Attach(deviceID string, conn *websocket.Conn) {
	s.hub.attach(deviceID, conn)
}

func (s *service) Detach(deviceID string, conn *websocket.Conn) {
	s.hub.detach(deviceID, conn)
}

func (s *service) CreatePushSubscription(ctx context.Context, subscription *model.PushSubscription) (int, error) {
	return insertPushSubscription(ctx, s.dbMaster, subscription)
}

func (s *service) RemovePushSubscription(ctx context.Context, userID, deviceID string) error {
	return removePushSubscription(ctx, s.dbMaster, userID, deviceID)
}
