package session

import (
	"context"

	"github.com/TestingSDK2/notify-backend/database"
	"github.com/TestingSDK2/notify-backend/model"
)

// Service - defines the session registry service
type Service interface {
	SessionsOf(ctx context.Context, userID string) ([]model.UserSession, error)
}

type service struct {
	dbMaster *database.Database
}

// NewService - creates new session registry service backed by mysql
func NewService(dbMaster *database.Database) Service {
	return &service{
		dbMaster: dbMaster,
	}
}

func (s *service) SessionsOf(ctx context.Context, userID string) ([]model.UserSession, error) {
	return sessionsOf(ctx, s.dbMaster, userID)
}
