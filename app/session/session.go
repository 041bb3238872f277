package session

import (
	"context"

	"github.com/TestingSDK2/notify-backend/database"
	"github.com/TestingSDK2/notify-backend/model"
	"github.com/pkg/errors"
)

func sessionsOf(ctx context.Context, mysql *database.Database, userID string) ([]model.UserSession, error) {
	stmt := "SELECT sessionID, userID, deviceID, appName, isOnline FROM `notify-dev`.UserSessions WHERE userID = ?"
	sessions := []model.UserSession{}
	err := mysql.Conn.SelectContext(ctx, &sessions, stmt, userID)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch user sessions")
	}
	return sessions, nil
}
