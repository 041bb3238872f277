package notification

import (
	"context"

	"github.com/TestingSDK2/notify-backend/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// fanOut pushes one payload to every live session of the recipient. Delivery
// is fire-and-forget: a failed push is logged, never propagated. A failed
// session lookup is a collaborator failure and does propagate.
func (s *service) fanOut(ctx context.Context, recipientID string, payload model.Document) error {
	sessions, err := s.sessions.SessionsOf(ctx, recipientID)
	if err != nil {
		return errors.Wrap(err, "unable to fetch recipient sessions")
	}
	for _, session := range sessions {
		if !session.IsOnline {
			continue
		}
		if err := s.delivery.Send(ctx, s.serviceName, session.DeviceID, payload); err != nil {
			logrus.Errorf("unable to push to device [%s] of user [%s]: %s", session.DeviceID, recipientID, err.Error())
		}
	}
	return nil
}
