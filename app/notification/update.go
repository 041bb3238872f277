package notification

import (
	"context"

	"github.com/TestingSDK2/notify-backend/model"
	"github.com/pkg/errors"
)

// updateNotification marks a record as read. The transition is one-way and
// idempotent: an already-read record is returned as is, with no write and no
// push. Only the recipient or a system administrator may update.
func (s *service) updateNotification(ctx context.Context, req *model.RequestInfo) (model.Document, error) {
	notification, err := s.store.GetByID(ctx, req.ObjectIdentity)
	if err != nil {
		return nil, errors.Wrap(err, "unable to get notification")
	}
	if notification == nil {
		return nil, &model.InformationNotFoundError{}
	}

	gotRights := req.IsSystemAdministrator || req.Session.UserID == notification.RecipientID
	if !gotRights {
		return nil, &model.AccessDeniedError{}
	}

	response := notification.ToDocument()
	if !notification.Read {
		notification.Read = true
		response = notification.ToDocument()
		if err := s.store.Update(ctx, notification, true); err != nil {
			return nil, errors.Wrap(err, "unable to update notification")
		}
		if err := s.fanOut(ctx, notification.RecipientID, response); err != nil {
			return nil, err
		}
	}
	return response, nil
}
