package notification

import (
	"context"
	"strings"

	"github.com/TestingSDK2/notify-backend/consts"
	"github.com/TestingSDK2/notify-backend/model"
	"github.com/TestingSDK2/notify-backend/util"
	"github.com/pkg/errors"
)

// createNotification persists one record, or one record per recipient when
// the body carries a Recipients list, and fans each persisted record out to
// the live sessions of its recipient. Only system administrators and callers
// holding the notifications key may create.
func (s *service) createNotification(ctx context.Context, req *model.RequestInfo) (model.Document, error) {
	gotRights := req.IsSystemAdministrator ||
		strings.EqualFold(req.GetExtra(consts.NotificationsKeyHeader), s.notificationsKey)
	if !gotRights {
		return nil, &model.AccessDeniedError{}
	}

	notification, err := model.NotificationFromDocument(req.Body)
	if err != nil {
		return nil, err
	}

	response := notification.ToDocument()
	if notification.RecipientID == "" {
		recipientIDs := req.Body.GetStringSlice("Recipients")
		if len(recipientIDs) == 0 {
			return nil, &model.InvalidRequestError{Message: "No recipient"}
		}
		for _, userID := range recipientIDs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			notification.ID = util.NewUUID()
			notification.RecipientID = userID
			if err := s.store.Create(ctx, notification); err != nil {
				return nil, errors.Wrap(err, "unable to create notification")
			}
			response = notification.ToDocument()
			if err := s.fanOut(ctx, notification.RecipientID, response); err != nil {
				return nil, err
			}
		}
	} else {
		if err := s.store.Create(ctx, notification); err != nil {
			return nil, errors.Wrap(err, "unable to create notification")
		}
		if err := s.fanOut(ctx, notification.RecipientID, response); err != nil {
			return nil, err
		}
	}

	// the bulk path answers with the last recipient's record; kept for
	// compatibility with existing callers
	return response, nil
}
