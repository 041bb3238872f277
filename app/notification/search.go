package notification

import (
	"context"

	"github.com/TestingSDK2/notify-backend/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// searchNotifications runs a recipient-scoped search. In fetch mode the
// matching records travel via push to the caller's device and the response
// body stays empty.
func (s *service) searchNotifications(ctx context.Context, req *model.RequestInfo, asFetch bool) (model.Document, error) {
	filter := model.FilterFromDocument(req.Body.GetDocument("FilterBy"))
	filter = model.ScopeToRecipient(filter, req.Session.UserID)
	sort := model.SortByTimeDescending()
	pagination := model.PaginationFromDocument(req.Body.GetDocument("Pagination"))
	pageSize := pagination.PageSize
	pageNumber := pagination.PageNumber

	totalRecords, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "unable to count notifications")
	}

	var notifications []*model.Notification
	if totalRecords > 0 {
		notifications, err = s.store.Find(ctx, filter, sort, pageSize, pageNumber)
		if err != nil {
			return nil, errors.Wrap(err, "unable to find notifications")
		}
	}

	// first fetch grabs the second page too so a fresh session catches up in
	// one round trip
	if asFetch && pageNumber < 2 && totalRecords > int64(pageSize) {
		pageNumber++
		more, err := s.store.Find(ctx, filter, sort, pageSize, pageNumber)
		if err != nil {
			return nil, errors.Wrap(err, "unable to find notifications")
		}
		notifications = append(notifications, more...)
	}

	if asFetch {
		for _, notification := range notifications {
			if err := s.delivery.Send(ctx, s.serviceName, req.Session.DeviceID, notification.ToDocument()); err != nil {
				logrus.Errorf("unable to push to device [%s]: %s", req.Session.DeviceID, err.Error())
			}
		}
		return model.Document{}, nil
	}

	objects := make([]interface{}, 0, len(notifications))
	for _, notification := range notifications {
		objects = append(objects, map[string]interface{}(notification.ToDocument()))
	}
	summary := model.Pagination{
		TotalRecords: totalRecords,
		TotalPages:   model.TotalPages(totalRecords, pageSize),
		PageSize:     pageSize,
		PageNumber:   pageNumber,
	}
	return model.Document{
		"FilterBy":   filter.ToClientDocument(),
		"SortBy":     sort.ToClientDocument(),
		"Pagination": summary.ToDocument(),
		"Objects":    objects,
	}, nil
}
