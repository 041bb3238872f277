package notification

import (
	"context"
	"strings"
	"time"

	"github.com/TestingSDK2/notify-backend/model"
	"github.com/sirupsen/logrus"
)

// ProcessRequest routes one request and wraps it with timing logs and the
// composed cancellation signal. Errors of a known kind pass through
// unchanged; anything else surfaces as a RuntimeError carrying the original
// cause and the elapsed time.
func (s *service) ProcessRequest(ctx context.Context, req *model.RequestInfo) (model.Document, error) {
	started := time.Now()
	logger := logrus.WithFields(logrus.Fields{
		"verb":           req.Verb,
		"objectIdentity": req.ObjectIdentity,
		"userID":         req.Session.UserID,
	})
	logger.Info("begin request")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.shutdown, cancel)
	defer stop()
	if s.shutdown.Err() != nil {
		cancel()
	}

	response, err := s.route(ctx, req)
	elapsed := time.Since(started)
	if err != nil {
		logger.WithError(err).Errorf("request failed - execution times: %s", elapsed)
		switch err.(type) {
		case *model.MethodNotAllowedError, *model.AccessDeniedError,
			*model.InvalidRequestError, *model.InformationNotFoundError:
			return nil, err
		}
		return nil, &model.RuntimeError{Cause: err, Elapsed: elapsed}
	}

	logger.Infof("success response - execution times: %s", elapsed)
	return response, nil
}

func (s *service) route(ctx context.Context, req *model.RequestInfo) (model.Document, error) {
	switch strings.ToUpper(req.Verb) {
	case "GET":
		identity := strings.ToLower(req.ObjectIdentity)
		if identity == "search" || identity == "fetch" {
			return s.searchNotifications(ctx, req, identity == "fetch")
		}
		return s.updateNotification(ctx, req)
	case "POST":
		return s.createNotification(ctx, req)
	default:
		return nil, &model.MethodNotAllowedError{Verb: req.Verb}
	}
}
