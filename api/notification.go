package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/TestingSDK2/notify-backend/app"
	"github.com/TestingSDK2/notify-backend/consts"
	"github.com/TestingSDK2/notify-backend/model"
	"github.com/TestingSDK2/notify-backend/util"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// SearchNotifications - GET /notifications/search
func (a *API) SearchNotifications(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	return a.processNotificationRequest(ctx, w, r, "search")
}

// FetchNotifications - GET /notifications/fetch; results travel via push
func (a *API) FetchNotifications(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	return a.processNotificationRequest(ctx, w, r, "fetch")
}

// CreateNotification - POST /notifications
func (a *API) CreateNotification(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	return a.processNotificationRequest(ctx, w, r, "")
}

// UpdateNotification - GET /notifications/{notificationID}; marks as read
func (a *API) UpdateNotification(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	return a.processNotificationRequest(ctx, w, r, ctx.Vars["notificationID"])
}

func (a *API) processNotificationRequest(ctx *app.Context, w http.ResponseWriter, r *http.Request, objectIdentity string) error {
	req, err := a.requestInfoFromHTTP(ctx, r, objectIdentity)
	if err != nil {
		return err
	}
	response, err := a.App.NotificationService.ProcessRequest(r.Context(), req)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(response)
}

// requestInfoFromHTTP builds the transport-independent request shape. POST
// bodies arrive as JSON; GET requests may carry an x-request query value,
// plain or base64-encoded JSON.
func (a *API) requestInfoFromHTTP(ctx *app.Context, r *http.Request, objectIdentity string) (*model.RequestInfo, error) {
	req := &model.RequestInfo{
		Verb:                  r.Method,
		ObjectIdentity:        objectIdentity,
		Session:               ctx.Session,
		IsSystemAdministrator: ctx.IsSystemAdministrator,
		Extra:                 map[string]string{},
	}
	if key := r.Header.Get(consts.NotificationsKeyHeader); key != "" {
		req.Extra[consts.NotificationsKeyHeader] = key
	}

	switch r.Method {
	case http.MethodPost:
		body := model.Document{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, &model.InvalidRequestError{Message: "malformed request body"}
		}
		req.Body = body
	default:
		if raw := r.URL.Query().Get("x-request"); raw != "" {
			if decoded, err := base64.RawURLEncoding.DecodeString(raw); err == nil {
				raw = string(decoded)
			}
			body := model.Document{}
			if err := json.Unmarshal([]byte(raw), &body); err != nil {
				return nil, &model.InvalidRequestError{Message: "malformed x-request value"}
			}
			req.Body = body
		}
	}
	return req, nil
}

// GetUnreadCount - GET /notifications/count
func (a *API) GetUnreadCount(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	count, err := a.App.NotificationService.GetUnreadCount(r.Context(), ctx.Session.UserID)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(util.SetResponse(model.Document{"Count": count}, 1, "Unread notification count"))
}

// CreatePushSubscription - POST /subscriptions
func (a *API) CreatePushSubscription(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	subscription := &model.PushSubscription{}
	if err := json.NewDecoder(r.Body).Decode(subscription); err != nil {
		return &model.InvalidRequestError{Message: "malformed request body"}
	}
	subscription.UserID = ctx.Session.UserID
	if subscription.DeviceID == "" {
		subscription.DeviceID = ctx.Session.DeviceID
	}
	id, err := a.App.DeliveryService.CreatePushSubscription(r.Context(), subscription)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(util.SetResponse(model.Document{"ID": id}, 1, "Push subscription created"))
}

// RemovePushSubscription - DELETE /subscriptions
func (a *API) RemovePushSubscription(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	deviceID := r.URL.Query().Get("deviceID")
	if deviceID == "" {
		deviceID = ctx.Session.DeviceID
	}
	if err := a.App.DeliveryService.RemovePushSubscription(r.Context(), ctx.Session.UserID, deviceID); err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(util.SetResponse(nil, 1, "Push subscription removed"))
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ConnectDevice - GET /ws; attaches the caller's device to the realtime
// delivery hub until the socket closes
func (a *API) ConnectDevice(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	deviceID := ctx.Session.DeviceID
	if deviceID == "" {
		deviceID = r.URL.Query().Get("deviceID")
	}
	if deviceID == "" {
		return &model.InvalidRequestError{Message: "No device"}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return errors.Wrap(err, "unable to upgrade connection")
	}
	a.App.DeliveryService.Attach(deviceID, conn)

	go func() {
		defer util.Recover()
		defer a.App.DeliveryService.Detach(deviceID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return nil
}
