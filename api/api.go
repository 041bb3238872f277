package api

import (
	"net/http"

	"github.com/TestingSDK2/notify-backend/api/common"
	"github.com/TestingSDK2/notify-backend/app"
	"github.com/gorilla/mux"
)

// API notify-backend api
type API struct {
	App    *app.App
	Config *common.Config
}

// New creates a new api
func New(a *app.App) (api *API, err error) {
	api = &API{App: a}
	api.Config, err = common.InitConfig()
	if err != nil {
		return nil, err
	}
	return api, nil
}

// Init registers all routes on the router
func (a *API) Init(r *mux.Router) {
	r.HandleFunc("/health", a.healthCheck).Methods(http.MethodGet)

	r.HandleFunc("/notifications/search", a.handler(a.SearchNotifications, true)).Methods(http.MethodGet)
	r.HandleFunc("/notifications/fetch", a.handler(a.FetchNotifications, true)).Methods(http.MethodGet)
	r.HandleFunc("/notifications/count", a.handler(a.GetUnreadCount, true)).Methods(http.MethodGet)
	r.HandleFunc("/notifications", a.handler(a.CreateNotification, true)).Methods(http.MethodPost)
	r.HandleFunc("/notifications/{notificationID}", a.handler(a.UpdateNotification, true)).Methods(http.MethodGet)

	r.HandleFunc("/subscriptions", a.handler(a.CreatePushSubscription, true)).Methods(http.MethodPost)
	r.HandleFunc("/subscriptions", a.handler(a.RemovePushSubscription, true)).Methods(http.MethodDelete)

	r.HandleFunc("/ws", a.handler(a.ConnectDevice, true)).Methods(http.MethodGet)
}

func (a *API) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","service":"notify-backend"}`))
}
