package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/TestingSDK2/notify-backend/api/common"
	"github.com/TestingSDK2/notify-backend/model"
	"github.com/TestingSDK2/notify-backend/util"
	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Claims - the JWT claims carried by the auth token
type Claims struct {
	UserID                string `json:"userID"`
	IsSystemAdministrator bool   `json:"isSystemAdministrator"`
	jwt.StandardClaims
}

func (a *API) handler(f common.HandlerFuncWithCTX, checkAuth bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxContentSize*1024*1024)
		beginTime := time.Now()
		hijacker, _ := w.(http.Hijacker)
		ctx := a.App.NewContext().WithRemoteAddress(a.IPAddressForRequest(r))
		ctx = ctx.WithLogger(ctx.Logger.WithField("request_id", base64.RawURLEncoding.EncodeToString(util.NewID())))
		ctx.Vars = mux.Vars(r)

		w = &common.StatusCodeRecorder{
			ResponseWriter: w,
			Hijacker:       hijacker,
		}

		if checkAuth {
			session, isSystemAdministrator, err := a.validateUser(r)
			if err != nil {
				ctx.Logger.WithError(err).Error("unable to authenticate request")
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
			ctx = ctx.WithSession(session, isSystemAdministrator)
		}

		defer func() {
			statusCode := w.(*common.StatusCodeRecorder).StatusCode
			if statusCode == 0 {
				statusCode = 200
			}
			duration := time.Since(beginTime)

			logger := ctx.Logger.WithFields(logrus.Fields{
				"duration":    duration,
				"status_code": statusCode,
				"remote":      ctx.RemoteAddress,
			})
			logger.Info(r.Method + " " + r.URL.RequestURI())
		}()

		defer func() {
			if localRecover := recover(); localRecover != nil {
				ctx.Logger.Error(errors.Errorf("recovered from panic\n %v: %s", localRecover, debug.Stack()))
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(util.SetResponse(nil, 0, "server failed to process request"))
			}
		}()

		w.Header().Set("Content-Type", "application/json")

		if err := f(ctx, w, r); err != nil {
			ctx.Logger.Error(err)
			w.WriteHeader(statusForError(err))
			json.NewEncoder(w).Encode(util.SetResponse(nil, 0, err.Error()))
		}
	}
}

// statusForError maps the service error taxonomy onto HTTP status codes
func statusForError(err error) int {
	var methodNotAllowed *model.MethodNotAllowedError
	var accessDenied *model.AccessDeniedError
	var invalidRequest *model.InvalidRequestError
	var notFound *model.InformationNotFoundError
	switch {
	case errors.As(err, &methodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.As(err, &accessDenied):
		return http.StatusForbidden
	case errors.As(err, &invalidRequest):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// validateUser resolves the caller from the bearer token; the device comes
// from the X-Device-ID header
func (a *API) validateUser(r *http.Request) (model.Session, bool, error) {
	tokenStr := r.Header.Get("Authorization")
	tokenStr = strings.TrimPrefix(tokenStr, "Bearer ")
	if tokenStr == "" {
		return model.Session{}, false, errors.New("missing auth token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(a.App.Config.JWTKey), nil
	})
	if err != nil {
		return model.Session{}, false, err
	}
	if !token.Valid {
		return model.Session{}, false, errors.New("the JWT token is invalid")
	}

	session := model.Session{
		UserID:   claims.UserID,
		DeviceID: r.Header.Get("X-Device-ID"),
	}
	return session, claims.IsSystemAdministrator, nil
}

// IPAddressForRequest determines IP address for request
func (a *API) IPAddressForRequest(r *http.Request) string {
	addr := r.RemoteAddr
	if a.Config.ProxyCount > 0 {
		h := r.Header.Get("X-Forwarded-For")
		if h != "" {
			clients := strings.Split(h, ",")
			if a.Config.ProxyCount > len(clients) {
				addr = clients[0]
			} else {
				addr = clients[len(clients)-a.Config.ProxyCount]
			}
		}
	}
	return strings.Split(strings.TrimSpace(addr), ":")[0]
}
