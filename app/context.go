package app

import (
	"github.com/TestingSDK2/notify-backend/model"
	"github.com/sirupsen/logrus"
)

// Context per request state
type Context struct {
	Logger                logrus.FieldLogger
	RemoteAddress         string
	Session               model.Session
	IsSystemAdministrator bool
	Vars                  map[string]string
}

// WithLogger sets logger for context
func (ctx *Context) WithLogger(logger logrus.FieldLogger) *Context {
	ret := *ctx
	ret.Logger = logger
	return &ret
}

// WithRemoteAddress sets remote address for context
func (ctx *Context) WithRemoteAddress(address string) *Context {
	ret := *ctx
	ret.RemoteAddress = address
	return &ret
}

// WithSession sets the authenticated caller for context
func (ctx *Context) WithSession(session model.Session, isSystemAdministrator bool) *Context {
	ret := *ctx
	ret.Session = session
	ret.IsSystemAdministrator = isSystemAdministrator
	return &ret
}
