package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/TestingSDK2/notify-backend/app/config"
	"github.com/TestingSDK2/notify-backend/app/delivery"
	"github.com/TestingSDK2/notify-backend/app/notification"
	"github.com/TestingSDK2/notify-backend/app/session"
	"github.com/TestingSDK2/notify-backend/cache"
	"github.com/TestingSDK2/notify-backend/database"
	"github.com/TestingSDK2/notify-backend/model"
	"github.com/TestingSDK2/notify-backend/mongodatabase"
)

// App our application
type App struct {
	Config              *config.Config
	Repos               *model.Repos
	NotificationService notification.Service
	SessionService      session.Service
	DeliveryService     delivery.Service
}

// NewContext create new request context
func (a *App) NewContext() *Context {
	return &Context{
		Logger: logrus.StandardLogger(),
	}
}

// New create a new app. shutdown is the process-wide cancellation signal
// composed into every request.
func New(shutdown context.Context) (*App, error) {
	appConf, err := config.InitConfig()
	if err != nil {
		return nil, err
	}

	dbConf, err := database.InitConfig()
	if err != nil {
		return nil, err
	}

	cacheConf, err := cache.InitConfig()
	if err != nil {
		return nil, err
	}

	masterDB, err := database.New(dbConf.Master)
	if err != nil {
		return nil, err
	}

	mongoDBConf, err := mongodatabase.InitConfig()
	if err != nil {
		return nil, err
	}

	appCache := cache.New(cacheConf)
	sessionService := session.NewService(masterDB)
	deliveryService := delivery.NewService(appConf, masterDB)

	repos := &model.Repos{
		MasterDB: masterDB,
		Cache:    appCache,
		MongoDB:  mongoDBConf,
		Store:    notification.NewStore(mongoDBConf, appCache),
		Sessions: sessionService,
		Delivery: deliveryService,
	}

	return &App{
		Config:              appConf,
		Repos:               repos,
		NotificationService: notification.NewService(repos, appConf, shutdown),
		SessionService:      sessionService,
		DeliveryService:     deliveryService,
	}, nil
}

// Close closes application handles and connections
func (a *App) Close() {
	logrus.Info("closing connection to database")

	if err := a.Repos.MasterDB.Close(); err != nil {
		logrus.Error("unable to close connection to master database", err)
	}
	if err := a.Repos.Cache.Close(); err != nil {
		logrus.Error("unable to close connection to cache", err)
	}
}
