package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path"
	"sync"
	"syscall"
	"time"

	"github.com/TestingSDK2/notify-backend/api"
	"github.com/TestingSDK2/notify-backend/app"
	"github.com/TestingSDK2/notify-backend/util"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewServeCommand - serves the notify api
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serves the notify api",
		RunE:  run,
	}
}

// SetLogs writes logs to a dated file and the terminal
func SetLogs() {
	now := time.Now()
	logFileName := now.Format("2006-01-02") + ".log"
	logFilePath := path.Join("./storage/logs", logFileName)

	if err := os.MkdirAll("./storage/logs", 0755); err != nil {
		logrus.Error("error creating log directory:", err)
		return
	}

	file, err := os.OpenFile(logFilePath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		logrus.Error("error opening log file:", err)
		return
	}

	mw := io.MultiWriter(os.Stdout, file)
	logrus.SetOutput(mw)
	logrus.SetFormatter(&logrus.JSONFormatter{
		DisableHTMLEscape: true,
		TimestampFormat:   "2006-01-02 15:04:05",
	})
	logrus.SetReportCaller(true)
}

func run(cmd *cobra.Command, args []string) error {
	SetLogs()

	ctx, cancel := context.WithCancel(context.Background())

	a, err := app.New(ctx)
	if err != nil {
		cancel()
		return err
	}
	defer a.Close()

	apiHandle, err := api.New(a)
	if err != nil {
		cancel()
		return err
	}

	go func() {
		defer util.RecoverGoroutinePanic(nil)
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		<-ch
		logrus.Info("signal caught. shutting down...")
		cancel()
	}()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer util.RecoverGoroutinePanic(nil)
		defer wg.Done()
		defer cancel()
		serveAPI(ctx, apiHandle)
	}()

	wg.Wait()
	return nil
}

func serveAPI(ctx context.Context, apiHandle *api.API) {
	cors := handlers.CORS(
		handlers.AllowCredentials(),
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "OPTIONS", "DELETE"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With", "X-Device-ID", "x-notifications-key"}),
	)

	router := mux.NewRouter()
	router.Use(cors)
	apiHandle.Init(router.PathPrefix("/api").Subrouter().StrictSlash(true))

	s := &http.Server{
		Addr:         fmt.Sprintf(":%d", apiHandle.Config.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(apiHandle.Config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(apiHandle.Config.WriteTimeout) * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer util.RecoverGoroutinePanic(nil)
		<-ctx.Done()
		if err := s.Shutdown(context.Background()); err != nil {
			logrus.Error(err)
		}
		close(done)
	}()

	logrus.Infof("serving api at http://127.0.0.1:%d", apiHandle.Config.Port)
	if err := s.ListenAndServe(); err != http.ErrServerClosed {
		logrus.Fatal(err)
	}
	<-done
}
