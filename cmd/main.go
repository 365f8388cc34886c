package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ray-remotestate/enfes/config"
	"github.com/ray-remotestate/enfes/database"
	"github.com/ray-remotestate/enfes/server"
	"github.com/sirupsen/logrus"
)

func main() {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	cfg := config.Init()

	if err := database.ConnectAndMigrate(cfg.DSN()); err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	logrus.Info("migration is successful")

	srv := server.SetupRoutes(cfg)
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Panicf("failed to run server, error: %v", err)
		}
	}()
	logrus.WithField("addr", cfg.ServerAddr).Info("server started")

	<-done

	logrus.Info("shutting down...")
	if err := srv.Shutdown(cfg.ShutdownTimeout); err != nil {
		logrus.WithError(err).Error("failed to gracefully shutdown server")
	}
	if err := database.ShutdownDatabase(); err != nil {
		logrus.WithError(err).Error("failed to close database connection!")
	}

	logrus.Info("system is shut ..zzz")
}
