package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/adapters"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/bootstrap"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/loggers"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/settings"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/watchers"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	mySettings, err := settings.GetSettings()
	if err != nil {
		log.Fatalf("error on get settings: %v\n", err)
	}

	logger, err := loggers.InitializeMultiLogger(mySettings.DoLogToStdout, mySettings.LogLevel)
	if err != nil {
		log.Fatalf("error on initializing multilogger: %v\n", err)
	}
	defer logger.Sync()

	sender, err := bootstrap.InitializeSender(ctx, mySettings, logger)
	if err != nil {
		logger.Fatal("error on initializing sender: %v", err)
	}

	server := &http.Server{
		Addr:              mySettings.HTTPAddr,
		Handler:           adapters.NewHTTPHandler(sender),
		ReadHeaderTimeout: mySettings.HTTPReadHeaderTimeout,
	}

	shutdownWatcher := watchers.InitializeShutdownWatcher()
	shutdownWatcher.Start()
	go func() {
		<-shutdownWatcher.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("error on server shutdown: %v", err)
		}
	}()

	logger.Info("server listening on addr=%s", mySettings.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("error on ListenAndServe: %v", err)
	}
}
