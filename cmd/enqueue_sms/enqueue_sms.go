package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rayafarhadi/text-marketing-app/helpers"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/bootstrap"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/loggers"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/settings"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/types"
)

func main() {
	ctx := context.Background()

	message := flag.String("message", "", "text to send to every subscribed customer")
	imagePath := flag.String("image", "", "path of an image to attach")
	flag.Parse()

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

	if *message == "" {
		logger.Fatal("-message is required")
	}
	payload := types.SendPayload{Message: *message}
	if *imagePath != "" {
		imageData, err := os.ReadFile(*imagePath)
		if err != nil {
			logger.Fatal("error reading image path='%s': %v", *imagePath, err)
		}
		payload.Image = helpers.Base64Encode(string(imageData))
		payload.ImageFilename = filepath.Base(*imagePath)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Fatal("error on marshalling payload: %v", err)
	}

	sendRequestQueue, err := bootstrap.InitializeSendRequestQueue(ctx, mySettings)
	if err != nil {
		logger.Fatal("error on initializing send requests queue: %v", err)
	}
	if err := sendRequestQueue.SendBody(ctx, string(body)); err != nil {
		logger.Fatal("error on SendBody: %v", err)
	}
	logger.Info("enqueued send request with message length=%d", len(*message))
}
