package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/adapters"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/bootstrap"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/loggers"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/settings"
)

var handler *adapters.SQSHandler

func init() {
	ctx := context.Background()

	log.Println("initializing settings")
	mySettings, err := settings.GetSettings()
	if err != nil {
		log.Fatalf("error on get settings: %v\n", err)
	}

	log.Println("initializing loggers")
	logger, err := loggers.InitializeMultiLogger(mySettings.DoLogToStdout, mySettings.LogLevel)
	if err != nil {
		log.Fatalf("error on initializing multilogger: %v\n", err)
	}

	sender, err := bootstrap.InitializeSender(ctx, mySettings, logger)
	if err != nil {
		logger.Fatal("error on initializing sender: %v", err)
	}

	logger.Info("initializing send requests queue")
	sendRequestQueue, err := bootstrap.InitializeSendRequestQueue(ctx, mySettings)
	if err != nil {
		logger.Fatal("error on initializing send requests queue: %v", err)
	}

	handler = &adapters.SQSHandler{Sender: sender, Queue: sendRequestQueue}
}

func main() {
	lambda.Start(handler.HandleSQSEvent)
}
