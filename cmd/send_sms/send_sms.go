package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rayafarhadi/text-marketing-app/application"
	"github.com/rayafarhadi/text-marketing-app/core"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/bootstrap"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/loggers"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/settings"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/stores"
)

func main() {
	ctx := context.Background()

	message := flag.String("message", "", "text to send to every subscribed customer")
	imagePath := flag.String("image", "", "path of an image to attach")
	customersPath := flag.String("customers", "", "path of a customers csv, overrides CUSTOMERS_SOURCE")
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

	sender, err := bootstrap.InitializeSender(ctx, mySettings, logger)
	if err != nil {
		logger.Fatal("error on initializing sender: %v", err)
	}
	if *customersPath != "" {
		sender.CustomerSource = &stores.CSVFileSource{
			Path:    *customersPath,
			Columns: stores.CustomerColumns{Phone: mySettings.CustomersPhoneColumn, Unsubscribed: mySettings.CustomersUnsubscribedColumn},
		}
	}

	request := core.SendRequest{MessageText: *message}
	if *imagePath != "" {
		imageData, err := os.ReadFile(*imagePath)
		if err != nil {
			logger.Fatal("error reading image path='%s': %v", *imagePath, err)
		}
		request.ImageData = imageData
		request.ImageFilename = filepath.Base(*imagePath)
	}

	result, err := application.SendBulk(ctx, request, sender.ImageStore, sender.CustomerSource, sender.Messenger, logger)
	if err != nil {
		logger.Fatal("error on send bulk: %v", err)
	}

	fmt.Printf("%s sent=%d failed=%d\n", core.SendSuccessMessage, result.SentCount, len(result.FailedNumbers))
	for _, phoneNumber := range result.FailedNumbers {
		fmt.Printf("failed: %s\n", phoneNumber)
	}
}
