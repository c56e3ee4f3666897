package bootstrap

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/rayafarhadi/text-marketing-app/core"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/adapters"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/comms"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/queues"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/settings"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/stores"
)

func LoadAWSConfig(ctx context.Context, mySettings *settings.Settings) (aws.Config, error) {
	ctx, cancel := context.WithTimeout(ctx, mySettings.ContextTimeout)
	defer cancel()
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(mySettings.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(mySettings.AccessKey, mySettings.SecretKey, "")),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("error on loading default config: %v", err)
	}
	return cfg, nil
}

// InitializeSender builds every collaborator the send pipeline needs from settings.
func InitializeSender(ctx context.Context, mySettings *settings.Settings, logger core.Logger) (*adapters.Sender, error) {
	cfg, err := LoadAWSConfig(ctx, mySettings)
	if err != nil {
		return nil, err
	}

	logger.Info("initializing s3 helper for bucket=%s", mySettings.BucketName)
	s3Helper, err := stores.InitializeS3Helper(cfg, stores.S3HelperOptions{
		BucketName:    mySettings.BucketName,
		PathPrefix:    mySettings.ImagePathPrefix,
		PublicURLBase: mySettings.PublicURLBase,
		CustomersKey:  mySettings.CustomersObjectKey,
		Columns:       customerColumns(mySettings),
		Timeout:       mySettings.ContextTimeout,
		EndpointURL:   mySettings.LocalEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("error on initializing s3 helper: %v", err)
	}

	logger.Info("initializing customer source=%s", mySettings.CustomersSource)
	customerSource, err := InitializeCustomerSource(cfg, mySettings, s3Helper)
	if err != nil {
		return nil, err
	}

	logger.Info("initializing messaging provider=%s", mySettings.MessagingProvider)
	messenger, err := InitializeMessenger(cfg, mySettings)
	if err != nil {
		return nil, err
	}

	return &adapters.Sender{ImageStore: s3Helper, CustomerSource: customerSource, Messenger: messenger, Logger: logger}, nil
}

func InitializeCustomerSource(cfg aws.Config, mySettings *settings.Settings, s3Helper *stores.S3Helper) (core.CustomerSource, error) {
	switch mySettings.CustomersSource {
	case settings.SourceFile:
		return &stores.CSVFileSource{Path: mySettings.CustomersPath, Columns: customerColumns(mySettings)}, nil
	case settings.SourceS3:
		return s3Helper, nil
	case settings.SourceDynamoDB:
		table, err := stores.InitializeCustomersTable(cfg, mySettings.CustomersTableName, customerColumns(mySettings), mySettings.ContextTimeout, mySettings.LocalEndpoint)
		if err != nil {
			return nil, fmt.Errorf("error on initializing customers table: %v", err)
		}
		return table, nil
	default:
		return nil, fmt.Errorf("unsupported CUSTOMERS_SOURCE='%s'", mySettings.CustomersSource)
	}
}

func InitializeMessenger(cfg aws.Config, mySettings *settings.Settings) (core.Messenger, error) {
	switch mySettings.MessagingProvider {
	case settings.ProviderTwilio:
		twilioHelper, err := comms.InitializeTwilioHelper(mySettings.TwilioAccountSID, mySettings.TwilioAuthToken, mySettings.FromNumber)
		if err != nil {
			return nil, fmt.Errorf("error on initializing twilio helper: %v", err)
		}
		return twilioHelper, nil
	case settings.ProviderSNS:
		snsHelper, err := comms.InitializeSNSHelper(cfg, mySettings.ContextTimeout, mySettings.LocalEndpoint)
		if err != nil {
			return nil, fmt.Errorf("error on initializing sns helper: %v", err)
		}
		return snsHelper, nil
	case settings.ProviderSinch:
		sinchHelper, err := comms.InitializeSinchHelper(mySettings.SinchAPIToken, mySettings.SinchProjectID, mySettings.FromNumber, mySettings.ContextTimeout)
		if err != nil {
			return nil, fmt.Errorf("error on initializing sinch helper: %v", err)
		}
		return sinchHelper, nil
	default:
		return nil, fmt.Errorf("unsupported MESSAGING_PROVIDER='%s'", mySettings.MessagingProvider)
	}
}

func InitializeSendRequestQueue(ctx context.Context, mySettings *settings.Settings) (*queues.SQSHelper, error) {
	cfg, err := LoadAWSConfig(ctx, mySettings)
	if err != nil {
		return nil, err
	}
	sqsHelper, err := queues.InitializeSQSHelper(ctx, cfg, mySettings.SendRequestsSQSARN, mySettings.ContextTimeout, mySettings.LocalEndpoint)
	if err != nil {
		return nil, fmt.Errorf("error on initializing sqs helper: %v", err)
	}
	return sqsHelper, nil
}

func customerColumns(mySettings *settings.Settings) stores.CustomerColumns {
	return stores.CustomerColumns{Phone: mySettings.CustomersPhoneColumn, Unsubscribed: mySettings.CustomersUnsubscribedColumn}
}
