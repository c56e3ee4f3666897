package bootstrap

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/comms"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/settings"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/stores"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() *settings.Settings {
	return &settings.Settings{
		Region:             "us-east-1",
		BucketName:         "flyers",
		MessagingProvider:  settings.ProviderTwilio,
		TwilioAccountSID:   "AC123",
		TwilioAuthToken:    "token",
		SinchAPIToken:      "sinch-token",
		SinchProjectID:     "project-1",
		FromNumber:         "+15005550006",
		CustomersSource:    settings.SourceFile,
		CustomersPath:      "customers.csv",
		CustomersTableName: "customers",
		ContextTimeout:     time.Second,
	}
}

type messengerTest struct {
	provider string
	expected any
}

var messengerTests = []messengerTest{
	{provider: settings.ProviderTwilio, expected: &comms.TwilioHelper{}},
	{provider: settings.ProviderSNS, expected: &comms.SNSHelper{}},
	{provider: settings.ProviderSinch, expected: &comms.SinchHelper{}},
}

func TestInitializeMessenger(t *testing.T) {
	for _, test := range messengerTests {
		t.Run(test.provider, func(t *testing.T) {
			mySettings := testSettings()
			mySettings.MessagingProvider = test.provider
			messenger, err := InitializeMessenger(aws.Config{Region: "us-east-1"}, mySettings)
			require.NoError(t, err, "error on InitializeMessenger: %v", err)
			assert.IsType(t, test.expected, messenger)
		})
	}

	t.Run("unknown provider", func(t *testing.T) {
		mySettings := testSettings()
		mySettings.MessagingProvider = "pigeon"
		_, err := InitializeMessenger(aws.Config{}, mySettings)
		assert.Error(t, err)
	})
}

func TestInitializeCustomerSource(t *testing.T) {
	cfg := aws.Config{Region: "us-east-1"}
	s3Helper := stores.NewS3Helper(nil, stores.S3HelperOptions{BucketName: "flyers"})

	t.Run("file", func(t *testing.T) {
		source, err := InitializeCustomerSource(cfg, testSettings(), s3Helper)
		require.NoError(t, err)
		require.IsType(t, &stores.CSVFileSource{}, source)
		assert.Equal(t, "customers.csv", source.(*stores.CSVFileSource).Path)
	})

	t.Run("s3", func(t *testing.T) {
		mySettings := testSettings()
		mySettings.CustomersSource = settings.SourceS3
		source, err := InitializeCustomerSource(cfg, mySettings, s3Helper)
		require.NoError(t, err)
		assert.Same(t, s3Helper, source)
	})

	t.Run("dynamodb", func(t *testing.T) {
		mySettings := testSettings()
		mySettings.CustomersSource = settings.SourceDynamoDB
		source, err := InitializeCustomerSource(cfg, mySettings, s3Helper)
		require.NoError(t, err)
		assert.IsType(t, &stores.CustomersTable{}, source)
	})
}
