package settings

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const settingsFileName = "settings"
const settingsPathEnv = "SETTINGS_PATH"
const defaultContextTimeout = 31 * time.Second
const defaultReadHeaderTimeout = 10 * time.Second

const (
	ProviderTwilio = "twilio"
	ProviderSNS    = "sns"
	ProviderSinch  = "sinch"

	SourceFile     = "file"
	SourceS3       = "s3"
	SourceDynamoDB = "dynamodb"
)

type Settings struct {
	AccessKey                   string        `mapstructure:"ACCESS_KEY"`
	SecretKey                   string        `mapstructure:"SECRET_KEY"`
	Region                      string        `mapstructure:"AWS_REGION"`
	LocalEndpoint               *string       `mapstructure:"LOCAL_ENDPOINT"`
	BucketName                  string        `mapstructure:"BUCKET_NAME"`
	ImagePathPrefix             string        `mapstructure:"IMAGE_PATH_PREFIX"`
	PublicURLBase               string        `mapstructure:"PUBLIC_URL_BASE"`
	MessagingProvider           string        `mapstructure:"MESSAGING_PROVIDER"`
	TwilioAccountSID            string        `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken             string        `mapstructure:"TWILIO_AUTH_TOKEN"`
	SinchAPIToken               string        `mapstructure:"SINCH_API_TOKEN"`
	SinchProjectID              string        `mapstructure:"SINCH_PROJECT_ID"`
	FromNumber                  string        `mapstructure:"FROM_NUMBER"`
	CustomersSource             string        `mapstructure:"CUSTOMERS_SOURCE"`
	CustomersPath               string        `mapstructure:"CUSTOMERS_PATH"`
	CustomersObjectKey          string        `mapstructure:"CUSTOMERS_OBJECT_KEY"`
	CustomersTableName          string        `mapstructure:"CUSTOMERS_TABLE_NAME"`
	CustomersPhoneColumn        string        `mapstructure:"CUSTOMERS_PHONE_COLUMN"`
	CustomersUnsubscribedColumn string        `mapstructure:"CUSTOMERS_UNSUBSCRIBED_COLUMN"`
	SendRequestsSQSARN          string        `mapstructure:"SEND_REQUESTS_SQS_ARN"`
	ContextTimeout              time.Duration `mapstructure:"CONTEXT_TIMEOUT"`
	DoLogToStdout               bool          `mapstructure:"LOG_TO_STDOUT"`
	LogLevel                    string        `mapstructure:"LOG_LEVEL"`
	HTTPAddr                    string        `mapstructure:"HTTP_ADDR"`
	HTTPReadHeaderTimeout       time.Duration `mapstructure:"HTTP_READ_HEADER_TIMEOUT"`
}

var defaults = map[string]any{
	"AWS_REGION":                    "us-east-1",
	"MESSAGING_PROVIDER":            ProviderTwilio,
	"CUSTOMERS_SOURCE":              SourceFile,
	"CUSTOMERS_PATH":                "customers.csv",
	"CUSTOMERS_PHONE_COLUMN":        "phone",
	"CUSTOMERS_UNSUBSCRIBED_COLUMN": "unsubscribed",
	"CONTEXT_TIMEOUT":               defaultContextTimeout,
	"LOG_TO_STDOUT":                 true,
	"LOG_LEVEL":                     "info",
	"HTTP_ADDR":                     ":8080",
	"HTTP_READ_HEADER_TIMEOUT":      defaultReadHeaderTimeout,
}

// keys without a default still have to be registered for AutomaticEnv to reach Unmarshal
var envOnlyKeys = []string{
	"ACCESS_KEY", "SECRET_KEY", "LOCAL_ENDPOINT", "BUCKET_NAME", "IMAGE_PATH_PREFIX", "PUBLIC_URL_BASE",
	"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "SINCH_API_TOKEN", "SINCH_PROJECT_ID", "FROM_NUMBER",
	"CUSTOMERS_OBJECT_KEY", "CUSTOMERS_TABLE_NAME", "SEND_REQUESTS_SQS_ARN",
}

// GetSettings reads settings.env when one can be found and lets the environment override it.
// The result is validated, a missing required key is a configuration error.
func GetSettings() (*Settings, error) {
	v := viper.New()
	v.SetConfigName(settingsFileName)
	v.SetConfigType("env")
	configPath, err := getSettingsConfigPath()
	if err != nil {
		return nil, fmt.Errorf("error on getSettingsConfigPath: %v", err)
	}
	if configPath != "" {
		v.AddConfigPath(configPath)
	}

	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for _, key := range envOnlyKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding env key=%s: %v", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading in config: %v", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("error unmarshalling settings: %v", err)
	}
	if settings.LocalEndpoint != nil && *settings.LocalEndpoint == "" {
		settings.LocalEndpoint = nil
	}
	settings.MessagingProvider = strings.ToLower(strings.TrimSpace(settings.MessagingProvider))
	settings.CustomersSource = strings.ToLower(strings.TrimSpace(settings.CustomersSource))
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate reports every missing key at once.
func (settings *Settings) Validate() error {
	var missing []string
	require := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	require("ACCESS_KEY", settings.AccessKey)
	require("SECRET_KEY", settings.SecretKey)
	require("BUCKET_NAME", settings.BucketName)

	switch settings.MessagingProvider {
	case ProviderTwilio:
		require("TWILIO_ACCOUNT_SID", settings.TwilioAccountSID)
		require("TWILIO_AUTH_TOKEN", settings.TwilioAuthToken)
		require("FROM_NUMBER", settings.FromNumber)
	case ProviderSinch:
		require("SINCH_API_TOKEN", settings.SinchAPIToken)
		require("SINCH_PROJECT_ID", settings.SinchProjectID)
		require("FROM_NUMBER", settings.FromNumber)
	case ProviderSNS:
	default:
		return fmt.Errorf("unsupported MESSAGING_PROVIDER='%s'", settings.MessagingProvider)
	}

	switch settings.CustomersSource {
	case SourceFile:
		require("CUSTOMERS_PATH", settings.CustomersPath)
	case SourceS3:
		require("CUSTOMERS_OBJECT_KEY", settings.CustomersObjectKey)
	case SourceDynamoDB:
		require("CUSTOMERS_TABLE_NAME", settings.CustomersTableName)
	default:
		return fmt.Errorf("unsupported CUSTOMERS_SOURCE='%s'", settings.CustomersSource)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getSettingsConfigPath() (string, error) {
	if path := os.Getenv(settingsPathEnv); path != "" {
		return path, nil
	}
	initialCwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("error on os.Getwd: %v", err)
	}
	cwd := initialCwd
	for {
		for _, marker := range []string{settingsFileName + ".env", "go.mod"} {
			if _, err := os.Stat(filepath.Join(cwd, marker)); err == nil {
				return cwd, nil
			}
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			// deployed binaries run without a settings file, the environment is enough
			return "", nil
		}
		cwd = parent
	}
}
