package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requiredEnv = map[string]string{
	"ACCESS_KEY":         "AKIATEST",
	"SECRET_KEY":         "secret",
	"BUCKET_NAME":        "flyers-bucket",
	"TWILIO_ACCOUNT_SID": "ACxxxxxxxx",
	"TWILIO_AUTH_TOKEN":  "token",
	"FROM_NUMBER":        "+13655550100",
}

func setEnv(t *testing.T, env map[string]string) {
	t.Setenv(settingsPathEnv, t.TempDir())
	for key, value := range env {
		t.Setenv(key, value)
	}
}

func TestGetSettings(t *testing.T) {
	t.Run("environment only with defaults", func(t *testing.T) {
		setEnv(t, requiredEnv)

		mySettings, err := GetSettings()
		require.NoError(t, err, "error on GetSettings: %v", err)
		assert.Equal(t, "flyers-bucket", mySettings.BucketName)
		assert.Equal(t, ProviderTwilio, mySettings.MessagingProvider)
		assert.Equal(t, SourceFile, mySettings.CustomersSource)
		assert.Equal(t, "customers.csv", mySettings.CustomersPath)
		assert.Equal(t, "phone", mySettings.CustomersPhoneColumn)
		assert.Equal(t, "unsubscribed", mySettings.CustomersUnsubscribedColumn)
		assert.Equal(t, defaultContextTimeout, mySettings.ContextTimeout)
		assert.True(t, mySettings.DoLogToStdout)
		assert.Nil(t, mySettings.LocalEndpoint)
		assert.Equal(t, defaultReadHeaderTimeout, mySettings.HTTPReadHeaderTimeout)
	})

	t.Run("settings file is read and env overrides it", func(t *testing.T) {
		dir := t.TempDir()
		contents := "ACCESS_KEY=file-key\nSECRET_KEY=file-secret\nBUCKET_NAME=file-bucket\n" +
			"MESSAGING_PROVIDER=SNS\nCONTEXT_TIMEOUT=5s\nLOCAL_ENDPOINT=http://localhost:4566\n"
		err := os.WriteFile(filepath.Join(dir, "settings.env"), []byte(contents), 0o600)
		require.NoError(t, err, "error writing settings.env: %v", err)
		t.Setenv(settingsPathEnv, dir)
		t.Setenv("BUCKET_NAME", "env-bucket")

		mySettings, err := GetSettings()
		require.NoError(t, err, "error on GetSettings: %v", err)
		assert.Equal(t, "file-key", mySettings.AccessKey)
		assert.Equal(t, "env-bucket", mySettings.BucketName)
		assert.Equal(t, ProviderSNS, mySettings.MessagingProvider)
		assert.Equal(t, 5*time.Second, mySettings.ContextTimeout)
		require.NotNil(t, mySettings.LocalEndpoint)
		assert.Equal(t, "http://localhost:4566", *mySettings.LocalEndpoint)
	})

	t.Run("read header timeout from env", func(t *testing.T) {
		setEnv(t, requiredEnv)
		t.Setenv("HTTP_READ_HEADER_TIMEOUT", "3s")

		mySettings, err := GetSettings()
		require.NoError(t, err, "error on GetSettings: %v", err)
		assert.Equal(t, 3*time.Second, mySettings.HTTPReadHeaderTimeout)
	})

	t.Run("missing required keys are all reported", func(t *testing.T) {
		setEnv(t, map[string]string{"BUCKET_NAME": "flyers-bucket"})

		_, err := GetSettings()
		require.Error(t, err, "expected a configuration error")
		assert.Contains(t, err.Error(), "ACCESS_KEY")
		assert.Contains(t, err.Error(), "SECRET_KEY")
		assert.Contains(t, err.Error(), "TWILIO_AUTH_TOKEN")
		assert.Contains(t, err.Error(), "FROM_NUMBER")
		assert.NotContains(t, err.Error(), "BUCKET_NAME")
	})

	t.Run("dynamodb source needs a table", func(t *testing.T) {
		setEnv(t, requiredEnv)
		t.Setenv("CUSTOMERS_SOURCE", "dynamodb")

		_, err := GetSettings()
		require.Error(t, err, "expected a configuration error")
		assert.Contains(t, err.Error(), "CUSTOMERS_TABLE_NAME")
	})

	t.Run("unknown provider", func(t *testing.T) {
		setEnv(t, requiredEnv)
		t.Setenv("MESSAGING_PROVIDER", "carrier-pigeon")

		_, err := GetSettings()
		require.Error(t, err, "expected a configuration error")
		assert.Contains(t, err.Error(), "carrier-pigeon")
	})
}
