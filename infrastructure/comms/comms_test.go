package comms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

const (
	msg         = "Spring sale starts today"
	phoneNumber = "+14165550101"
	fromNumber  = "+15005550006"
	imageURL    = "https://flyers.s3.amazonaws.com/flyer.png"
	testTimeout = time.Second
)

type mockTwilio struct {
	params []*api.CreateMessageParams
	err    error
}

func (m *mockTwilio) CreateMessage(params *api.CreateMessageParams) (*api.ApiV2010Message, error) {
	m.params = append(m.params, params)
	if m.err != nil {
		return nil, m.err
	}
	sid := "SM123"
	return &api.ApiV2010Message{Sid: &sid}, nil
}

func TestTwilioHelper(t *testing.T) {
	ctx := context.Background()

	t.Run("text only", func(t *testing.T) {
		client := &mockTwilio{}
		helper := NewTwilioHelper(client, fromNumber)
		sid, err := helper.SendMessage(ctx, phoneNumber, msg, nil)
		require.NoError(t, err, "error on send message: %v", err)
		assert.Equal(t, "SM123", sid)
		require.Len(t, client.params, 1)
		assert.Equal(t, phoneNumber, *client.params[0].To)
		assert.Equal(t, fromNumber, *client.params[0].From)
		assert.Equal(t, msg, *client.params[0].Body)
		assert.Nil(t, client.params[0].MediaUrl)
	})

	t.Run("with media", func(t *testing.T) {
		client := &mockTwilio{}
		helper := NewTwilioHelper(client, fromNumber)
		url := imageURL
		_, err := helper.SendMessage(ctx, phoneNumber, msg, &url)
		require.NoError(t, err, "error on send message: %v", err)
		require.NotNil(t, client.params[0].MediaUrl)
		assert.Equal(t, []string{imageURL}, *client.params[0].MediaUrl)
	})

	t.Run("provider error", func(t *testing.T) {
		helper := NewTwilioHelper(&mockTwilio{err: errors.New("21211 invalid To")}, fromNumber)
		_, err := helper.SendMessage(ctx, phoneNumber, msg, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "21211")
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := InitializeTwilioHelper("", "token", fromNumber)
		assert.Error(t, err)
	})
}

type mockSNS struct {
	inputs []*sns.PublishInput
}

func (m *mockSNS) Publish(ctx context.Context, input *sns.PublishInput, opts ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.inputs = append(m.inputs, input)
	return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
}

func TestSNSHelper(t *testing.T) {
	ctx := context.Background()
	client := &mockSNS{}
	helper := NewSNSHelper(client, testTimeout)

	id, err := helper.SendMessage(ctx, phoneNumber, msg, nil)
	require.NoError(t, err, "error on send message: %v", err)
	assert.Equal(t, "sns-1", id)
	assert.Equal(t, msg, *client.inputs[0].Message)
	assert.Equal(t, phoneNumber, *client.inputs[0].PhoneNumber)

	url := imageURL
	_, err = helper.SendMessage(ctx, phoneNumber, msg, &url)
	require.NoError(t, err, "error on send message: %v", err)
	assert.Equal(t, msg+"\n"+imageURL, *client.inputs[1].Message)
}

func TestSinchHelper(t *testing.T) {
	ctx := context.Background()

	t.Run("text and media batches", func(t *testing.T) {
		var batches []map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/xms/v1/project-1/batches", r.URL.Path)
			assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
			var batch map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
			batches = append(batches, batch)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"batch-1"}`))
		}))
		defer server.Close()

		helper := NewSinchHelper(server.Client(), server.URL, "token-1", "project-1", fromNumber, testTimeout)
		id, err := helper.SendMessage(ctx, phoneNumber, msg, nil)
		require.NoError(t, err, "error on send message: %v", err)
		assert.Equal(t, "batch-1", id)

		url := imageURL
		_, err = helper.SendMessage(ctx, phoneNumber, msg, &url)
		require.NoError(t, err, "error on send message: %v", err)

		require.Len(t, batches, 2)
		assert.Equal(t, "mt_text", batches[0]["type"])
		assert.Equal(t, msg, batches[0]["body"])
		assert.Equal(t, []any{phoneNumber}, batches[0]["to"])
		assert.Equal(t, "mt_media", batches[1]["type"])
		assert.Equal(t, map[string]any{"url": imageURL, "message": msg}, batches[1]["body"])
	})

	t.Run("non-2xx response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":"syntax_invalid_parameter_format"}`))
		}))
		defer server.Close()

		helper := NewSinchHelper(server.Client(), server.URL, "token-1", "project-1", fromNumber, testTimeout)
		_, err := helper.SendMessage(ctx, phoneNumber, msg, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "syntax_invalid_parameter_format")
	})
}
