package comms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const SinchDefaultBaseURL = "https://us.sms.api.sinch.com"

type SinchHelper struct {
	apiToken   string
	client     *http.Client
	batchesURL string
	fromNumber string
	timeout    time.Duration
}

type sinchBatch struct {
	From string          `json:"from"`
	To   []string        `json:"to"`
	Body json.RawMessage `json:"body"`
	Type string          `json:"type"`
}

type sinchMediaBody struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

type sinchBatchResponse struct {
	ID string `json:"id"`
}

func InitializeSinchHelper(apiToken, projectID, fromNumber string, contextTimeout time.Duration) (*SinchHelper, error) {
	if len(apiToken) == 0 || len(projectID) == 0 || len(fromNumber) == 0 {
		return nil, fmt.Errorf("apiToken, projectID, or fromNumber is not specified")
	}
	return NewSinchHelper(&http.Client{}, SinchDefaultBaseURL, apiToken, projectID, fromNumber, contextTimeout), nil
}

func NewSinchHelper(client *http.Client, baseURL, apiToken, projectID, fromNumber string, contextTimeout time.Duration) *SinchHelper {
	return &SinchHelper{
		apiToken:   apiToken,
		client:     client,
		batchesURL: fmt.Sprintf("%s/xms/v1/%s/batches", strings.TrimRight(baseURL, "/"), projectID),
		fromNumber: fromNumber,
		timeout:    contextTimeout,
	}
}

// SendMessage posts a single recipient batch and returns the batch id. A media URL
// switches the batch to an MMS.
func (sh *SinchHelper) SendMessage(ctx context.Context, toPhoneNumber, messageContent string, mediaURL *string) (string, error) {
	batch, err := sh.newBatch(toPhoneNumber, messageContent, mediaURL)
	if err != nil {
		return "", err
	}
	payloadBytes, err := json.Marshal(batch)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, sh.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sh.batchesURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	sh.setupHeaders(req)

	resp, err := sh.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var responseBody bytes.Buffer
		if _, err := responseBody.ReadFrom(resp.Body); err != nil {
			return "", fmt.Errorf("received non-2xx response status: %s, and failed to read response body: %w", resp.Status, err)
		}
		return "", fmt.Errorf("received non-2xx response status: %s, response body: %s", resp.Status, responseBody.String())
	}

	var batchResponse sinchBatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&batchResponse); err != nil {
		return "", fmt.Errorf("failed to decode batch response: %w", err)
	}
	return batchResponse.ID, nil
}

func (sh *SinchHelper) newBatch(toPhoneNumber, messageContent string, mediaURL *string) (*sinchBatch, error) {
	batch := &sinchBatch{From: sh.fromNumber, To: []string{toPhoneNumber}, Type: "mt_text"}
	var body any = messageContent
	if mediaURL != nil {
		batch.Type = "mt_media"
		body = sinchMediaBody{URL: *mediaURL, Message: messageContent}
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal body: %w", err)
	}
	batch.Body = raw
	return batch, nil
}

func (sh *SinchHelper) setupHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+sh.apiToken)
	req.Header.Set("Content-Type", "application/json")
}
