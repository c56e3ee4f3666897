package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rayafarhadi/text-marketing-app/core"
)

// SendBulk validates the request, publishes its image when one is attached and
// sends the message to every subscribed customer.
func SendBulk(ctx context.Context, request core.SendRequest, imageStore core.ImageStore, customerSource core.CustomerSource, messenger core.Messenger, logger core.Logger) (core.SendResult, error) {
	invocationID := uuid.NewString()
	if request.MessageText == "" {
		logger.Warn("invocation=%s rejected: %v", invocationID, core.ErrMessageRequired)
		return core.SendResult{}, core.ErrMessageRequired
	}
	logger.Info("invocation=%s received message of length=%d hasImage=%t", invocationID, len(request.MessageText), request.HasImage())

	var mediaURL *string
	if request.HasImage() {
		url, err := PublishImage(ctx, request.ImageData, request.ImageFilename, imageStore, logger)
		if err != nil {
			return core.SendResult{}, fmt.Errorf("error on PublishImage: %w", err)
		}
		mediaURL = &url
	} else if strings.TrimSpace(request.ImageFilename) != "" || len(request.ImageData) > 0 {
		logger.Warn("invocation=%s image ignored, both data and filename are needed", invocationID)
	}

	customers, err := customerSource.OpenCustomers(ctx)
	if err != nil {
		return core.SendResult{}, fmt.Errorf("error on OpenCustomers: %v", err)
	}
	defer func() {
		if err := customers.Close(); err != nil {
			logger.Warn("invocation=%s error closing customers: %v", invocationID, err)
		}
	}()

	result, err := Dispatch(ctx, FilterRecipients(customers), request.MessageText, mediaURL, messenger, logger)
	if err != nil {
		return core.SendResult{}, fmt.Errorf("error on Dispatch: %v", err)
	}
	logger.Info("invocation=%s completed sent=%d failed=%d", invocationID, result.SentCount, len(result.FailedNumbers))
	return result, nil
}
