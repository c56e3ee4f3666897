package application

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rayafarhadi/text-marketing-app/core"
)

// Dispatch sends the message to every recipient one at a time. A failed send is
// recorded and skipped, a failed read of the recipients aborts.
func Dispatch(ctx context.Context, recipients core.CustomerReader, messageText string, mediaURL *string, messenger core.Messenger, logger core.Logger) (core.SendResult, error) {
	result := core.SendResult{FailedNumbers: make([]string, 0)}
	for {
		recipient, err := recipients.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("error reading recipients after sent=%d: %w", result.SentCount, err)
		}

		messageID, err := messenger.SendMessage(ctx, recipient.Phone, messageText, mediaURL)
		if err != nil {
			logger.Warn("failed to send to phoneNumber=%s: %v", recipient.Phone, err)
			result.FailedNumbers = append(result.FailedNumbers, recipient.Phone)
			continue
		}
		logger.Debug("sent to phoneNumber=%s messageID=%s", recipient.Phone, messageID)
		result.SentCount++
	}
	return result, nil
}
