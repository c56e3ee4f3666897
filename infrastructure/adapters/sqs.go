package adapters

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rayafarhadi/text-marketing-app/core"
)

type SQSHandler struct {
	Sender *Sender
	Queue  core.SendRequestQueue
}

// HandleSQSEvent processes records in order. A record that can never succeed is
// deleted along with the successful ones; any other failure stops the batch so
// the remaining records are redelivered.
func (handler *SQSHandler) HandleSQSEvent(ctx context.Context, event events.SQSEvent) error {
	logger := handler.Sender.Logger
	for _, record := range event.Records {
		queueMessage := core.QueueMessage{Body: record.Body, ID: record.MessageId, Handle: record.ReceiptHandle}
		logger.Info("processing send request messageID=%s", queueMessage.ID)

		status, _, err := handler.Sender.Send(ctx, []byte(queueMessage.Body))
		if err != nil {
			if !isClientError(err) {
				return fmt.Errorf("error on send request messageID=%s: %v", queueMessage.ID, err)
			}
			logger.Warn("dropping send request messageID=%s status=%d: %v", queueMessage.ID, status, err)
		}

		if err := handler.Queue.DeleteMessage(ctx, queueMessage.Handle); err != nil {
			return fmt.Errorf("error on DeleteMessage messageID=%s: %v", queueMessage.ID, err)
		}
	}
	return nil
}
