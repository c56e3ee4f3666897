package queues

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	smithy "github.com/aws/smithy-go"
)

type SqsApiClient interface {
	sqs.ListQueuesAPIClient
	GetQueueAttributes(context.Context, *sqs.GetQueueAttributesInput, ...func(*sqs.Options)) (*sqs.GetQueueAttributesOutput, error)
	SendMessage(context.Context, *sqs.SendMessageInput, ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	DeleteMessage(context.Context, *sqs.DeleteMessageInput, ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// SQSHelper is bound to the single queue that carries send requests.
type SQSHelper struct {
	client   SqsApiClient
	queueURL string
	timeout  time.Duration
}

func InitializeSQSHelper(ctx context.Context, cfg aws.Config, queueArn string, timeout time.Duration, endpoint *string) (*SQSHelper, error) {
	if strings.TrimSpace(queueArn) == "" {
		return nil, fmt.Errorf("queueArn is not specified")
	}
	client := sqs.NewFromConfig(cfg, func(o *sqs.Options) {
		if endpoint != nil {
			o.BaseEndpoint = aws.String(*endpoint)
		}
	})
	return NewSQSHelper(ctx, client, queueArn, timeout)
}

func NewSQSHelper(ctx context.Context, client SqsApiClient, queueArn string, timeout time.Duration) (*SQSHelper, error) {
	queueURL, err := getURLFromARN(ctx, client, strings.TrimSpace(queueArn), timeout)
	if err != nil {
		return nil, fmt.Errorf("error getting QueueURL for QueueARN='%s': %v", queueArn, err)
	}
	return &SQSHelper{client: client, queueURL: queueURL, timeout: timeout}, nil
}

func getURLFromARN(ctx context.Context, client SqsApiClient, queueArn string, timeout time.Duration) (string, error) {
	paginator := sqs.NewListQueuesPaginator(client, &sqs.ListQueuesInput{})
	for paginator.HasMorePages() {
		pageCtx, cancel := context.WithTimeout(ctx, timeout)
		page, err := paginator.NextPage(pageCtx)
		cancel()
		if err != nil {
			return "", fmt.Errorf("error on fetching NextPage: %v", err)
		}
		for _, queueURL := range page.QueueUrls {
			arn, err := getQueueArn(ctx, client, queueURL, timeout)
			if err != nil {
				var apiErr smithy.APIError
				if errors.As(err, &apiErr) && apiErr.ErrorCode() == "AccessDenied" {
					continue // 403 permission error, try next queue
				}
				return "", err
			}
			if arn == queueArn {
				return queueURL, nil
			}
		}
	}
	return "", fmt.Errorf("queue with queue-arn='%s' not found", queueArn)
}

func getQueueArn(ctx context.Context, client SqsApiClient, queueURL string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	attribOutput, err := client.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
		QueueUrl:       aws.String(queueURL),
		AttributeNames: []types.QueueAttributeName{types.QueueAttributeNameQueueArn},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(attribOutput.Attributes[string(types.QueueAttributeNameQueueArn)]), nil
}

func (sqsHelper *SQSHelper) SendBody(ctx context.Context, body string) error {
	ctx, cancel := context.WithTimeout(ctx, sqsHelper.timeout)
	defer cancel()
	_, err := sqsHelper.client.SendMessage(ctx, &sqs.SendMessageInput{QueueUrl: &sqsHelper.queueURL, MessageBody: &body})
	if err != nil {
		return fmt.Errorf("sqs SendMessage error: %v", err)
	}
	return nil
}

func (sqsHelper *SQSHelper) DeleteMessage(ctx context.Context, receiptHandle string) error {
	ctx, cancel := context.WithTimeout(ctx, sqsHelper.timeout)
	defer cancel()
	deleteMessageInput := &sqs.DeleteMessageInput{QueueUrl: &sqsHelper.queueURL, ReceiptHandle: &receiptHandle}
	if _, err := sqsHelper.client.DeleteMessage(ctx, deleteMessageInput); err != nil {
		return fmt.Errorf("error on DeleteMessage: %v", err)
	}
	return nil
}
