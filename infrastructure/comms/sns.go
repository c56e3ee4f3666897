package comms

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type SnsApiClient interface {
	Publish(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSHelper sends direct SMS through SNS. SNS cannot attach media, so a media
// URL is appended to the body on its own line.
type SNSHelper struct {
	client  SnsApiClient
	timeout time.Duration
}

func InitializeSNSHelper(cfg aws.Config, timeout time.Duration, endpointURL *string) (*SNSHelper, error) {
	client := sns.NewFromConfig(cfg, func(o *sns.Options) {
		if endpointURL != nil {
			o.BaseEndpoint = aws.String(*endpointURL)
		}
	})
	return NewSNSHelper(client, timeout), nil
}

func NewSNSHelper(client SnsApiClient, timeout time.Duration) *SNSHelper {
	return &SNSHelper{client: client, timeout: timeout}
}

func (sh *SNSHelper) SendMessage(ctx context.Context, toPhoneNumber, body string, mediaURL *string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, sh.timeout)
	defer cancel()
	message := body
	if mediaURL != nil {
		message = body + "\n" + *mediaURL
	}
	output, err := sh.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(toPhoneNumber),
		Message:     aws.String(message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Promotional"),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("error on sns Publish: %v", err)
	}
	return aws.ToString(output.MessageId), nil
}
