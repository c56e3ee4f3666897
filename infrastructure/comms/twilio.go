package comms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

type TwilioMessagesApiClient interface {
	CreateMessage(params *api.CreateMessageParams) (*api.ApiV2010Message, error)
}

type TwilioHelper struct {
	client     TwilioMessagesApiClient
	fromNumber string
}

func InitializeTwilioHelper(accountSID, authToken, fromNumber string) (*TwilioHelper, error) {
	if len(accountSID) == 0 || len(authToken) == 0 || len(fromNumber) == 0 {
		return nil, fmt.Errorf("accountSID, authToken, or fromNumber is not specified")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSID,
		Password:   authToken,
		AccountSid: accountSID,
	})
	return NewTwilioHelper(client.Api, fromNumber), nil
}

func NewTwilioHelper(client TwilioMessagesApiClient, fromNumber string) *TwilioHelper {
	return &TwilioHelper{client: client, fromNumber: fromNumber}
}

// SendMessage creates one message and returns its SID. The twilio client has no
// context support, cancellation is only checked before the call.
func (th *TwilioHelper) SendMessage(ctx context.Context, toPhoneNumber, body string, mediaURL *string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	params := &api.CreateMessageParams{}
	params.SetTo(toPhoneNumber)
	params.SetFrom(th.fromNumber)
	params.SetBody(body)
	if mediaURL != nil {
		params.SetMediaUrl([]string{*mediaURL})
	}

	resp, err := th.client.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("failed to send message: %v", err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}
