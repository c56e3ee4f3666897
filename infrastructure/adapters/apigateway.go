package adapters

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rayafarhadi/text-marketing-app/helpers"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/types"
)

func CORSHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Allow-Methods": "OPTIONS, POST",
	}
}

// HandleAPIGateway answers pre-flight requests without touching any collaborator.
func (sender *Sender) HandleAPIGateway(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Headers: CORSHeaders()}, nil
	}

	body := []byte(request.Body)
	if request.IsBase64Encoded {
		decoded, err := helpers.Base64Decode(request.Body)
		if err != nil {
			sender.Logger.Error("error decoding base64 request body: %v", err)
			return sender.proxyResponse(http.StatusBadRequest, types.ErrorResponse{Error: "invalid request body"}), nil
		}
		body = decoded
	}

	status, response, err := sender.Send(ctx, body)
	if err != nil {
		sender.Logger.Error("error on send-sms status=%d: %v", status, err)
	}
	return sender.proxyResponse(status, response), nil
}

func (sender *Sender) proxyResponse(status int, response any) events.APIGatewayProxyResponse {
	headers := CORSHeaders()
	headers["Content-Type"] = "application/json"
	responseJSON, err := json.Marshal(response)
	if err != nil {
		sender.Logger.Error("error encoding response status=%d: %v", status, err)
		status = http.StatusInternalServerError
		responseJSON, _ = json.Marshal(types.ErrorResponse{Error: "error encoding response"})
	}
	return events.APIGatewayProxyResponse{StatusCode: status, Headers: headers, Body: string(responseJSON)}
}
