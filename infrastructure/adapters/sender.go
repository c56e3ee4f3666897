package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rayafarhadi/text-marketing-app/application"
	"github.com/rayafarhadi/text-marketing-app/core"
	"github.com/rayafarhadi/text-marketing-app/helpers"
	"github.com/rayafarhadi/text-marketing-app/infrastructure/types"
)

// Sender holds the collaborators of one process. Every invocation mode funnels
// into Send.
type Sender struct {
	ImageStore     core.ImageStore
	CustomerSource core.CustomerSource
	Messenger      core.Messenger
	Logger         core.Logger
}

// DecodeSendPayload turns a JSON body into a send request. Malformed JSON and
// malformed base64 both wrap core.ErrInvalidPayload.
func DecodeSendPayload(body []byte) (core.SendRequest, error) {
	var payload types.SendPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return core.SendRequest{}, fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
	}
	request := core.SendRequest{MessageText: payload.Message, ImageFilename: payload.ImageFilename}
	if payload.Image != "" {
		imageData, err := helpers.Base64Decode(payload.Image)
		if err != nil {
			return core.SendRequest{}, fmt.Errorf("%w: image is not valid base64: %v", core.ErrInvalidPayload, err)
		}
		request.ImageData = imageData
	}
	return request, nil
}

// Send runs one invocation and returns the status code and the response envelope.
func (sender *Sender) Send(ctx context.Context, body []byte) (int, any, error) {
	request, err := DecodeSendPayload(body)
	if err != nil {
		return errorResponse(err)
	}
	result, err := application.SendBulk(ctx, request, sender.ImageStore, sender.CustomerSource, sender.Messenger, sender.Logger)
	if err != nil {
		return errorResponse(err)
	}
	return http.StatusOK, types.SendResponse{Message: core.SendSuccessMessage, Details: result}, nil
}

func errorResponse(err error) (int, any, error) {
	switch {
	case errors.Is(err, core.ErrMessageRequired):
		return http.StatusBadRequest, types.ErrorResponse{Error: core.MessageRequiredMessage}, err
	case isClientError(err):
		return http.StatusBadRequest, types.ErrorResponse{Error: err.Error()}, err
	default:
		return http.StatusInternalServerError, types.ErrorResponse{Error: err.Error()}, err
	}
}

func isClientError(err error) bool {
	return errors.Is(err, core.ErrMessageRequired) || errors.Is(err, core.ErrInvalidPayload) || errors.Is(err, core.ErrInvalidImageName)
}
