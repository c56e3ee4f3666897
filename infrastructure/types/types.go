package types

import "github.com/rayafarhadi/text-marketing-app/core"

// SendPayload is the JSON body shared by every invocation mode. Image is base64.
type SendPayload struct {
	Message       string `json:"message"`
	Image         string `json:"image,omitempty"`
	ImageFilename string `json:"image_filename,omitempty"`
}

type SendResponse struct {
	Message string          `json:"message"`
	Details core.SendResult `json:"details"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
