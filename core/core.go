package core

import (
	"context"
	"io"
	"strings"
)

type CustomerRecord struct {
	Phone        string
	Unsubscribed bool
}

type SendRequest struct {
	MessageText   string
	ImageData     []byte
	ImageFilename string
}

// HasImage reports whether the request carries both image bytes and a name to store them under.
func (request SendRequest) HasImage() bool {
	return len(request.ImageData) > 0 && strings.TrimSpace(request.ImageFilename) != ""
}

type SendResult struct {
	SentCount     int      `json:"sent_count"`
	FailedNumbers []string `json:"failed_numbers"`
}

type QueueMessage struct {
	Body   string
	ID     string
	Handle string
}

type Logger interface {
	Info(string, ...any)
	Warn(string, ...any)
	Debug(string, ...any)
	Error(string, ...any)
	Fatal(string, ...any)
}

// CustomerReader is a single-pass sequence of customer records. Read returns
// io.EOF once the source is exhausted.
type CustomerReader interface {
	Read() (CustomerRecord, error)
	Close() error
}

type CustomerSource interface {
	OpenCustomers(context.Context) (CustomerReader, error)
}

type ImageStore interface {
	PutImage(ctx context.Context, key string, body io.Reader, contentType string) error
	PublicURL(key string) string
}

type Messenger interface {
	SendMessage(ctx context.Context, toPhoneNumber, body string, mediaURL *string) (string, error)
}

type SendRequestQueue interface {
	SendBody(context.Context, string) error
	DeleteMessage(context.Context, string) error
}
