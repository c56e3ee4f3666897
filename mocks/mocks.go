package mocks

import (
	"context"
	"io"

	"github.com/rayafarhadi/text-marketing-app/core"
	"github.com/stretchr/testify/mock"
)

type Messenger struct {
	mock.Mock
}

func (m *Messenger) SendMessage(ctx context.Context, toPhoneNumber, body string, mediaURL *string) (string, error) {
	args := m.Called(ctx, toPhoneNumber, body, mediaURL)
	return args.String(0), args.Error(1)
}

type ImageStore struct {
	mock.Mock
}

func (m *ImageStore) PutImage(ctx context.Context, key string, body io.Reader, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

func (m *ImageStore) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

type CustomerSource struct {
	mock.Mock
}

func (m *CustomerSource) OpenCustomers(ctx context.Context) (core.CustomerReader, error) {
	args := m.Called(ctx)
	reader, _ := args.Get(0).(core.CustomerReader)
	return reader, args.Error(1)
}

type SendRequestQueue struct {
	mock.Mock
}

func (m *SendRequestQueue) SendBody(ctx context.Context, body string) error {
	args := m.Called(ctx, body)
	return args.Error(0)
}

func (m *SendRequestQueue) DeleteMessage(ctx context.Context, receiptHandle string) error {
	args := m.Called(ctx, receiptHandle)
	return args.Error(0)
}

// CustomerReader replays a fixed list of records, optionally failing after them.
type CustomerReader struct {
	Records []core.CustomerRecord
	Err     error
	Reads   int
	Closed  bool
}

func NewCustomerReader(records ...core.CustomerRecord) *CustomerReader {
	return &CustomerReader{Records: records}
}

func (r *CustomerReader) Read() (core.CustomerRecord, error) {
	if r.Reads >= len(r.Records) {
		if r.Err != nil {
			return core.CustomerRecord{}, r.Err
		}
		return core.CustomerRecord{}, io.EOF
	}
	record := r.Records[r.Reads]
	r.Reads++
	return record, nil
}

func (r *CustomerReader) Close() error {
	r.Closed = true
	return nil
}
