package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	smithy "github.com/aws/smithy-go"
	"github.com/rayafarhadi/text-marketing-app/core"
	"github.com/rayafarhadi/text-marketing-app/helpers"
)

type S3ApiClient interface {
	PutObject(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Helper struct {
	client        S3ApiClient
	bucketName    string
	pathPrefix    string
	publicURLBase string
	timeout       time.Duration
	columns       CustomerColumns
	customersKey  string
}

type S3HelperOptions struct {
	BucketName    string
	PathPrefix    string
	PublicURLBase string
	CustomersKey  string
	Columns       CustomerColumns
	Timeout       time.Duration
	EndpointURL   *string
}

func InitializeS3Helper(cfg aws.Config, options S3HelperOptions) (*S3Helper, error) {
	if options.BucketName == "" {
		return nil, errors.New("bucketName is not specified")
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if options.EndpointURL != nil {
			o.BaseEndpoint = aws.String(*options.EndpointURL)
			if helpers.IsLocalhostURL(*options.EndpointURL) {
				o.UsePathStyle = true
			}
		}
	})
	return NewS3Helper(client, options), nil
}

func NewS3Helper(client S3ApiClient, options S3HelperOptions) *S3Helper {
	return &S3Helper{
		client:        client,
		bucketName:    options.BucketName,
		pathPrefix:    strings.Trim(options.PathPrefix, "/"),
		publicURLBase: strings.TrimRight(options.PublicURLBase, "/"),
		timeout:       options.Timeout,
		columns:       options.Columns,
		customersKey:  options.CustomersKey,
	}
}

func (s3Helper *S3Helper) PutImage(ctx context.Context, key string, body io.Reader, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, s3Helper.timeout)
	defer cancel()
	putObjectInput := &s3.PutObjectInput{
		Bucket: aws.String(s3Helper.bucketName),
		Key:    aws.String(s3Helper.getObjectKey(key)),
		Body:   body,
	}
	if contentType != "" {
		putObjectInput.ContentType = aws.String(contentType)
	}
	if _, err := s3Helper.client.PutObject(ctx, putObjectInput); err != nil {
		return fmt.Errorf("error on PutObject: %v", describeAPIError(err))
	}
	return nil
}

func (s3Helper *S3Helper) PublicURL(key string) string {
	objectKey := s3Helper.getObjectKey(key)
	if s3Helper.publicURLBase != "" {
		return s3Helper.publicURLBase + "/" + objectKey
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s3Helper.bucketName, objectKey)
}

// OpenCustomers downloads the customer list CSV stored in the bucket. The object is
// read in full under the call timeout, the send loop that follows is not bounded by it.
func (s3Helper *S3Helper) OpenCustomers(ctx context.Context) (core.CustomerReader, error) {
	if s3Helper.customersKey == "" {
		return nil, errors.New("customers object key is not specified")
	}
	contents, err := s3Helper.getObject(ctx, s3Helper.customersKey)
	if err != nil {
		return nil, err
	}
	reader, err := NewCSVCustomerReader(io.NopCloser(bytes.NewReader(contents)), s3Helper.columns)
	if err != nil {
		return nil, fmt.Errorf("error on NewCSVCustomerReader key='%s': %v", s3Helper.customersKey, err)
	}
	return reader, nil
}

func (s3Helper *S3Helper) getObject(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s3Helper.timeout)
	defer cancel()
	output, err := s3Helper.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s3Helper.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error on GetObject key='%s': %v", key, describeAPIError(err))
	}
	defer output.Body.Close()
	contents, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading object key='%s': %v", key, err)
	}
	return contents, nil
}

func (s3Helper *S3Helper) getObjectKey(key string) string {
	if s3Helper.pathPrefix == "" {
		return key
	}
	return s3Helper.pathPrefix + "/" + key
}

func describeAPIError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("code=%s message=%s: %w", apiErr.ErrorCode(), apiErr.ErrorMessage(), err)
	}
	return err
}
