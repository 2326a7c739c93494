package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"jardin_services/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrMissingBucket = errors.New("missing S3_BUCKET")

// PutObjectAPI is the part of the S3 client the storage needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage writes evidence blobs to a bucket and returns their public URL.
//
// URLs are built from S3_PUBLIC_BASE_URL when set (CDN or emulator), else
// from the endpoint in path style, else as virtual-hosted S3 URLs.
type S3Storage struct {
	client        PutObjectAPI
	bucket        string
	region        string
	endpoint      string
	publicBaseURL string
}

var _ interfaces.IObjectStorage = (*S3Storage)(nil)

// S3Settings selects the bucket and how public URLs are derived.
type S3Settings struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

// NewS3Client builds an S3 client, in path style when a custom endpoint is set.
func NewS3Client(awsCfg aws.Config, endpoint string) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
}

func NewS3Storage(client PutObjectAPI, settings S3Settings) (*S3Storage, error) {
	if strings.TrimSpace(settings.Bucket) == "" {
		return nil, ErrMissingBucket
	}
	return &S3Storage{
		client:        client,
		bucket:        settings.Bucket,
		region:        settings.Region,
		endpoint:      strings.TrimRight(settings.Endpoint, "/"),
		publicBaseURL: strings.TrimRight(settings.PublicBaseURL, "/"),
	}, nil
}

func (s *S3Storage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		log.Printf("[evidence][storage] put failed bucket=%s key=%s err=%v", s.bucket, key, err)
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

// PublicURL returns the address a stored key is served from.
func (s *S3Storage) PublicURL(key string) string {
	escaped := escapeKey(key)
	switch {
	case s.publicBaseURL != "":
		return s.publicBaseURL + "/" + escaped
	case s.endpoint != "":
		return s.endpoint + "/" + s.bucket + "/" + escaped
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
	}
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
