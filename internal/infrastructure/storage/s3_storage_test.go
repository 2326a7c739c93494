package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakePutObject struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutObject) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestNewS3Storage_RequiresBucket(t *testing.T) {
	if _, err := NewS3Storage(&fakePutObject{}, S3Settings{}); !errors.Is(err, ErrMissingBucket) {
		t.Fatalf("expected ErrMissingBucket, got %v", err)
	}
}

func TestS3Storage_Put(t *testing.T) {
	fake := &fakePutObject{}
	st, err := NewS3Storage(fake, S3Settings{Bucket: "evidence", Region: "eu-west-3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := st.Put(context.Background(), "requests/client-1/a b.jpg", []byte("img"), "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://evidence.s3.eu-west-3.amazonaws.com/requests/client-1/a%20b.jpg" {
		t.Fatalf("unexpected url %q", url)
	}
	if aws.ToString(fake.input.Bucket) != "evidence" || aws.ToString(fake.input.Key) != "requests/client-1/a b.jpg" {
		t.Fatalf("unexpected input: %+v", fake.input)
	}
	if aws.ToString(fake.input.ContentType) != "image/jpeg" || string(fake.body) != "img" {
		t.Fatalf("unexpected body or content type")
	}
}

func TestS3Storage_PutError(t *testing.T) {
	st, _ := NewS3Storage(&fakePutObject{err: errors.New("denied")}, S3Settings{Bucket: "evidence"})
	if _, err := st.Put(context.Background(), "k.jpg", []byte("x"), ""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestS3Storage_PublicURL(t *testing.T) {
	cases := []struct {
		name     string
		settings S3Settings
		want     string
	}{
		{name: "public base", settings: S3Settings{Bucket: "b", PublicBaseURL: "https://cdn.example.com/"}, want: "https://cdn.example.com/adjustments/a-1/photo_0.png"},
		{name: "endpoint", settings: S3Settings{Bucket: "b", Endpoint: "http://localhost:4566"}, want: "http://localhost:4566/b/adjustments/a-1/photo_0.png"},
		{name: "virtual hosted", settings: S3Settings{Bucket: "b", Region: "us-east-1"}, want: "https://b.s3.us-east-1.amazonaws.com/adjustments/a-1/photo_0.png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := NewS3Storage(&fakePutObject{}, tc.settings)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := st.PublicURL("adjustments/a-1/photo_0.png"); got != tc.want {
				t.Fatalf("expected %q got %q", tc.want, got)
			}
		})
	}
}
