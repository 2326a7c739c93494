package interfaces

import "context"

// IObjectStorage stores binary blobs and returns their public URL.
type IObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
