package memory

import (
	"context"
	"jardin_services/internal/usecase/interfaces"
	"strings"
)

type object struct {
	data        []byte
	contentType string
}

// ObjectStorage keeps evidence blobs in the Store and serves them under
// baseURL.
type ObjectStorage struct {
	s       *Store
	baseURL string
}

var _ interfaces.IObjectStorage = (*ObjectStorage)(nil)

func (s *Store) Objects(baseURL string) *ObjectStorage {
	return &ObjectStorage{s: s, baseURL: strings.TrimRight(baseURL, "/")}
}

func (o *ObjectStorage) Put(_ context.Context, key string, data []byte, contentType string) (string, error) {
	buf := make([]byte, len(data))
	copy(buf, data)
	o.s.mu.Lock()
	o.s.objects[key] = object{data: buf, contentType: contentType}
	o.s.mu.Unlock()
	return o.baseURL + "/" + key, nil
}

// Get returns a stored blob and its content type.
func (o *ObjectStorage) Get(key string) ([]byte, string, bool) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	obj, ok := o.s.objects[key]
	return obj.data, obj.contentType, ok
}
