package storage

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps uploads in process memory. It backs local development
// (UPLOAD_DRIVER=memory) and tests.
type MemoryStore struct {
	mu        sync.Mutex
	objects   map[string]Object
	publicURL string
	// Err, when set, is returned by every Upload.
	Err error
}

type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

func NewMemoryStore(publicURL string) *MemoryStore {
	return &MemoryStore{objects: map[string]Object{}, publicURL: publicURL}
}

func (m *MemoryStore) Upload(ctx context.Context, ownerID uuid.UUID, filename, contentType string, body io.Reader, size int64) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	key := ObjectKey(ownerID, filename)
	m.mu.Lock()
	m.objects[key] = Object{Key: key, ContentType: contentType, Data: buf.Bytes()}
	m.mu.Unlock()
	return PublicURL(m.publicURL, key), nil
}

// Objects returns a snapshot of the stored uploads.
func (m *MemoryStore) Objects() []Object {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Object, 0, len(m.objects))
	for _, o := range m.objects {
		out = append(out, o)
	}
	return out
}
