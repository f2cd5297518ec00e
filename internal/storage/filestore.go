package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload describes one incoming file attachment.
type Upload struct {
	Reader      io.Reader
	Filename    string
	Size        int64
	ContentType string
}

// FileInfo is the result of storing a file: the key it lives under and the
// public URL a document can link to.
type FileInfo struct {
	Key string
	URL string
}

// FileStore is the document-attachment facade over object storage. Stored
// files get a stable public URL that doubles as the document link; Remove
// accepts that URL back.
type FileStore interface {
	StoreOrReplace(ctx context.Context, up Upload, ownerName string) (FileInfo, error)
	Remove(ctx context.Context, link string) error
}

type objectFileStore struct {
	store   Storage
	baseURL string
}

// NewFileStore builds a FileStore over the given object storage. baseURL is
// the externally reachable prefix under which stored keys are served.
func NewFileStore(store Storage, baseURL string) FileStore {
	return &objectFileStore{store: store, baseURL: strings.TrimRight(baseURL, "/")}
}

// StoreOrReplace uploads the file under a fresh UUID key, keeping the original
// extension, and returns the public URL for it.
func (s *objectFileStore) StoreOrReplace(ctx context.Context, up Upload, ownerName string) (FileInfo, error) {
	if up.Reader == nil {
		return FileInfo{}, fmt.Errorf("upload reader is nil")
	}
	ext := filepath.Ext(up.Filename)
	key := filepath.ToSlash(filepath.Join("documents", uuid.New().String()+ext))

	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := s.store.Put(ctx, key, up.Reader, PutObjectOptions{
		Size:        up.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": up.Filename,
			"owner":             ownerName,
		},
	})
	if err != nil {
		return FileInfo{}, fmt.Errorf("upload to storage: %w", err)
	}

	return FileInfo{Key: info.Key, URL: s.baseURL + "/" + info.Key}, nil
}

// Remove deletes the object a previously returned URL points at.
func (s *objectFileStore) Remove(ctx context.Context, link string) error {
	key := strings.TrimPrefix(link, s.baseURL+"/")
	if key == link {
		return fmt.Errorf("link %q is not served from this store", link)
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete storage object: %w", err)
	}
	return nil
}
