package feedback

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrBlobNotFound is returned by a BlobStore that has nothing stored yet
var ErrBlobNotFound = errors.New("feedback blob not found")

// BlobStore persists the feedback document as one opaque value
type BlobStore interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Name() string
}

// FileBlobStore keeps the blob in a JSON file
type FileBlobStore struct {
	filePath string
}

// NewFileBlobStore creates a file-backed store
func NewFileBlobStore(filePath string) *FileBlobStore {
	return &FileBlobStore{filePath: filePath}
}

// Name returns the store name
func (s *FileBlobStore) Name() string {
	return "file:" + s.filePath
}

// Read reads the blob from disk
func (s *FileBlobStore) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read feedback file: %w", err)
	}
	return data, nil
}

// Write writes the blob to disk, creating the directory if needed
func (s *FileBlobStore) Write(ctx context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create feedback directory: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write feedback file: %w", err)
	}
	return nil
}

// MemoryBlobStore keeps the blob in process memory
type MemoryBlobStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryBlobStore creates an in-memory store, optionally seeded
func NewMemoryBlobStore(seed []byte) *MemoryBlobStore {
	return &MemoryBlobStore{data: seed}
}

// Name returns the store name
func (s *MemoryBlobStore) Name() string {
	return "memory"
}

// Read returns the stored blob
func (s *MemoryBlobStore) Read(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrBlobNotFound
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// Write replaces the stored blob
func (s *MemoryBlobStore) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}
