package infra

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DocumentStore persists uploaded supporting documents under a base
// directory, keyed by a generated relative path. It stands in for a blob
// store — keys are opaque to everything above it.
type DocumentStore struct {
	basePath string
}

func NewDocumentStore(basePath string) (*DocumentStore, error) {
	if err := os.MkdirAll(filepath.Join(basePath, "docs"), 0o755); err != nil {
		return nil, fmt.Errorf("document store: %w", err)
	}
	return &DocumentStore{basePath: basePath}, nil
}

// Save writes the content to a new blob and returns its key.
// The original filename only contributes its extension.
func (s *DocumentStore) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	key := filepath.Join("docs", uuid.NewString()+ext)

	f, err := os.Create(filepath.Join(s.basePath, key))
	if err != nil {
		return "", fmt.Errorf("document store: create: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("document store: write: %w", err)
	}
	return key, nil
}

// Remove deletes the blob for key. Missing blobs are not an error.
func (s *DocumentStore) Remove(key string) error {
	err := os.Remove(filepath.Join(s.basePath, key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
