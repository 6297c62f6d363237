package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"givehub-backend/internal/domain"
)

// LocalStore keeps images on the local filesystem for development without a
// cloud bucket. URLs point back at the API's image download route, which
// serves them through Open.
type LocalStore struct {
	baseURL   string
	uploadDir string
}

func NewLocalStore(baseURL, uploadDir string) (*LocalStore, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{
		baseURL:   strings.TrimRight(baseURL, "/"),
		uploadDir: uploadDir,
	}, nil
}

func (s *LocalStore) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	full, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", domain.WrapUpstream("failed to create image directory", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", domain.WrapUpstream("failed to write image", err)
	}
	if err := os.WriteFile(full+".meta", metaBytes(contentType), 0o644); err != nil {
		return "", domain.WrapUpstream("failed to write image metadata", err)
	}
	return fmt.Sprintf("%s/api/v1/images/%s", s.baseURL, key), nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	full, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return domain.WrapUpstream("failed to delete image", err)
	}
	os.Remove(full + ".meta")
	return nil
}

func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	full, err := s.path(key)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", domain.Ef(domain.NotFound, "image %s not found", key)
		}
		return nil, "", domain.WrapUpstream("failed to open image", err)
	}
	return f, readMeta(full + ".meta"), nil
}

// path joins key under uploadDir and rejects traversal outside it.
func (s *LocalStore) path(key string) (string, error) {
	full := filepath.Join(s.uploadDir, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.uploadDir, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", domain.Ef(domain.InvalidArgument, "invalid image key %q", key)
	}
	return full, nil
}

type localMeta struct {
	ContentType string `json:"contentType"`
}

func metaBytes(contentType string) []byte {
	b, _ := json.Marshal(localMeta{ContentType: contentType})
	return b
}

func readMeta(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return "application/octet-stream"
	}
	var m localMeta
	if err := json.Unmarshal(b, &m); err != nil || m.ContentType == "" {
		return "application/octet-stream"
	}
	return m.ContentType
}
