package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	gcs "cloud.google.com/go/storage"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
)

// BucketStore keeps images in the project's Firebase storage bucket. Saved
// objects are made publicly readable so clients load them straight from the
// bucket without another round trip through the API.
type BucketStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewBucketStore(bucket *gcs.BucketHandle, bucketName string) *BucketStore {
	return &BucketStore{bucket: bucket, bucketName: bucketName}
}

func (s *BucketStore) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	start := time.Now()
	logger.ExternalServiceCall("firebase-storage", "save", "key", key, "bytes", len(data))

	obj := s.bucket.Object(key)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		logger.ExternalServiceResult("firebase-storage", "save", err, "duration", time.Since(start))
		return "", domain.WrapUpstream("failed to write object", err)
	}
	if err := w.Close(); err != nil {
		logger.ExternalServiceResult("firebase-storage", "save", err, "duration", time.Since(start))
		return "", domain.WrapUpstream("failed to finalize object", err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		logger.ExternalServiceResult("firebase-storage", "save", err, "duration", time.Since(start))
		return "", domain.WrapUpstream("failed to publish object", err)
	}

	logger.ExternalServiceResult("firebase-storage", "save", nil, "duration", time.Since(start))
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, url.PathEscape(key)), nil
}

func (s *BucketStore) Delete(ctx context.Context, key string) error {
	err := s.bucket.Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return domain.WrapUpstream("failed to delete object", err)
	}
	return nil
}

func (s *BucketStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	r, err := s.bucket.Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, "", domain.Ef(domain.NotFound, "object %s not found", key)
		}
		return nil, "", domain.WrapUpstream("failed to open object", err)
	}
	return r, r.Attrs.ContentType, nil
}
