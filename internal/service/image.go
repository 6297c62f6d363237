package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
	"givehub-backend/internal/repository"
	"givehub-backend/internal/security"
	"givehub-backend/internal/storage"
)

type imageService struct {
	store    storage.Store
	userRepo repository.UserRepository
	maxBytes int
	now      func() time.Time
}

func NewImageService(store storage.Store, userRepo repository.UserRepository, maxBytes int) ImageService {
	return &imageService{
		store:    store,
		userRepo: userRepo,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (s *imageService) UploadImage(ctx context.Context, p security.Principal, kind string, data []byte) (string, error) {
	if kind != "profile" && kind != "donation" {
		return "", domain.Ef(domain.InvalidArgument, "unknown image kind %q", kind)
	}
	if len(data) == 0 {
		return "", domain.E(domain.InvalidArgument, "empty upload")
	}
	if len(data) > s.maxBytes {
		return "", domain.Ef(domain.InvalidArgument, "image exceeds %d byte limit", s.maxBytes)
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", domain.Ef(domain.InvalidArgument, "unsupported content type %s", contentType)
	}

	// Profile images live under a stable per-user key so re-uploads replace
	// the old one; donation images get a fresh key each time.
	var key string
	if kind == "profile" {
		key = fmt.Sprintf("profile/%s%s", p.UID, ext)
	} else {
		key = fmt.Sprintf("donation/%s%s", uuid.New().String(), ext)
	}

	url, err := s.store.Save(ctx, key, contentType, data)
	if err != nil {
		return "", err
	}

	if kind == "profile" {
		upd := domain.UserUpdate{ProfileImageURL: &url, UpdatedAt: s.now().UTC()}
		if err := s.userRepo.Update(ctx, p.UID, upd); err != nil {
			logger.Error("failed to record profile image URL", "userID", p.UID, "error", err)
		}
	}
	return url, nil
}
