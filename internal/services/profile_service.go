package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mentorhub/mentorhub-web/internal/cache"
	"github.com/mentorhub/mentorhub-web/internal/models"
	apperrors "github.com/mentorhub/mentorhub-web/pkg/errors"
	"github.com/mentorhub/mentorhub-web/pkg/logger"
	"github.com/mentorhub/mentorhub-web/pkg/metrics"
	"github.com/mentorhub/mentorhub-web/pkg/storage"
	"go.uber.org/zap"
)

// ProfileService serves the viewer's own profile and avatar uploads.
// Avatars go to object storage first; the resulting URL is then recorded
// on the core backend.
type ProfileService struct {
	api    AuthAPI
	store  *storage.AvatarStore
	roster *cache.RosterCache
}

// NewProfileService creates the profile service. The avatar store may be
// nil when object storage is not configured; uploads then fail cleanly.
func NewProfileService(api AuthAPI, store *storage.AvatarStore, roster *cache.RosterCache) *ProfileService {
	return &ProfileService{api: api, store: store, roster: roster}
}

// Me returns the viewer's profile from the core backend.
func (s *ProfileService) Me(ctx context.Context, sess *models.Session) (*models.Profile, error) {
	return s.api.Me(ctx, sess.Token)
}

// UploadAvatar validates and stores a base64-encoded avatar, then records
// the new URL on the user's backend profile.
func (s *ProfileService) UploadAvatar(ctx context.Context, sess *models.Session, imageData, contentType string) (string, error) {
	if s.store == nil {
		metrics.AvatarUploads.WithLabelValues("error").Inc()
		return "", apperrors.InternalError("avatar storage is not configured")
	}

	if err := s.store.ValidateImageType(contentType); err != nil {
		metrics.AvatarUploads.WithLabelValues("invalid").Inc()
		return "", apperrors.InvalidInputError("contentType", err.Error())
	}
	if err := s.store.ValidateImageSize(imageData); err != nil {
		metrics.AvatarUploads.WithLabelValues("invalid").Inc()
		return "", apperrors.InvalidInputError("image", err.Error())
	}

	ext := extensionFor(contentType)
	key := fmt.Sprintf("avatars/%s/%s%s", sess.UserID, uuid.NewString(), ext)

	url, err := s.store.UploadAvatar(ctx, imageData, key, contentType)
	if err != nil {
		metrics.AvatarUploads.WithLabelValues("error").Inc()
		return "", err
	}

	if err := s.api.UpdateAvatar(ctx, sess.Token, url); err != nil {
		metrics.AvatarUploads.WithLabelValues("error").Inc()
		logger.Error("Avatar uploaded but profile update failed",
			zap.String("user_id", sess.UserID),
			zap.Error(err),
		)
		return "", err
	}

	// Cached roster snapshots still carry the old avatar URL.
	if s.roster != nil {
		switch sess.Role {
		case models.RoleStudent:
			s.roster.Invalidate(rosterStudents)
		case models.RoleMentor:
			s.roster.Invalidate(rosterMentors)
		}
	}

	metrics.AvatarUploads.WithLabelValues("success").Inc()
	return url, nil
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
