package services

import (
	"context"
	"fmt"
	"io"

	"kontak/internal/models"
	"kontak/internal/repositories"
)

// AvatarUploader stores an avatar image and returns its public URL.
// Satisfied by the S3 uploader; mocked in tests.
type AvatarUploader interface {
	Upload(ctx context.Context, username, filename string, content io.Reader) (string, error)
}

// UserService handles business logic for user profiles.
type UserService struct {
	userRepo repositories.UserRepository
	uploader AvatarUploader
}

// NewUserService creates a new UserService. uploader may be nil, in which
// case avatar updates are rejected.
func NewUserService(userRepo repositories.UserRepository, uploader AvatarUploader) *UserService {
	return &UserService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateAvatar uploads a new avatar image for the user and persists its URL.
// The cached copy of the user is not purged; stale avatars are served until
// the cache entry expires.
func (s *UserService) UpdateAvatar(ctx context.Context, user *models.User, filename string, content io.Reader) (*models.User, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("avatar uploader is not configured")
	}

	url, err := s.uploader.Upload(ctx, user.Username, filename, content)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}
	if err := s.userRepo.UpdateAvatar(user.ID, url); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(user.ID)
}
