package services

import (
	"fmt"
	"strings"

	"listly/internal/models"
	"listly/internal/repositories"
	"listly/pkg/apperr"

	"golang.org/x/crypto/bcrypt"
)

// userUpdateAllowList are the only keys a profile PATCH may carry. An
// unknown key rejects the whole update.
var userUpdateAllowList = map[string]bool{
	"password": true,
	"name":     true,
	"bio":      true,
	"location": true,
	"website":  true,
}

// maxAvatarSize bounds uploaded avatar images.
const maxAvatarSize = 500_000

// UserService handles profile reads and owner-only profile mutation.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// Profile retrieves a user's public profile by username.
func (s *UserService) Profile(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(strings.ToLower(username))
}

// Update applies a partial profile update for the authenticated user.
// Every key must be on the allow-list or nothing is applied at all.
func (s *UserService) Update(userID string, updates map[string]interface{}) (*models.User, error) {
	for key := range updates {
		if !userUpdateAllowList[key] {
			return nil, apperr.New(apperr.KindValidation, fmt.Sprintf("update of '%s' is not allowed", key))
		}
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	for key, value := range updates {
		str, ok := value.(string)
		if !ok {
			return nil, apperr.New(apperr.KindValidation, fmt.Sprintf("'%s' must be a string", key))
		}
		str = strings.TrimSpace(str)
		switch key {
		case "password":
			if len(str) < 4 || len(str) > 72 {
				return nil, apperr.New(apperr.KindValidation, "password should be 4 to 72 characters long")
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(str), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password: %w", err)
			}
			user.Password = string(hashed)
		case "name":
			if str != "" && (len(str) < 4 || len(str) > 20) {
				return nil, apperr.New(apperr.KindValidation, "name should be 4 to 20 characters long")
			}
			user.Name = str
		case "bio":
			if len(str) > 200 {
				return nil, apperr.New(apperr.KindValidation, "bio should be at most 200 characters long")
			}
			user.Bio = str
		case "location":
			user.Location = str
		case "website":
			user.Website = str
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetAvatar stores the raw uploaded image bytes for the user.
func (s *UserService) SetAvatar(userID string, data []byte) error {
	if len(data) == 0 {
		return apperr.New(apperr.KindValidation, "avatar image is required")
	}
	if len(data) > maxAvatarSize {
		return apperr.New(apperr.KindValidation, "avatar image is too large")
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	user.Avatar = data
	return s.userRepo.Update(user)
}

// Avatar retrieves the stored avatar bytes for a username.
func (s *UserService) Avatar(username string) ([]byte, error) {
	user, err := s.userRepo.GetByUsername(strings.ToLower(username))
	if err != nil {
		return nil, err
	}
	if len(user.Avatar) == 0 {
		return nil, apperr.New(apperr.KindNotFound, "user has no avatar")
	}
	return user.Avatar, nil
}
