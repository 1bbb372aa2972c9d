package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mertdogan/estately/internal/auth"
	"github.com/mertdogan/estately/internal/database/models"
	"github.com/mertdogan/estately/internal/database/repository"
)

// UserService defines the interface for user profile business logic. Every
// mutating operation is owner-scoped: callerID must match targetID.
type UserService interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, callerID, targetID string, patch *UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, callerID, targetID string) error
	GetUserListings(ctx context.Context, callerID, targetID string) ([]models.Listing, error)
}

// UserPatch holds the optional profile fields of an update request. Nil
// fields are left unchanged.
type UserPatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Avatar   *string `json:"avatar"`
}

type userService struct {
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	logger      *slog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
	logger *slog.Logger,
) UserService {
	return &userService{
		userRepo:    userRepo,
		listingRepo: listingRepo,
		logger:      logger,
	}
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, callerID, targetID string, patch *UserPatch) (*models.User, error) {
	if callerID != targetID {
		s.logger.Warn("⚠️ [UserService] Update rejected, not the account owner",
			"caller_id", callerID, "target_id", targetID)
		return nil, ErrNotOwner
	}

	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if patch.Username != nil {
		if verr := validateUsername(*patch.Username); verr != nil {
			return nil, verr
		}
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		if verr := validateEmail(*patch.Email); verr != nil {
			return nil, verr
		}
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		if verr := validatePassword(*patch.Password); verr != nil {
			return nil, verr
		}
		hashed, err := auth.HashPassword(*patch.Password)
		if err != nil {
			s.logger.Error("❌ [UserService] Failed to hash password", "error", err)
			return nil, err
		}
		user.Password = hashed
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, s.classifyUpdateConflict(ctx, user)
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		s.logger.Error("❌ [UserService] Failed to update user", "user_id", targetID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [UserService] User updated", "user_id", targetID)
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, callerID, targetID string) error {
	if callerID != targetID {
		s.logger.Warn("⚠️ [UserService] Delete rejected, not the account owner",
			"caller_id", callerID, "target_id", targetID)
		return ErrNotOwner
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("❌ [UserService] Failed to delete user", "user_id", targetID, "error", err)
		return err
	}

	s.logger.Info("✅ [UserService] User deleted", "user_id", targetID)
	return nil
}

// GetUserListings returns the target user's listings. A user may only
// enumerate their own.
func (s *userService) GetUserListings(ctx context.Context, callerID, targetID string) ([]models.Listing, error) {
	if callerID != targetID {
		s.logger.Warn("⚠️ [UserService] Listings enumeration rejected, not the owner",
			"caller_id", callerID, "target_id", targetID)
		return nil, ErrNotOwner
	}

	return s.listingRepo.FindByOwner(ctx, targetID)
}

// classifyUpdateConflict decides which identifier caused a duplicate-key
// failure on profile update.
func (s *userService) classifyUpdateConflict(ctx context.Context, user *models.User) error {
	if existing, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil && existing != nil && existing.ID != user.ID {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}
