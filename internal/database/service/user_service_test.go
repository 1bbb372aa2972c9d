package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mertdogan/estately/internal/auth"
	"github.com/mertdogan/estately/internal/database/models"
	"github.com/mertdogan/estately/internal/database/repository"
)

func storedUser(t *testing.T) *models.User {
	t.Helper()

	hashed, err := auth.HashPassword("original-pass")
	require.NoError(t, err)

	return &models.User{
		ID:       primitive.NewObjectID(),
		Username: "alice",
		Email:    "a@x.com",
		Password: hashed,
		Avatar:   models.DefaultAvatar,
	}
}

func TestUserService_GetUser(t *testing.T) {
	user := storedUser(t)

	t.Run("found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, user.ID.Hex()).Return(user, nil)

		svc := NewUserService(userRepo, new(MockListingRepository), testLogger())
		got, err := svc.GetUser(context.Background(), user.ID.Hex())

		require.NoError(t, err)
		assert.Equal(t, user.Username, got.Username)
	})

	t.Run("missing", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, "missing").Return(nil, repository.ErrUserNotFound)

		svc := NewUserService(userRepo, new(MockListingRepository), testLogger())
		got, err := svc.GetUser(context.Background(), "missing")

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, got)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Run("non-owner is rejected before any lookup", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo, new(MockListingRepository), testLogger())

		newName := "mallory"
		got, err := svc.UpdateUser(context.Background(), "caller", "someone-else", &UserPatch{Username: &newName})

		assert.ErrorIs(t, err, ErrNotOwner)
		assert.Nil(t, got)
		userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("merges only provided fields", func(t *testing.T) {
		user := storedUser(t)
		originalHash := user.Password

		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, user.ID.Hex()).Return(user, nil)
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		svc := NewUserService(userRepo, new(MockListingRepository), testLogger())

		newAvatar := "https://example.com/new.png"
		got, err := svc.UpdateUser(context.Background(), user.ID.Hex(), user.ID.Hex(), &UserPatch{Avatar: &newAvatar})

		require.NoError(t, err)
		assert.Equal(t, newAvatar, got.Avatar)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, originalHash, got.Password, "password must be untouched when not in the patch")
	})

	t.Run("password is re-hashed, never stored as plaintext", func(t *testing.T) {
		user := storedUser(t)
		originalHash := user.Password

		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, user.ID.Hex()).Return(user, nil)
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		svc := NewUserService(userRepo, new(MockListingRepository), testLogger())

		newPassword := "brand-new-pass"
		got, err := svc.UpdateUser(context.Background(), user.ID.Hex(), user.ID.Hex(), &UserPatch{Password: &newPassword})

		require.NoError(t, err)
		assert.NotEqual(t, newPassword, got.Password)
		assert.NotEqual(t, originalHash, got.Password)
		assert.True(t, auth.CheckPassword(newPassword, got.Password))
	})

	t.Run("invalid patch field", func(t *testing.T) {
		user := storedUser(t)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, user.ID.Hex()).Return(user, nil)

		svc := NewUserService(userRepo, new(MockListingRepository), testLogger())

		shortPassword := "short"
		got, err := svc.UpdateUser(context.Background(), user.ID.Hex(), user.ID.Hex(), &UserPatch{Password: &shortPassword})

		verr, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "Your password needs to be at least 8 characters long.", verr.Message)
		assert.Nil(t, got)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email surfaces as conflict", func(t *testing.T) {
		user := storedUser(t)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, user.ID.Hex()).Return(user, nil)
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(repository.ErrDuplicateKey)
		userRepo.On("FindByEmail", mock.Anything, "taken@x.com").
			Return(&models.User{ID: primitive.NewObjectID(), Email: "taken@x.com"}, nil)

		svc := NewUserService(userRepo, new(MockListingRepository), testLogger())

		takenEmail := "taken@x.com"
		got, err := svc.UpdateUser(context.Background(), user.ID.Hex(), user.ID.Hex(), &UserPatch{Email: &takenEmail})

		assert.ErrorIs(t, err, ErrEmailTaken)
		assert.Nil(t, got)
	})

	t.Run("duplicate username surfaces as conflict", func(t *testing.T) {
		user := storedUser(t)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, user.ID.Hex()).Return(user, nil)
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(repository.ErrDuplicateKey)
		// Email belongs to the user being updated, so the username is the culprit.
		userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

		svc := NewUserService(userRepo, new(MockListingRepository), testLogger())

		takenName := "taken"
		got, err := svc.UpdateUser(context.Background(), user.ID.Hex(), user.ID.Hex(), &UserPatch{Username: &takenName})

		assert.ErrorIs(t, err, ErrUsernameTaken)
		assert.Nil(t, got)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("Delete", mock.Anything, "user-1").Return(nil)

		svc := NewUserService(userRepo, new(MockListingRepository), testLogger())
		assert.NoError(t, svc.DeleteUser(context.Background(), "user-1", "user-1"))
		userRepo.AssertExpectations(t)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo, new(MockListingRepository), testLogger())

		err := svc.DeleteUser(context.Background(), "caller", "someone-else")

		assert.ErrorIs(t, err, ErrNotOwner)
		userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("Delete", mock.Anything, "user-1").Return(repository.ErrUserNotFound)

		svc := NewUserService(userRepo, new(MockListingRepository), testLogger())
		err := svc.DeleteUser(context.Background(), "user-1", "user-1")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_GetUserListings(t *testing.T) {
	t.Run("owner sees own listings", func(t *testing.T) {
		listings := []models.Listing{{Name: "Cottage", UserRef: "user-1"}}

		listingRepo := new(MockListingRepository)
		listingRepo.On("FindByOwner", mock.Anything, "user-1").Return(listings, nil)

		svc := NewUserService(new(MockUserRepository), listingRepo, testLogger())
		got, err := svc.GetUserListings(context.Background(), "user-1", "user-1")

		require.NoError(t, err)
		assert.Equal(t, listings, got)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		listingRepo := new(MockListingRepository)
		svc := NewUserService(new(MockUserRepository), listingRepo, testLogger())

		got, err := svc.GetUserListings(context.Background(), "caller", "someone-else")

		assert.ErrorIs(t, err, ErrNotOwner)
		assert.Nil(t, got)
		listingRepo.AssertNotCalled(t, "FindByOwner", mock.Anything, mock.Anything)
	})
}
