package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"github.com/mertdogan/estately/internal/database/models"
	"github.com/mertdogan/estately/internal/database/repository"
	"github.com/mertdogan/estately/internal/database/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ==================== MOCK AUTH SERVICE ====================

// MockAuthService implements service.AuthService for testing
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, username, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) SignIn(ctx context.Context, username, password string) (*models.User, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Google(ctx context.Context, name, email, photo string) (*models.User, string, error) {
	args := m.Called(ctx, name, email, photo)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) SignOut(ctx context.Context, claims *jwt.RegisteredClaims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

// ==================== MOCK USER SERVICE ====================

// MockUserService implements service.UserService for testing
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, callerID, targetID string, patch *service.UserPatch) (*models.User, error) {
	args := m.Called(ctx, callerID, targetID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, callerID, targetID string) error {
	args := m.Called(ctx, callerID, targetID)
	return args.Error(0)
}

func (m *MockUserService) GetUserListings(ctx context.Context, callerID, targetID string) ([]models.Listing, error) {
	args := m.Called(ctx, callerID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

// ==================== MOCK LISTING SERVICE ====================

// MockListingService implements service.ListingService for testing
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Create(ctx context.Context, ownerID string, listing *models.Listing) (*models.Listing, error) {
	args := m.Called(ctx, ownerID, listing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) Get(ctx context.Context, id string) (*models.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) Update(ctx context.Context, callerID, id string, patch *service.ListingPatch) (*models.Listing, error) {
	args := m.Called(ctx, callerID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) Delete(ctx context.Context, callerID, id string) error {
	args := m.Called(ctx, callerID, id)
	return args.Error(0)
}

func (m *MockListingService) Search(ctx context.Context, query repository.ListingQuery) ([]models.Listing, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}
