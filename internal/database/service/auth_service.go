package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mertdogan/estately/internal/auth"
	"github.com/mertdogan/estately/internal/database"
	"github.com/mertdogan/estately/internal/database/models"
	"github.com/mertdogan/estately/internal/database/repository"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	SignUp(ctx context.Context, username, email, password string) (*models.User, string, error)
	SignIn(ctx context.Context, username, password string) (*models.User, string, error)
	Google(ctx context.Context, name, email, photo string) (*models.User, string, error)
	SignOut(ctx context.Context, claims *jwt.RegisteredClaims) error
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	denylist *database.TokenDenylist
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo repository.UserRepository,
	tokens *auth.TokenManager,
	denylist *database.TokenDenylist,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		denylist: denylist,
		logger:   logger,
	}
}

func (s *authService) SignUp(ctx context.Context, username, email, password string) (*models.User, string, error) {
	s.logger.Info("📝 [AuthService] Signup attempt", "email", email, "username", username)

	if err := validateUsername(username); err != nil {
		return nil, "", err
	}
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}

	// Pre-checks give friendlier messages; the unique indexes remain the
	// authoritative guard. Email is checked first so its message wins when
	// both identifiers collide.
	if err := s.checkAvailability(ctx, username, email); err != nil {
		return nil, "", err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return nil, "", err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Avatar:   models.DefaultAvatar,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// A concurrent signup won the race after our pre-check passed.
			s.logger.Warn("⚠️ [AuthService] Duplicate key at insert", "email", email, "username", username)
			return nil, "", s.classifyDuplicate(ctx, email)
		}
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to issue token", "error", err)
		return nil, "", err
	}

	s.logger.Info("✅ [AuthService] User signed up", "user_id", user.ID.Hex())
	return user, token, nil
}

func (s *authService) SignIn(ctx context.Context, username, password string) (*models.User, string, error) {
	s.logger.Info("🔐 [AuthService] Signin attempt", "username", username)

	if err := validateUsername(username); err != nil {
		return nil, "", err
	}
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "username", username)
			return nil, "", ErrUserNotFound
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, "", err
	}

	if !auth.CheckPassword(password, user.Password) {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "username", username)
		return nil, "", ErrWrongCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to issue token", "error", err)
		return nil, "", err
	}

	s.logger.Info("✅ [AuthService] User signed in", "user_id", user.ID.Hex())
	return user, token, nil
}

// Google signs in a user asserted by the upstream identity provider. The
// assertion is trusted: no local password check is performed on this path.
func (s *authService) Google(ctx context.Context, name, email, photo string) (*models.User, string, error) {
	s.logger.Info("🔐 [AuthService] Federated signin attempt", "email", email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, "", err
	}

	if user == nil {
		user, err = s.createFederatedUser(ctx, name, email, photo)
		if err != nil {
			return nil, "", err
		}
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to issue token", "error", err)
		return nil, "", err
	}

	s.logger.Info("✅ [AuthService] Federated signin completed", "user_id", user.ID.Hex())
	return user, token, nil
}

// SignOut revokes the presented token until its natural expiry. Without a
// denylist the token stays valid and signout only clears the client cookie.
func (s *authService) SignOut(ctx context.Context, claims *jwt.RegisteredClaims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}

	if err := s.denylist.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		return err
	}

	s.logger.Info("👋 [AuthService] User signed out", "user_id", claims.Subject)
	return nil
}

func (s *authService) checkAvailability(ctx context.Context, username, email string) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error checking email", "error", err)
		return err
	}
	if existing != nil {
		s.logger.Warn("⚠️ [AuthService] Email already taken", "email", email)
		return ErrEmailTaken
	}

	existing, err = s.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error checking username", "error", err)
		return err
	}
	if existing != nil {
		s.logger.Warn("⚠️ [AuthService] Username already taken", "username", username)
		return ErrUsernameTaken
	}

	return nil
}

// classifyDuplicate decides which identifier caused a duplicate-key insert
// failure, so the caller still gets the specific conflict message.
func (s *authService) classifyDuplicate(ctx context.Context, email string) error {
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

func (s *authService) createFederatedUser(ctx context.Context, name, email, photo string) (*models.User, error) {
	avatar := photo
	if avatar == "" {
		avatar = models.DefaultAvatar
	}

	// The generated password is a throwaway: this path only ever issues
	// tokens, it never checks passwords.
	throwaway, err := randomSecret(16)
	if err != nil {
		return nil, err
	}
	hashedPassword, err := auth.HashPassword(throwaway)
	if err != nil {
		return nil, err
	}

	// The random suffix keeps derived usernames from colliding; retry a few
	// times in case one does anyway.
	for attempt := 0; attempt < 3; attempt++ {
		suffix, err := randomSuffix()
		if err != nil {
			return nil, err
		}

		user := &models.User{
			Username: deriveUsername(name) + suffix,
			Email:    email,
			Password: hashedPassword,
			Avatar:   avatar,
		}

		err = s.userRepo.Create(ctx, user)
		if err == nil {
			s.logger.Info("✅ [AuthService] Federated account created", "user_id", user.ID.Hex())
			return user, nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			s.logger.Error("❌ [AuthService] Failed to create federated user", "error", err)
			return nil, err
		}

		// The email may have been registered concurrently, in which case
		// retrying the username is pointless.
		if existing, findErr := s.userRepo.FindByEmail(ctx, email); findErr == nil && existing != nil {
			return existing, nil
		}
	}

	return nil, ErrUsernameTaken
}

// deriveUsername normalizes a display name: lowercased with whitespace
// stripped.
func deriveUsername(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

func randomSuffix() (string, error) {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func randomSecret(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
