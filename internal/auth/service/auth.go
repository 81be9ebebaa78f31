package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	autherrors "roamly/internal/auth/errors"
	"roamly/internal/auth/repository"
	"roamly/pkg/config"
	apperrors "roamly/pkg/errors"
	"roamly/pkg/events"
	"roamly/pkg/model"
	"roamly/pkg/sanitizer"
	"roamly/pkg/token"
)

// emailPattern is deliberately loose; it rejects obvious garbage, not every
// RFC 5322 corner case.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type LoginResult struct {
	Token string
	User  *model.User
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Verify(ctx context.Context, claims *token.Claims) (*model.User, error)
}

type authService struct {
	repo      repository.UserRepository
	tokens    *token.Manager
	publisher events.Publisher
	cfg       *config.Config
}

func NewAuthService(
	repo repository.UserRepository,
	tokens *token.Manager,
	publisher events.Publisher,
	cfg *config.Config,
) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = sanitizer.NormalizeName(name)
	email = sanitizer.NormalizeEmail(email)
	password = strings.TrimSpace(password)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, apperrors.Validation("Missing required fields", map[string]any{
			"missing": missing,
		})
	}

	if !emailPattern.MatchString(email) {
		return nil, apperrors.InvalidInput("Invalid email format")
	}

	// Pre-insert existence check for a friendly error; the unique index on
	// email is what actually closes the race between concurrent registrations.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflict("User with this email already exists")
	} else if !errors.Is(err, autherrors.ErrUserNotFound) {
		s.cfg.Log.Error("Failed to check user existence", "email", email, "error", err)
		return nil, apperrors.Internal("Registration failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		s.cfg.Log.Error("Failed to hash password", "error", err)
		return nil, apperrors.Internal("Registration failed", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		if errors.Is(err, autherrors.ErrUserExists) {
			return nil, apperrors.Conflict("User with this email already exists")
		}
		s.cfg.Log.Error("Failed to insert user", "email", email, "error", err)
		return nil, apperrors.Internal("Registration failed", err)
	}

	s.publisher.Publish(ctx, events.TypeUserRegistered, user.ID, map[string]any{
		"email": user.Email,
		"name":  user.Name,
	})
	s.cfg.Log.Info("User registered", "id", user.ID, "email", user.Email)
	return user, nil
}

// Login returns the same generic error for an unknown email and a wrong
// password so responses never reveal which one failed.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = sanitizer.NormalizeEmail(email)

	if email == "" || password == "" {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, autherrors.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		s.cfg.Log.Error("Failed to look up user", "email", email, "error", err)
		return nil, apperrors.Internal("Login failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	signed, err := s.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "email", email, "error", err)
		return nil, apperrors.Internal("Login failed", err)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID, "email", user.Email)
	return &LoginResult{Token: signed, User: user}, nil
}

// Verify resolves the authenticated user behind a set of verified claims.
func (s *authService) Verify(ctx context.Context, claims *token.Claims) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, autherrors.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("Invalid or expired token")
		}
		s.cfg.Log.Error("Failed to resolve token subject", "userId", claims.UserID, "error", err)
		return nil, apperrors.Internal("Verification failed", err)
	}
	return user, nil
}
