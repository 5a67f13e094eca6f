package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// Auth errors.
var (
	// ErrInvalidCredentials deliberately does not say whether the email or
	// the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// Password length bounds. The upper bound is bcrypt's 72-byte input limit.
const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

// AuthService registers accounts and exchanges credentials for tokens.
// It only supplies a trusted owner identifier to the task surface; it does
// not take part in task authorization.
type AuthService struct {
	users  types.UserStore
	hasher *PasswordHasher
	tokens *TokenIssuer
}

// NewAuthService creates an AuthService.
func NewAuthService(users types.UserStore, hasher *PasswordHasher, tokens *TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates an account and returns a signed token for it.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return "", types.NewValidationError("email", "not a valid address")
	}
	if len(password) < minPasswordLength {
		return "", types.NewValidationError("password", "must be at least 8 characters")
	}
	if len(password) > maxPasswordLength {
		return "", types.NewValidationError("password", "must be at most 72 characters")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating user ID: %w", err)
	}

	now := time.Now().UTC()
	user := &types.User{
		ID:           id.String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, types.ErrConstraintViolation) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	return s.tokens.Issue(user.ID, user.Email)
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID, user.Email)
}

// ValidateToken checks a bearer token and returns the owner ID it carries.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
