// Package service provides the authentication and task business logic,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taskmanager/api/internal/apperrors"
	"github.com/taskmanager/api/internal/models"
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// ExistsByUsername reports whether a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// ExistsByEmail reports whether a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// FindByUsername fetches a user by username, nil if absent.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// Save persists a user, assigning an id on first save.
	Save(ctx context.Context, user models.User) (models.User, error)
}

// PasswordHasher produces and verifies one-way password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// TokenIssuer signs identity tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

// AuthResult is returned by successful registration and login.
type AuthResult struct {
	// Token is the signed bearer token for subsequent requests.
	Token string `json:"token"`
	// Username echoes the authenticated user's name.
	Username string `json:"username"`
	// UserID is the authenticated user's id.
	UserID string `json:"userId"`
}

// AuthService implements registration and login.
type AuthService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	log    *zap.Logger
}

// NewAuthService constructs an AuthService from its collaborators.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenIssuer, log *zap.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a new user and returns a fresh token for it.
//
// The username collision is checked before the email collision, so when
// both collide the username error wins. The password is hashed before
// the user record is saved; the store assigns the id.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return AuthResult{}, apperrors.ErrValidation
	}

	s.log.Info("attempting to register user", zap.String("username", username))

	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return AuthResult{}, err
	}
	if taken {
		s.log.Warn("registration failed: username already exists", zap.String("username", username))
		return AuthResult{}, apperrors.ErrDuplicateUsername
	}

	taken, err = s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if taken {
		s.log.Warn("registration failed: email already exists", zap.String("email", email))
		return AuthResult{}, apperrors.ErrDuplicateEmail
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.repo.Save(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
	})
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return AuthResult{}, err
	}

	s.log.Info("user registered", zap.String("username", user.Username), zap.String("userId", user.ID))
	return AuthResult{Token: token, Username: user.Username, UserID: user.ID}, nil
}

// Login verifies the credentials and returns a fresh token.
//
// An unknown username and a wrong password both produce
// apperrors.ErrInvalidCredentials so the response never discloses which
// part was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (AuthResult, error) {
	s.log.Info("login attempt", zap.String("username", username))

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return AuthResult{}, err
	}
	if user == nil {
		s.log.Warn("login failed: user not found", zap.String("username", username))
		return AuthResult{}, apperrors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Warn("login failed: invalid password", zap.String("username", username))
		return AuthResult{}, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return AuthResult{}, err
	}

	s.log.Info("user logged in", zap.String("username", user.Username))
	return AuthResult{Token: token, Username: user.Username, UserID: user.ID}, nil
}
