package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"invested/internal/auth"
	apperrors "invested/internal/errors"
	"invested/internal/model"
	"invested/internal/repository"
)

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}

// AuthService issues and retires opaque session tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout deletes the session. Deleting a nonexistent or already-expired
	// token is a no-op success; only store failures return an error.
	Logout(ctx context.Context, token string) error
	// ValidateToken checks a session token and returns the owning user ID.
	// Expired sessions are deleted lazily and reported as invalid.
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

type authService struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	sessionCache auth.SessionCacheInterface
	now          func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, sessionCache auth.SessionCacheInterface) AuthService {
	return &authService{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		sessionCache: sessionCache,
		now:          time.Now,
	}
}

// Login verifies credentials and issues a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(auth.SessionExpiry),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	_ = s.sessionCache.Store(ctx, token, user.ID, session.ExpiresAt)

	return &LoginResult{
		Token:  token,
		UserID: user.ID,
		Email:  user.Email,
	}, nil
}

// Logout retires the session in the store and the cache.
func (s *authService) Logout(ctx context.Context, token string) error {
	_ = s.sessionCache.Delete(ctx, token)
	if _, err := s.sessionRepo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ValidateToken resolves a token to its user, cache first, store second.
func (s *authService) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	if userID, expiresAt, ok := s.sessionCache.Get(ctx, token); ok {
		if expiresAt.After(s.now()) {
			return userID, nil
		}
		// cached but expired: fall through to the lazy delete below
	}

	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return uuid.Nil, apperrors.ErrSessionInvalid
		}
		return uuid.Nil, fmt.Errorf("find session: %w", err)
	}

	if session.Expired(s.now()) {
		_ = s.sessionCache.Delete(ctx, token)
		_, _ = s.sessionRepo.DeleteByToken(ctx, token)
		return uuid.Nil, apperrors.ErrSessionInvalid
	}

	return session.UserID, nil
}
