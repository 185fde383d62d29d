package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "invested/internal/errors"
)

func TestRegisterHashesPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByEmail", mock.Anything, "amy@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	user, err := svc.Register(context.Background(), "amy@example.com", "Password1", "Amy")
	assert.NoError(t, err)
	assert.Equal(t, "amy@example.com", user.Email)
	assert.Equal(t, "Amy", user.Name)
	assert.NotEqual(t, "Password1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Password1")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	existing := newTestUser(t, "amy@example.com", "Password1")
	userRepo.On("FindByEmail", mock.Anything, "amy@example.com").Return(existing, nil)

	_, err := svc.Register(context.Background(), "amy@example.com", "Password1", "")
	assert.Equal(t, apperrors.ErrEmailTaken, err)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterPasswordPolicy(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	weak := []string{
		"short1A",    // too short
		"password1",  // no uppercase
		"PASSWORD1",  // no lowercase
		"Passwords",  // no digit
	}
	for _, password := range weak {
		_, err := svc.Register(context.Background(), "amy@example.com", password, "")
		assert.Equal(t, ErrWeakPassword, err, "password %q should be rejected", password)
	}
	userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestRegisterThenLogin(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	sessionCache := new(MockSessionCache)
	users := NewUserService(userRepo)
	auths := NewAuthService(userRepo, sessionRepo, sessionCache)

	userRepo.On("FindByEmail", mock.Anything, "amy@example.com").Return(nil, gorm.ErrRecordNotFound).Once()
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	registered, err := users.Register(context.Background(), "amy@example.com", "Password1", "Amy")
	assert.NoError(t, err)

	userRepo.On("FindByEmail", mock.Anything, "amy@example.com").Return(registered, nil)
	sessionRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	sessionCache.On("Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := auths.Login(context.Background(), "amy@example.com", "Password1")
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, result.UserID)
	assert.NotEmpty(t, result.Token)
}
