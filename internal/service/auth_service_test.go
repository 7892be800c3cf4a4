package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/forgiv/bloggy-server/internal/auth"
	apperr "github.com/forgiv/bloggy-server/internal/errors"
	"github.com/forgiv/bloggy-server/internal/model"
)

var testHasher = &auth.BcryptHasher{Cost: 4}

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService(auth.Config{Secret: "test-secret", Lifetime: time.Hour})
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := testHasher.Hash("secret1")
	require.NoError(t, err)
	alice := &model.User{ID: uuid.New(), Username: "alice", PasswordHash: hashed, Blog: "A blog"}

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository, *MockLoginLimiter)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "secret1",
			setupMock: func(mRepo *MockUserRepository, mLimiter *MockLoginLimiter) {
				mLimiter.On("Allow", mock.Anything, "alice").Return(true)
				mRepo.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
				mLimiter.On("Reset", mock.Anything, "alice").Return()
			},
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: "secret1",
			setupMock: func(mRepo *MockUserRepository, mLimiter *MockLoginLimiter) {
				mLimiter.On("Allow", mock.Anything, "nobody").Return(true)
				mRepo.On("FindByUsername", mock.Anything, "nobody").Return(nil, apperr.ErrNotFound)
				mLimiter.On("RecordFailure", mock.Anything, "nobody").Return()
			},
			expectedError: apperr.ErrUnknownUser,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "secret2",
			setupMock: func(mRepo *MockUserRepository, mLimiter *MockLoginLimiter) {
				mLimiter.On("Allow", mock.Anything, "alice").Return(true)
				mRepo.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
				mLimiter.On("RecordFailure", mock.Anything, "alice").Return()
			},
			expectedError: apperr.ErrBadPassword,
		},
		{
			name:     "throttled",
			username: "alice",
			password: "secret1",
			setupMock: func(mRepo *MockUserRepository, mLimiter *MockLoginLimiter) {
				mLimiter.On("Allow", mock.Anything, "alice").Return(false)
			},
			expectedError: apperr.ErrTooManyAttempts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockLimiter := new(MockLoginLimiter)
			tt.setupMock(mockRepo, mockLimiter)

			jwtService := newTestJWT()
			log, _ := logtest.NewNullLogger()
			service := NewAuthService(mockRepo, jwtService, testHasher, mockLimiter, nil, log)

			token, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, auth.UserClaim{ID: alice.ID.String(), Username: "alice", Blog: "A blog"}, claims.User)
				assert.Equal(t, "alice", claims.Subject)
			}

			mockRepo.AssertExpectations(t)
			mockLimiter.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_MissingCredentials(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	service := NewAuthService(new(MockUserRepository), newTestJWT(), testHasher, nil, nil, log)

	_, err := service.Login(context.Background(), "alice", "")
	var httpErr *apperr.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 400, httpErr.StatusCode)
}

func TestAuthService_Refresh(t *testing.T) {
	jwtService := newTestJWT()
	log, _ := logtest.NewNullLogger()
	service := NewAuthService(new(MockUserRepository), jwtService, testHasher, nil, nil, log)

	token, err := jwtService.Issue(auth.UserClaim{Username: "alice"})
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)

	refreshed, err := service.Refresh(context.Background(), claims)
	require.NoError(t, err)
	newClaims, err := jwtService.ValidateToken(refreshed)
	require.NoError(t, err)
	assert.True(t, newClaims.ExpiresAt.After(claims.ExpiresAt.Time))
	assert.Equal(t, claims.Subject, newClaims.Subject)

	_, err = service.Refresh(context.Background(), nil)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestAuthService_Identify(t *testing.T) {
	userID := uuid.New()

	t.Run("token with id", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		log, _ := logtest.NewNullLogger()
		service := NewAuthService(mockRepo, newTestJWT(), testHasher, nil, nil, log)

		id, err := service.Identify(context.Background(), &auth.Claims{User: auth.UserClaim{ID: userID.String(), Username: "alice"}})
		require.NoError(t, err)
		assert.Equal(t, auth.Identity{UserID: userID, Username: "alice"}, id)
		mockRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
	})

	t.Run("username only", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: userID, Username: "alice"}, nil)
		log, _ := logtest.NewNullLogger()
		service := NewAuthService(mockRepo, newTestJWT(), testHasher, nil, nil, log)

		id, err := service.Identify(context.Background(), &auth.Claims{User: auth.UserClaim{Username: "alice"}})
		require.NoError(t, err)
		assert.Equal(t, userID, id.UserID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown username", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, apperr.ErrNotFound)
		log, _ := logtest.NewNullLogger()
		service := NewAuthService(mockRepo, newTestJWT(), testHasher, nil, nil, log)

		_, err := service.Identify(context.Background(), &auth.Claims{User: auth.UserClaim{Username: "ghost"}})
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})
}
