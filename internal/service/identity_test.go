package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dkovalev/pixelfeed/internal/mocks"
	"github.com/dkovalev/pixelfeed/internal/model"
	"github.com/dkovalev/pixelfeed/internal/testutil"
)

func TestIdentity_Resolve_Success(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	tokens := &mocks.TokenManager{}

	userID := uuid.New()
	tokens.On("Parse", "good-token").Return(userID, nil)
	userStore.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, Username: "alice"}, nil)

	s := NewIdentity(userStore, tokens, testutil.MakeNoopLogger())

	user, err := s.Resolve(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
}

func TestIdentity_Resolve_TokenErrorsPassThrough(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		parseErr error
	}{
		{name: "expired", parseErr: model.ErrTokenExpired},
		{name: "invalid", parseErr: model.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := &mocks.UserStore{}
			tokens := &mocks.TokenManager{}
			tokens.On("Parse", "bad-token").Return(uuid.Nil, tt.parseErr)

			s := NewIdentity(userStore, tokens, testutil.MakeNoopLogger())

			_, err := s.Resolve(ctx, "bad-token")
			require.ErrorIs(t, err, tt.parseErr)
			userStore.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestIdentity_Resolve_DeletedUser(t *testing.T) {
	// A structurally valid token for a user that no longer exists is not a
	// token error.
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	tokens := &mocks.TokenManager{}

	userID := uuid.New()
	tokens.On("Parse", "orphan-token").Return(userID, nil)
	userStore.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)

	s := NewIdentity(userStore, tokens, testutil.MakeNoopLogger())

	_, err := s.Resolve(ctx, "orphan-token")
	require.ErrorIs(t, err, model.ErrUserNotFound)
	require.NotErrorIs(t, err, model.ErrTokenInvalid)
	require.NotErrorIs(t, err, model.ErrTokenExpired)
}

func TestIdentity_Resolve_StoreError(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	tokens := &mocks.TokenManager{}

	userID := uuid.New()
	tokens.On("Parse", "good-token").Return(userID, nil)
	userStore.On("GetByID", mock.Anything, userID).Return(model.User{}, errors.New("connection reset"))

	s := NewIdentity(userStore, tokens, testutil.MakeNoopLogger())

	_, err := s.Resolve(ctx, "good-token")
	require.Error(t, err)
	require.NotErrorIs(t, err, model.ErrUserNotFound)
}
