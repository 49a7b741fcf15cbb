package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"intranet/internal/model"
	repoMocks "intranet/internal/repository/mocks"
)

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("123"), bcrypt.MinCost)
	require.NoError(t, err)

	peter := &model.User{
		ID:           1,
		Name:         "Peter Jensen",
		Email:        "peter@gutfelt.com",
		Role:         "Medarbejder",
		PasswordHash: string(hash),
	}

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByEmail", ctx, "peter@gutfelt.com").Return(peter, nil)

		user, err := NewAuthService(mRepo).Login(ctx, "peter@gutfelt.com", "123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "Medarbejder", user.Role)
		mRepo.AssertExpectations(t)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByEmail", ctx, "nobody@gutfelt.com").Return(nil, sql.ErrNoRows)
		mRepo.On("FindByEmail", ctx, "peter@gutfelt.com").Return(peter, nil)

		svc := NewAuthService(mRepo)

		_, errUnknown := svc.Login(ctx, "nobody@gutfelt.com", "123")
		_, errWrongPw := svc.Login(ctx, "peter@gutfelt.com", "wrong")

		assert.ErrorIs(t, errUnknown, ErrInvalidCredential)
		assert.ErrorIs(t, errWrongPw, ErrInvalidCredential)
		assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	})

	t.Run("store failure is not an auth failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByEmail", ctx, "peter@gutfelt.com").Return(nil, errors.New("connection refused"))

		_, err := NewAuthService(mRepo).Login(ctx, "peter@gutfelt.com", "123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredential)
	})
}
