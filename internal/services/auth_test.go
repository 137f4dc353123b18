package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinematicketing/internal/domain"
)

// fakeHasher hashes by concatenation so tests stay deterministic.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }
func (fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}
func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

// fakeTokens encodes the user id directly in the token string.
type fakeTokens struct{}

func (fakeTokens) Issue(userID int64, email string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("tok-%d", userID), nil
}

func (fakeTokens) Verify(token string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(token, "tok-"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad token")
	}
	return id, nil
}

func newAuthFixture() (domain.AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, fakeHasher{}, fakeTokens{}, fakeTokens{}, time.Hour, testTimeout)
	return svc, repo
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("success normalizes email", func(t *testing.T) {
		svc, repo := newAuthFixture()
		user, err := svc.SignUp(ctx, "  OP@Cinema.Example ", "long-enough", "Operator")
		require.NoError(t, err)
		assert.Equal(t, "op@cinema.example", user.Email)
		assert.Equal(t, "salt:long-enough", user.PasswordHash)
		_, ok := repo.byEmail["op@cinema.example"]
		assert.True(t, ok)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc, _ := newAuthFixture()
		_, err := svc.SignUp(ctx, "not-an-email", "long-enough", "Operator")
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("short password", func(t *testing.T) {
		svc, _ := newAuthFixture()
		_, err := svc.SignUp(ctx, "op@cinema.example", "short", "Operator")
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newAuthFixture()
		_, err := svc.SignUp(ctx, "op@cinema.example", "long-enough", "Operator")
		require.NoError(t, err)
		_, err = svc.SignUp(ctx, "op@cinema.example", "long-enough", "Operator")
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture()
	user, err := svc.SignUp(ctx, "op@cinema.example", "long-enough", "Operator")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "op@cinema.example", "long-enough")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("tok-%d", user.ID), token)

	_, err = svc.Login(ctx, "op@cinema.example", "wrong password")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost@cinema.example", "long-enough")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture()
	user, err := svc.SignUp(ctx, "op@cinema.example", "long-enough", "Operator")
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, fmt.Sprintf("tok-%d", user.ID))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("tok-%d", user.ID), fresh)

	_, err = svc.Refresh(ctx, "garbage")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Refresh(ctx, "tok-999")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
