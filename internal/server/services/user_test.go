package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passkeeper/internal/common"
)

func TestUserService_RegisterAndLogin(t *testing.T) {
	us, _, _, _ := newServices(t, testConfig())
	ctx := context.Background()

	user, err := us.Register(ctx, "bob", "pw1234567")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "pw1234567", user.PasswordHash)
	assert.NotEmpty(t, user.EncryptedKey)

	_, err = us.Login(ctx, "bob", "wrong password")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	token, err := us.Login(ctx, "bob", "pw1234567")
	require.NoError(t, err)

	userID, err := us.Authorize(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	us, _, _, _ := newServices(t, testConfig())
	ctx := context.Background()

	_, err := us.Register(ctx, "bob", "pw1234567")
	require.NoError(t, err)

	_, err = us.Register(ctx, "bob", "otherpassword")
	assert.ErrorIs(t, err, common.ErrUsernameTaken)
}

func TestUserService_RegisterEmptyInputs(t *testing.T) {
	us, _, _, _ := newServices(t, testConfig())

	_, err := us.Register(context.Background(), "", "pw")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, err = us.Register(context.Background(), "bob", "")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestUserService_LoginUnknownUser(t *testing.T) {
	us, _, _, _ := newServices(t, testConfig())

	_, err := us.Login(context.Background(), "ghost", "pw")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestUserService_ExpiredToken(t *testing.T) {
	// a validity in the past simulates authorizing after the 24h lifetime
	cfg := testConfig()
	cfg.AccessTokenValidityDuration = -time.Second

	us, _, _, _ := newServices(t, cfg)
	ctx := context.Background()

	_, err := us.Register(ctx, "bob", "pw1234567")
	require.NoError(t, err)

	token, err := us.Login(ctx, "bob", "pw1234567")
	require.NoError(t, err)

	_, err = us.Authorize(token)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestUserService_AuthorizeGarbageToken(t *testing.T) {
	us, _, _, _ := newServices(t, testConfig())

	_, err := us.Authorize("not.a.token")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestUserService_ChangePassword(t *testing.T) {
	us, _, _, _ := newServices(t, testConfig())
	ctx := context.Background()

	user, err := us.Register(ctx, "bob", "pw1234567")
	require.NoError(t, err)

	err = us.ChangePassword(ctx, user.ID, "wrong", "newpassword1")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	require.NoError(t, us.ChangePassword(ctx, user.ID, "pw1234567", "newpassword1"))

	_, err = us.Login(ctx, "bob", "pw1234567")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, err = us.Login(ctx, "bob", "newpassword1")
	assert.NoError(t, err)
}

func TestUserService_ChangePasswordKeepsDataKey(t *testing.T) {
	us, es, _, _ := newServices(t, testConfig())
	ctx := context.Background()

	user, err := us.Register(ctx, "bob", "pw1234567")
	require.NoError(t, err)

	_, err = es.Add(ctx, user.ID, "Gmail", "bob", "secret1")
	require.NoError(t, err)

	require.NoError(t, us.ChangePassword(ctx, user.ID, "pw1234567", "newpassword1"))

	// entries still decrypt: the data key is independent of the login password
	exported, err := es.Export(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, exported, 1)
	assert.Equal(t, "secret1", exported[0].Secret)
}
