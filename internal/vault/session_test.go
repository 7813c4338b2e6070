package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passkeeper/internal/common"
)

func TestSession_EmptyVaultAcceptsAnyPassword(t *testing.T) {
	store := newTestStore(t)

	s := NewSession(store)
	require.NoError(t, s.Login([]byte("whatever")))
	assert.True(t, s.Unlocked())

	// a later session on the still-empty vault accepts a different password
	s2 := NewSession(store)
	assert.NoError(t, s2.Login([]byte("something else")))
}

func TestSession_EmptyPasswordRejected(t *testing.T) {
	s := NewSession(newTestStore(t))
	assert.ErrorIs(t, s.Login(nil), common.ErrInvalidMasterPassword)
	assert.False(t, s.Unlocked())
}

func TestSession_NonEmptyVaultGatesOnCreationPassword(t *testing.T) {
	store := newTestStore(t)

	s := NewSession(store)
	require.NoError(t, s.Login([]byte("correct horse")))
	require.NoError(t, s.Put("Gmail", "alice", "secret1"))
	s.Logout()

	wrong := NewSession(store)
	assert.ErrorIs(t, wrong.Login([]byte("battery staple")), common.ErrInvalidMasterPassword)
	assert.False(t, wrong.Unlocked())

	right := NewSession(store)
	require.NoError(t, right.Login([]byte("correct horse")))
	got, err := right.Reveal("Gmail")
	require.NoError(t, err)
	assert.Equal(t, "secret1", got)
}

func TestSession_LockedOperationsFail(t *testing.T) {
	s := NewSession(newTestStore(t))

	assert.ErrorIs(t, s.Put("a", "b", "c"), ErrVaultLocked)
	_, err := s.GetAll()
	assert.ErrorIs(t, err, ErrVaultLocked)
	_, err = s.Export()
	assert.ErrorIs(t, err, ErrVaultLocked)
	_, err = s.Search("x")
	assert.ErrorIs(t, err, ErrVaultLocked)
	assert.ErrorIs(t, s.Delete("a"), ErrVaultLocked)
	assert.ErrorIs(t, s.ChangeMasterPassword([]byte("a"), []byte("b")), ErrVaultLocked)
}

func TestSession_LogoutDiscardsKey(t *testing.T) {
	s := NewSession(newTestStore(t))
	require.NoError(t, s.Login([]byte("pw")))

	s.Logout()
	assert.False(t, s.Unlocked())
	_, err := s.GetAll()
	assert.ErrorIs(t, err, ErrVaultLocked)
}

func TestSession_ChangeMasterPassword(t *testing.T) {
	store := newTestStore(t)

	s := NewSession(store)
	require.NoError(t, s.Login([]byte("old password")))
	require.NoError(t, s.Put("Gmail", "alice", "secret1"))
	require.NoError(t, s.Put("GitHub", "bob", "secret2"))

	oldSalt, err := store.Salt()
	require.NoError(t, err)

	require.NoError(t, s.ChangeMasterPassword([]byte("old password"), []byte("new password")))

	// salt is rotated together with the key
	newSalt, err := store.Salt()
	require.NoError(t, err)
	assert.NotEqual(t, oldSalt, newSalt)

	// current session keeps working under the new key
	got, err := s.Reveal("Gmail")
	require.NoError(t, err)
	assert.Equal(t, "secret1", got)

	// fresh sessions: old password rejected, new accepted
	s.Logout()
	assert.ErrorIs(t, NewSession(store).Login([]byte("old password")), common.ErrInvalidMasterPassword)

	fresh := NewSession(store)
	require.NoError(t, fresh.Login([]byte("new password")))
	exported, err := fresh.Export()
	require.NoError(t, err)
	assert.Len(t, exported, 2)
}

func TestSession_ChangeMasterPasswordWrongOld(t *testing.T) {
	store := newTestStore(t)

	s := NewSession(store)
	require.NoError(t, s.Login([]byte("old password")))
	require.NoError(t, s.Put("Gmail", "alice", "secret1"))

	before, err := store.List()
	require.NoError(t, err)
	saltBefore, err := store.Salt()
	require.NoError(t, err)

	err = s.ChangeMasterPassword([]byte("not it"), []byte("new password"))
	assert.ErrorIs(t, err, common.ErrInvalidMasterPassword)

	// nothing mutated, session still usable under the original key
	after, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	saltAfter, err := store.Salt()
	require.NoError(t, err)
	assert.Equal(t, saltBefore, saltAfter)

	got, err := s.Reveal("Gmail")
	require.NoError(t, err)
	assert.Equal(t, "secret1", got)
}

func TestSession_SaltsDifferAcrossVaults(t *testing.T) {
	storeA := newTestStore(t)
	storeB := newTestStore(t)

	require.NoError(t, NewSession(storeA).Login([]byte("pw")))
	require.NoError(t, NewSession(storeB).Login([]byte("pw")))

	saltA, err := storeA.Salt()
	require.NoError(t, err)
	saltB, err := storeB.Salt()
	require.NoError(t, err)
	assert.NotEqual(t, saltA, saltB)
}

func TestSession_ClearAll(t *testing.T) {
	store := newTestStore(t)

	s := NewSession(store)
	require.NoError(t, s.Login([]byte("pw")))
	require.NoError(t, s.Put("Gmail", "alice", "secret1"))

	require.NoError(t, s.ClearAll())
	assert.False(t, s.Unlocked())

	entries, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	salt, err := store.Salt()
	require.NoError(t, err)
	assert.Nil(t, salt)
}
