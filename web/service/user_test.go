package service

import (
	"path/filepath"
	"testing"

	"github.com/Rajeshwari-1K/AgriSense-AI/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	err := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.CloseDB()
	})
}

func TestCreateAndCheckUser(t *testing.T) {
	setupTestDB(t)
	s := UserService{}

	id, err := s.CreateUser("Asha", "a@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	user := s.CheckUser("a@x.com", "secret1")
	require.NotNil(t, user)
	assert.Equal(t, id, user.Id)
	assert.Equal(t, "Asha", user.Name)
	assert.NotEqual(t, "secret1", user.Password, "password must be stored hashed")

	assert.Nil(t, s.CheckUser("a@x.com", "wrong"), "wrong password must not authenticate")
	assert.Nil(t, s.CheckUser("nobody@x.com", "secret1"), "unknown email must not authenticate")
}

func TestDuplicateEmailRejected(t *testing.T) {
	setupTestDB(t)
	s := UserService{}

	_, err := s.CreateUser("Asha", "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = s.CreateUser("Imposter", "a@x.com", "other66")
	assert.ErrorIs(t, err, ErrEmailTaken)

	count, err := s.CountUsers()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	original, err := s.GetUserByEmail("a@x.com")
	require.NoError(t, err)
	require.NotNil(t, original)
	assert.Equal(t, "Asha", original.Name, "original account must be unaffected")
}

func TestTouchLastLogin(t *testing.T) {
	setupTestDB(t)
	s := UserService{}

	id, err := s.CreateUser("Asha", "a@x.com", "secret1")
	require.NoError(t, err)

	user, err := s.GetUserByEmail("a@x.com")
	require.NoError(t, err)
	assert.Nil(t, user.LastLogin, "last login starts empty")

	require.NoError(t, s.TouchLastLogin(id))

	user, err = s.GetUserByEmail("a@x.com")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)
}
