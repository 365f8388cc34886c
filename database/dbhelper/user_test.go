package dbhelper

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userColumns = []string{"id", "name", "email", "password", "created_at", "archived_at"}

func TestGetUserByPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	id := uuid.New()

	t.Run("match", func(t *testing.T) {
		mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
			WithArgs("ali@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(id.String(), "Ali", "ali@example.com", string(hash), time.Now(), nil))

		user, err := GetUserByPassword(context.Background(), "ali@example.com", "secret1")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, id, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(id.String(), "Ali", "ali@example.com", string(hash), time.Now(), nil))

		user, err := GetUserByPassword(context.Background(), "ali@example.com", "nope")
		assert.ErrorIs(t, err, ErrIncorrectPassword)
		assert.Nil(t, user)
	})

	t.Run("unknown email", func(t *testing.T) {
		mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
			WillReturnRows(sqlmock.NewRows(userColumns))

		user, err := GetUserByPassword(context.Background(), "nobody@example.com", "secret1")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestGetUserProfileLoadsRoles(t *testing.T) {
	mock := setupMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND archived_at IS NULL")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "Zeynep", "zeynep@example.com", "hash", time.Now(), nil))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT role FROM user_roles")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("user").AddRow("cook"))

	user, err := GetUserProfile(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, []string{"user", "cook"}, user.Roles)
}

func TestGetUserAddresses(t *testing.T) {
	mock := setupMockDB(t)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM addresses")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "address", "latitude", "longitude", "created_at"}).
			AddRow(uuid.NewString(), userID.String(), "Home", "Moda Cd. 1, Kadıköy", 40.98, 29.02, time.Now()))

	addresses, err := GetUserAddresses(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.Equal(t, "Home", addresses[0].Title)
	assert.Equal(t, userID, addresses[0].UserID)
}
