package dbhelper

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/ray-remotestate/enfes/database"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	previous := database.Restro
	database.Restro = sqlx.NewDb(db, "postgres")
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
		database.Restro = previous
	})
	return mock
}
