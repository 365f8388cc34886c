package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/ray-remotestate/enfes/database"
	"github.com/ray-remotestate/enfes/middlewares"
	"github.com/stretchr/testify/require"
)

// friday, 10:00 UTC
var fixedNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	previousDB, previousNow := database.Restro, now
	database.Restro = sqlx.NewDb(db, "postgres")
	now = func() time.Time { return fixedNow }
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
		database.Restro = previousDB
		now = previousNow
	})
	return mock
}

func newRequest(method, target string, body io.Reader, vars map[string]string, session *middlewares.Session) *http.Request {
	r := httptest.NewRequest(method, target, body)
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	if session != nil {
		r = r.WithContext(middlewares.WithSession(r.Context(), session))
	}
	return r
}

func jsonRequest(method, target, body string, vars map[string]string, session *middlewares.Session) *http.Request {
	r := newRequest(method, target, strings.NewReader(body), vars, session)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", "application/json")
	return r
}

func formRequest(target, body string, vars map[string]string, session *middlewares.Session) *http.Request {
	r := newRequest(http.MethodPost, target, strings.NewReader(body), vars, session)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func servePage(t *testing.T, path string, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	for _, page := range Pages {
		if page.Path == path {
			rec := httptest.NewRecorder()
			ServePage(page).ServeHTTP(rec, r)
			return rec
		}
	}
	t.Fatalf("no page registered for %s", path)
	return nil
}

func userSession() *middlewares.Session {
	return &middlewares.Session{UserID: uuid.New(), Roles: []string{"user"}}
}

func cookSession() *middlewares.Session {
	return &middlewares.Session{UserID: uuid.New(), Roles: []string{"user", "cook"}}
}

var (
	userColumns = []string{"id", "name", "email", "password", "created_at", "archived_at"}

	homepageSubscriptionColumns = []string{
		"id", "cook_id", "meal_id", "day_of_week", "delivery_time", "featured", "created_at",
		"meal.id", "meal.cooked_by", "meal.title", "meal.description", "meal.price", "meal.image", "meal.created_at",
		"cook.id", "cook.name", "cook.email", "cook.bio", "cook.created_at",
	}

	orderDetailsColumns = []string{
		"id", "subscription_id", "user_id", "address_id", "quantity", "delivery_time", "created_at",
		"subscription.id", "subscription.cook_id", "subscription.meal_id", "subscription.day_of_week",
		"subscription.delivery_time", "subscription.featured", "subscription.created_at",
		"subscription.meal.id", "subscription.meal.cooked_by", "subscription.meal.title",
		"subscription.meal.description", "subscription.meal.price", "subscription.meal.image",
		"subscription.meal.created_at",
		"subscription.cook.id", "subscription.cook.name", "subscription.cook.email",
		"subscription.cook.bio", "subscription.cook.created_at",
	}

	mealColumns = []string{"id", "cooked_by", "title", "description", "price", "image", "created_at"}

	addressColumns = []string{"id", "user_id", "title", "address", "latitude", "longitude", "created_at"}
)

func expectUserProfile(mock sqlmock.Sqlmock, session *middlewares.Session) {
	mock.ExpectQuery(`FROM users\s+WHERE id = \$1`).
		WithArgs(session.UserID).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(session.UserID.String(), "Elif", "elif@example.com", "hash", fixedNow, nil))
	roles := sqlmock.NewRows([]string{"role"})
	for _, role := range session.Roles {
		roles.AddRow(role)
	}
	mock.ExpectQuery(`SELECT role FROM user_roles`).
		WithArgs(session.UserID).
		WillReturnRows(roles)
}
