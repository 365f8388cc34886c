package dbhelper

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/ray-remotestate/enfes/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mealRowColumns = []string{"id", "cooked_by", "title", "description", "price", "image", "created_at"}

func mealRow(rows *sqlmock.Rows, m models.Meal) *sqlmock.Rows {
	return rows.AddRow(m.ID.String(), m.CookedBy.String(), m.Title, m.Description, m.Price, m.Image, m.CreatedAt)
}

func TestGetMealByID(t *testing.T) {
	mock := setupMockDB(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	want := models.Meal{
		ID:          uuid.New(),
		CookedBy:    uuid.New(),
		Title:       "Mantı",
		Description: "with garlic yoghurt",
		Price:       42.5,
		Image:       "https://img.example/manti.jpg",
		CreatedAt:   created,
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM meals m")).
		WithArgs(want.ID).
		WillReturnRows(mealRow(sqlmock.NewRows(mealRowColumns), want))

	got, err := GetMealByID(context.Background(), want.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestGetMealByIDMissing(t *testing.T) {
	mock := setupMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM meals m")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(mealRowColumns))

	got, err := GetMealByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetMealByIDStoreError(t *testing.T) {
	mock := setupMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM meals m")).
		WithArgs(id).
		WillReturnError(sql.ErrConnDone)

	got, err := GetMealByID(context.Background(), id)
	assert.True(t, errors.Is(err, sql.ErrConnDone))
	assert.Nil(t, got)
}

func TestGetRandomMealsTakesThreeInIDOrder(t *testing.T) {
	mock := setupMockDB(t)
	ids := []string{
		"00000000-0000-0000-0000-000000000001",
		"00000000-0000-0000-0000-000000000002",
		"00000000-0000-0000-0000-000000000003",
	}
	rows := sqlmock.NewRows(mealRowColumns)
	for _, id := range ids {
		rows.AddRow(id, uuid.NewString(), "meal", "", 10.0, "", time.Now())
	}

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY m.id ASC") + `\s+` + regexp.QuoteMeta("LIMIT 3")).
		WillReturnRows(rows)

	meals, err := GetRandomMeals(context.Background())
	require.NoError(t, err)
	require.Len(t, meals, 3)
	for i, m := range meals {
		assert.Equal(t, ids[i], m.ID.String())
	}
}

func TestGetRandomMealsEmpty(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 3")).WillReturnRows(sqlmock.NewRows(mealRowColumns))

	meals, err := GetRandomMeals(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, meals)
	assert.Empty(t, meals)
}

func TestGetRandomMeal(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 1")).WillReturnRows(sqlmock.NewRows(mealRowColumns))

	meal, err := GetRandomMeal(context.Background())
	require.NoError(t, err)
	assert.Nil(t, meal)
}

func TestCreateMealThenGetByID(t *testing.T) {
	mock := setupMockDB(t)
	input := models.CreateMealInput{
		CookedBy:    uuid.New(),
		Title:       "Karnıyarık",
		Description: "stuffed aubergine",
		Price:       55,
		Image:       "karniyarik.jpg",
	}
	id := uuid.New()
	created := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO meals")).
		WithArgs(input.CookedBy, input.Title, input.Description, input.Price, input.Image).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), created))

	meal, err := CreateMeal(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, id, meal.ID)

	mock.ExpectQuery(regexp.QuoteMeta("FROM meals m")).
		WithArgs(id).
		WillReturnRows(mealRow(sqlmock.NewRows(mealRowColumns), *meal))

	fetched, err := GetMealByID(context.Background(), meal.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, input.CookedBy, fetched.CookedBy)
	assert.Equal(t, input.Title, fetched.Title)
	assert.Equal(t, input.Description, fetched.Description)
	assert.Equal(t, input.Price, fetched.Price)
	assert.Equal(t, input.Image, fetched.Image)
}

func TestCreateMealUnknownCook(t *testing.T) {
	mock := setupMockDB(t)
	fkErr := errors.New(`insert or update on table "meals" violates foreign key constraint`)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO meals")).WillReturnError(fkErr)

	meal, err := CreateMeal(context.Background(), models.CreateMealInput{CookedBy: uuid.New(), Title: "x"})
	assert.ErrorIs(t, err, fkErr)
	assert.Nil(t, meal)
}

func TestGetMealsByUserID(t *testing.T) {
	mock := setupMockDB(t)
	cookID := uuid.New()
	rows := sqlmock.NewRows(mealRowColumns)
	for _, title := range []string{"Pilav", "Dolma"} {
		rows.AddRow(uuid.NewString(), cookID.String(), title, "", 30.0, "", time.Now())
	}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE m.cooked_by = $1")).
		WithArgs(cookID).
		WillReturnRows(rows)

	meals, err := GetMealsByUserID(context.Background(), cookID)
	require.NoError(t, err)
	require.Len(t, meals, 2)
	for _, m := range meals {
		assert.Equal(t, cookID, m.CookedBy)
	}
}

func TestGetAllMealsIncludesCook(t *testing.T) {
	mock := setupMockDB(t)
	cookID := uuid.New()
	columns := append(append([]string{}, mealRowColumns...),
		"cook.id", "cook.name", "cook.email", "cook.bio", "cook.created_at")
	rows := sqlmock.NewRows(columns).
		AddRow(uuid.NewString(), cookID.String(), "Börek", "", 20.0, "", time.Now(),
			cookID.String(), "Ayşe", "ayse@example.com", "home cook", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("JOIN cooks c ON c.id = m.cooked_by")).WillReturnRows(rows)

	meals, err := GetAllMeals(context.Background())
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "Börek", meals[0].Title)
	assert.Equal(t, cookID, meals[0].Cook.ID)
	assert.Equal(t, "Ayşe", meals[0].Cook.Name)
	assert.Equal(t, meals[0].CookedBy, meals[0].Cook.ID)
}
