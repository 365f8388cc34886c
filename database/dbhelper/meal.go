package dbhelper

import (
	"context"

	"github.com/google/uuid"
	"github.com/ray-remotestate/enfes/database"
	"github.com/ray-remotestate/enfes/models"
)

const mealColumns = `m.id, m.cooked_by, m.title, m.description, m.price, m.image, m.created_at`

func GetMealByID(ctx context.Context, id uuid.UUID) (*models.Meal, error) {
	return getOne[models.Meal](ctx, `
		SELECT `+mealColumns+`
		FROM meals m
		WHERE m.id = $1`, id)
}

// GetRandomMeals returns up to three meals in ascending id order.
func GetRandomMeals(ctx context.Context) ([]models.Meal, error) {
	return list[models.Meal](ctx, `
		SELECT `+mealColumns+`
		FROM meals m
		ORDER BY m.id ASC
		LIMIT 3`)
}

func GetRandomMeal(ctx context.Context) (*models.Meal, error) {
	return getOne[models.Meal](ctx, `
		SELECT `+mealColumns+`
		FROM meals m
		LIMIT 1`)
}

func GetAllMeals(ctx context.Context) ([]models.MealWithCook, error) {
	return list[models.MealWithCook](ctx, `
		SELECT `+mealColumns+`,
			c.id AS "cook.id", c.name AS "cook.name", u.email AS "cook.email",
			c.bio AS "cook.bio", c.created_at AS "cook.created_at"
		FROM meals m
		JOIN cooks c ON c.id = m.cooked_by
		JOIN users u ON u.id = c.id
		ORDER BY m.created_at DESC`)
}

// CreateMeal inserts the meal as given; constraint violations surface as errors from the store.
func CreateMeal(ctx context.Context, input models.CreateMealInput) (*models.Meal, error) {
	meal := models.Meal{
		CookedBy:    input.CookedBy,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
	}
	err := database.Restro.QueryRowContext(ctx, `
		INSERT INTO meals (cooked_by, title, description, price, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		input.CookedBy, input.Title, input.Description, input.Price, input.Image).
		Scan(&meal.ID, &meal.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func GetMealsByUserID(ctx context.Context, cookedBy uuid.UUID) ([]models.Meal, error) {
	return list[models.Meal](ctx, `
		SELECT `+mealColumns+`
		FROM meals m
		WHERE m.cooked_by = $1
		ORDER BY m.created_at DESC`, cookedBy)
}
