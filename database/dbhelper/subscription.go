package dbhelper

import (
	"context"

	"github.com/google/uuid"
	"github.com/ray-remotestate/enfes/database"
	"github.com/ray-remotestate/enfes/models"
)

const homepageSubscriptionQuery = `
	SELECT s.id, s.cook_id, s.meal_id, s.day_of_week, s.delivery_time, s.featured, s.created_at,
		m.id AS "meal.id", m.cooked_by AS "meal.cooked_by", m.title AS "meal.title",
		m.description AS "meal.description", m.price AS "meal.price", m.image AS "meal.image",
		m.created_at AS "meal.created_at",
		c.id AS "cook.id", c.name AS "cook.name", u.email AS "cook.email",
		c.bio AS "cook.bio", c.created_at AS "cook.created_at"
	FROM subscriptions s
	JOIN meals m ON m.id = s.meal_id
	JOIN cooks c ON c.id = s.cook_id
	JOIN users u ON u.id = c.id`

func GetSubscriptionByID(ctx context.Context, id uuid.UUID) (*models.HomepageSubscription, error) {
	return getOne[models.HomepageSubscription](ctx, homepageSubscriptionQuery+`
	WHERE s.id = $1`, id)
}

func GetFeaturedSubscriptions(ctx context.Context) ([]models.HomepageSubscription, error) {
	return list[models.HomepageSubscription](ctx, homepageSubscriptionQuery+`
	WHERE s.featured
	ORDER BY s.created_at DESC`)
}

// GetTodaysSubscriptions returns the subscriptions delivered on day, e.g. "monday".
func GetTodaysSubscriptions(ctx context.Context, day string) ([]models.HomepageSubscription, error) {
	return list[models.HomepageSubscription](ctx, homepageSubscriptionQuery+`
	WHERE s.day_of_week = $1
	ORDER BY s.delivery_time`, day)
}

func GetCookSubscriptions(ctx context.Context, cookID uuid.UUID) ([]models.SubscriptionWithMeal, error) {
	return list[models.SubscriptionWithMeal](ctx, `
		SELECT s.id, s.cook_id, s.meal_id, s.day_of_week, s.delivery_time, s.featured, s.created_at,
			m.id AS "meal.id", m.cooked_by AS "meal.cooked_by", m.title AS "meal.title",
			m.description AS "meal.description", m.price AS "meal.price", m.image AS "meal.image",
			m.created_at AS "meal.created_at"
		FROM subscriptions s
		JOIN meals m ON m.id = s.meal_id
		WHERE s.cook_id = $1
		ORDER BY s.delivery_time`, cookID)
}

func CreateSubscription(ctx context.Context, input models.CreateSubscriptionInput) (*models.Subscription, error) {
	sub := models.Subscription{
		CookID:       input.CookID,
		MealID:       input.MealID,
		DayOfWeek:    input.DayOfWeek,
		DeliveryTime: input.DeliveryTime,
		Featured:     input.Featured,
	}
	err := database.Restro.QueryRowContext(ctx, `
		INSERT INTO subscriptions (cook_id, meal_id, day_of_week, delivery_time, featured)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		input.CookID, input.MealID, input.DayOfWeek, input.DeliveryTime, input.Featured).
		Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func GetSubscriptionOrderByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionOrderDetails, error) {
	return getOne[models.SubscriptionOrderDetails](ctx, `
		SELECT o.id, o.subscription_id, o.user_id, o.address_id, o.quantity, o.delivery_time, o.created_at,
			s.id AS "subscription.id", s.cook_id AS "subscription.cook_id", s.meal_id AS "subscription.meal_id",
			s.day_of_week AS "subscription.day_of_week", s.delivery_time AS "subscription.delivery_time",
			s.featured AS "subscription.featured", s.created_at AS "subscription.created_at",
			m.id AS "subscription.meal.id", m.cooked_by AS "subscription.meal.cooked_by",
			m.title AS "subscription.meal.title", m.description AS "subscription.meal.description",
			m.price AS "subscription.meal.price", m.image AS "subscription.meal.image",
			m.created_at AS "subscription.meal.created_at",
			c.id AS "subscription.cook.id", c.name AS "subscription.cook.name",
			u.email AS "subscription.cook.email", c.bio AS "subscription.cook.bio",
			c.created_at AS "subscription.cook.created_at"
		FROM subscription_orders o
		JOIN subscriptions s ON s.id = o.subscription_id
		JOIN meals m ON m.id = s.meal_id
		JOIN cooks c ON c.id = s.cook_id
		JOIN users u ON u.id = c.id
		WHERE o.id = $1`, id)
}

func GetUserSubscriptionOrders(ctx context.Context, userID uuid.UUID) ([]models.SubscriptionOrder, error) {
	return list[models.SubscriptionOrder](ctx, `
		SELECT id, subscription_id, user_id, address_id, quantity, delivery_time, created_at
		FROM subscription_orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
}

func CreateSubscriptionOrder(ctx context.Context, input models.CreateSubscriptionOrderInput) (*models.SubscriptionOrder, error) {
	order := models.SubscriptionOrder{
		SubscriptionID: input.SubscriptionID,
		UserID:         input.UserID,
		Quantity:       input.Quantity,
		DeliveryTime:   input.DeliveryTime,
	}
	err := database.Restro.QueryRowContext(ctx, `
		INSERT INTO subscription_orders (subscription_id, user_id, quantity, delivery_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		input.SubscriptionID, input.UserID, input.Quantity, input.DeliveryTime).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SetSubscriptionOrderAddress attaches one of the user's addresses to the user's order. It
// reports false when no such order/address pair exists.
func SetSubscriptionOrderAddress(ctx context.Context, orderID, userID, addressID uuid.UUID) (bool, error) {
	result, err := database.Restro.ExecContext(ctx, `
		UPDATE subscription_orders
		SET address_id = $3
		WHERE id = $1 AND user_id = $2
			AND EXISTS (SELECT 1 FROM addresses WHERE id = $3 AND user_id = $2)`,
		orderID, userID, addressID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
