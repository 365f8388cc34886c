package models

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	ID           uuid.UUID `db:"id" json:"id"`
	CookID       uuid.UUID `db:"cook_id" json:"cook_id"`
	MealID       uuid.UUID `db:"meal_id" json:"meal_id"`
	DayOfWeek    string    `db:"day_of_week" json:"day_of_week"`
	DeliveryTime string    `db:"delivery_time" json:"delivery_time"` // HH:MM
	Featured     bool      `db:"featured" json:"featured"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// HomepageSubscription is a subscription with its meal and cook attached.
type HomepageSubscription struct {
	Subscription
	Meal Meal `db:"meal" json:"meal"`
	Cook Cook `db:"cook" json:"cook"`
}

type SubscriptionWithMeal struct {
	Subscription
	Meal Meal `db:"meal" json:"meal"`
}

type CreateSubscriptionInput struct {
	CookID       uuid.UUID `json:"-"`
	MealID       uuid.UUID `json:"meal_id"`
	DayOfWeek    string    `json:"day_of_week"`
	DeliveryTime string    `json:"delivery_time"`
	Featured     bool      `json:"featured"`
}

type SubscriptionOrder struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	SubscriptionID uuid.UUID  `db:"subscription_id" json:"subscription_id"`
	UserID         uuid.UUID  `db:"user_id" json:"user_id"`
	AddressID      *uuid.UUID `db:"address_id" json:"address_id,omitempty"`
	Quantity       int        `db:"quantity" json:"quantity"`
	DeliveryTime   time.Time  `db:"delivery_time" json:"delivery_time"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// SubscriptionOrderDetails is an order with its subscription, meal and cook attached.
type SubscriptionOrderDetails struct {
	SubscriptionOrder
	Subscription HomepageSubscription `db:"subscription" json:"subscription"`
}

type CreateSubscriptionOrderInput struct {
	SubscriptionID uuid.UUID `json:"-"`
	UserID         uuid.UUID `json:"-"`
	Quantity       int       `json:"quantity"`
	DeliveryTime   time.Time `json:"-"`
}
