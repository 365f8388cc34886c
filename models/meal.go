package models

import (
	"time"

	"github.com/google/uuid"
)

// Cook is the provider profile of a user holding the cook role. Its ID is the user's ID.
type Cook struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Bio       string    `db:"bio" json:"bio"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Meal struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CookedBy    uuid.UUID `db:"cooked_by" json:"cooked_by"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Image       string    `db:"image" json:"image"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type MealWithCook struct {
	Meal
	Cook Cook `db:"cook" json:"cook"`
}

type CreateMealInput struct {
	CookedBy    uuid.UUID `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
}
