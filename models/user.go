package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleCook  Role = "cook"
	RoleUser  Role = "user"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleCook || r == RoleUser
}

// HasRole reports whether roles contains role, ignoring case.
func HasRole(roles []string, role Role) bool {
	for _, r := range roles {
		if Role(strings.ToLower(r)) == role {
			return true
		}
	}
	return false
}

type User struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Email      string     `db:"email" json:"email"`
	Password   string     `db:"password" json:"-"`
	Roles      []string   `db:"-" json:"roles"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	ArchivedAt *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

type Address struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	AddressLine string    `db:"address" json:"address"`
	Latitude    float64   `db:"latitude" json:"latitude"`
	Longitude   float64   `db:"longitude" json:"longitude"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreateAddressInput struct {
	UserID      uuid.UUID `json:"-"`
	Title       string    `json:"title"`
	AddressLine string    `json:"address"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
}
