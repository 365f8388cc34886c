package dbhelper

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ray-remotestate/enfes/database"
	"github.com/ray-remotestate/enfes/models"
	"golang.org/x/crypto/bcrypt"
)

var ErrIncorrectPassword = errors.New("incorrect password")

func CreateUser(tx *sqlx.Tx, name, email, hashedPassword string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(`INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id`,
		name, email, hashedPassword).Scan(&id)
	return id, err
}

func IsUserExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := database.Restro.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER($1) AND archived_at IS NULL`, email).Scan(&count)
	return count > 0, err
}

func AssignRole(tx *sqlx.Tx, userID uuid.UUID, role models.Role) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role %q", role)
	}
	_, err := tx.Exec(`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, userID, role)
	return err
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return getOne[models.User](ctx, `
		SELECT id, name, email, password, created_at, archived_at
		FROM users
		WHERE LOWER(email) = LOWER($1) AND archived_at IS NULL`, email)
}

// GetUserByPassword returns nil when no user has the email and ErrIncorrectPassword when the
// password does not match.
func GetUserByPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := GetUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrIncorrectPassword
	}
	return user, nil
}

func GetUserRolesByUserID(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return list[string](ctx, `
		SELECT role FROM user_roles
		WHERE user_id = $1 AND archived_at IS NULL
		ORDER BY created_at`, userID)
}

func HasRole(ctx context.Context, userID uuid.UUID, role models.Role) (bool, error) {
	var exists bool
	err := database.Restro.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_roles
			WHERE user_id = $1 AND role = $2 AND archived_at IS NULL
		)`, userID, role).Scan(&exists)
	return exists, err
}

// GetUserProfile returns the active user with its roles, or nil.
func GetUserProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := getOne[models.User](ctx, `
		SELECT id, name, email, password, created_at, archived_at
		FROM users
		WHERE id = $1 AND archived_at IS NULL`, userID)
	if err != nil || user == nil {
		return nil, err
	}

	user.Roles, err = GetUserRolesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
