package dbhelper

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ray-remotestate/enfes/models"
)

func CreateCook(tx *sqlx.Tx, userID uuid.UUID, name, bio string) error {
	_, err := tx.Exec(`INSERT INTO cooks (id, name, bio) VALUES ($1, $2, $3)`, userID, name, bio)
	return err
}

func GetCookByID(ctx context.Context, id uuid.UUID) (*models.Cook, error) {
	return getOne[models.Cook](ctx, `
		SELECT c.id, c.name, u.email, c.bio, c.created_at
		FROM cooks c
		JOIN users u ON u.id = c.id
		WHERE c.id = $1`, id)
}
