package dbhelper

import (
	"context"

	"github.com/google/uuid"
	"github.com/ray-remotestate/enfes/database"
	"github.com/ray-remotestate/enfes/models"
)

func GetUserAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return list[models.Address](ctx, `
		SELECT id, user_id, title, address, latitude, longitude, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY created_at`, userID)
}

func CreateAddress(ctx context.Context, input models.CreateAddressInput) (*models.Address, error) {
	address := models.Address{
		UserID:      input.UserID,
		Title:       input.Title,
		AddressLine: input.AddressLine,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
	}
	err := database.Restro.QueryRowContext(ctx, `
		INSERT INTO addresses (user_id, title, address, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		input.UserID, input.Title, input.AddressLine, input.Latitude, input.Longitude).
		Scan(&address.ID, &address.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &address, nil
}
