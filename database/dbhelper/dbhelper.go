package dbhelper

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ray-remotestate/enfes/database"
)

// getOne scans a single row into a new T. A missing row is reported as (nil, nil).
func getOne[T any](ctx context.Context, query string, args ...interface{}) (*T, error) {
	var dest T
	err := database.Restro.GetContext(ctx, &dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dest, nil
}

func list[T any](ctx context.Context, query string, args ...interface{}) ([]T, error) {
	dest := make([]T, 0)
	if err := database.Restro.SelectContext(ctx, &dest, query, args...); err != nil {
		return nil, err
	}
	return dest, nil
}
