package db

import (
	"context"

	"github.com/uptrace/bun"

	"ms-events/internal/models"
	"ms-events/internal/storage"
)

type DB struct {
	Bun *bun.DB
}

// CreateUser inserts a new user and fills in the generated user_id. Email
// uniqueness is deliberately not enforced.
func (d *DB) CreateUser(ctx context.Context, user *models.User) error {
	_, err := d.Bun.NewInsert().Model(user).Exec(ctx)
	return storage.Translate(err)
}
