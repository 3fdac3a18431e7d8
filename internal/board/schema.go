package board

import (
	"context"

	"github.com/uptrace/bun"
)

// CreateSchema creates the board tables if they do not exist. Meant for
// startup against sqlite; a managed deployment would run migrations
// instead.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*Job)(nil),
		(*Application)(nil),
		(*Subscriber)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
