package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateInstagramPosts, downCreateInstagramPosts)
}

func upCreateInstagramPosts(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range PostsSchema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func downCreateInstagramPosts(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, DropPostsTable)
	return err
}
