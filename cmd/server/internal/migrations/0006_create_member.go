package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up0006, Down0006)
}

func Up0006(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
CREATE TABLE member (
    id UUID PRIMARY KEY DEFAULT uuidv7_sub_ms(),
    club_id UUID NOT NULL REFERENCES club (id) ON DELETE CASCADE,
    user_id UUID NOT NULL REFERENCES app_user (id),
    role TEXT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    CONSTRAINT idx_member_club_user UNIQUE (club_id, user_id)
);
`)
	if err != nil {
		return err
	}

	return nil
}

func Down0006(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE member;`)
	if err != nil {
		return err
	}

	return nil
}
