package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up0010, Down0010)
}

func Up0010(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
CREATE TABLE application_submission (
    id UUID PRIMARY KEY DEFAULT uuidv7_sub_ms(),
    application_id UUID NOT NULL REFERENCES application (id) ON DELETE CASCADE,
    user_id UUID NOT NULL REFERENCES app_user (id),
    status TEXT NOT NULL DEFAULT 'NEW',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    CONSTRAINT idx_submission_application_user UNIQUE (application_id, user_id)
);
`)
	if err != nil {
		return err
	}

	return nil
}

func Down0010(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE application_submission;`)
	if err != nil {
		return err
	}

	return nil
}
