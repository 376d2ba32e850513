package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up0009, Down0009)
}

func Up0009(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
CREATE TABLE application_question (
    id UUID PRIMARY KEY DEFAULT uuidv7_sub_ms(),
    application_id UUID NOT NULL REFERENCES application (id) ON DELETE CASCADE,
    order_number INTEGER NOT NULL,
    question TEXT NOT NULL,
    required BOOLEAN NOT NULL DEFAULT FALSE,
    type TEXT NOT NULL,
    answer_choices JSONB NOT NULL DEFAULT '[]'::jsonb,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    CONSTRAINT idx_question_application_order UNIQUE (application_id, order_number)
);
`)
	if err != nil {
		return err
	}

	return nil
}

func Down0009(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE application_question;`)
	if err != nil {
		return err
	}

	return nil
}
