package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clubhub/club-api/internal/types"
)

// One submission per user per application, enforced by the composite unique
// index. Saving always targets the row for the caller, never an arbitrary id.
type Submission struct {
	Status types.SubmissionStatus `gorm:"type:text;default:NEW"`
	Model
	ApplicationID uuid.UUID `gorm:"uniqueIndex:idx_submission_application_user"`
	UserID        uuid.UUID `gorm:"uniqueIndex:idx_submission_application_user"`
	Application   Application
	Answers       []Answer `gorm:"foreignKey:SubmissionID"`
}

func (Submission) TableName() string {
	return "application_submission"
}

func (s Submission) GetID() uuid.UUID {
	return s.ID
}

func (s Submission) Response() types.SubmissionResponse {
	answers := make([]types.AnswerDetail, len(s.Answers))
	for i, a := range s.Answers {
		answers[i] = a.Detail()
	}

	return types.SubmissionResponse{
		SubmissionID:  s.ID.String(),
		ApplicationID: s.ApplicationID.String(),
		Status:        s.Status,
		UpdatedAt:     types.NewUnixMilli(s.UpdatedAt),
		Answers:       answers,
	}
}

func (s Submission) Detail() types.SubmissionDetail {
	answers := make([]types.AnswerDetail, len(s.Answers))
	for i, a := range s.Answers {
		answers[i] = a.Detail()
	}

	return types.SubmissionDetail{
		SubmissionID: s.ID.String(),
		Status:       s.Status,
		UpdatedAt:    types.NewUnixMilli(s.UpdatedAt),
		Application:  s.Application.Detail(),
		Answers:      answers,
	}
}

// AnswerMap keys the stored answers by question for validation.
func (s Submission) AnswerMap() map[uuid.UUID]types.AnswerValue {
	m := make(map[uuid.UUID]types.AnswerValue, len(s.Answers))
	for _, a := range s.Answers {
		m[a.QuestionID] = a.Value
	}

	return m
}

type Answer struct {
	Value types.AnswerValue `gorm:"type:jsonb;serializer:json"`
	Model
	SubmissionID uuid.UUID `gorm:"uniqueIndex:idx_answer_submission_question"`
	QuestionID   uuid.UUID `gorm:"uniqueIndex:idx_answer_submission_question"`
}

func (Answer) TableName() string {
	return "submission_answer"
}

func (a Answer) GetID() uuid.UUID {
	return a.ID
}

func (a Answer) Detail() types.AnswerDetail {
	return types.AnswerDetail{
		QuestionID: a.QuestionID.String(),
		Answer:     a.Value,
	}
}

// SubmissionForApplicationUser fetches the caller's submission against an
// application, answers included. Returns (nil, nil) when none exists yet.
func SubmissionForApplicationUser(
	ctx context.Context,
	db *gorm.DB,
	applicationID uuid.UUID,
	userID uuid.UUID,
) (*Submission, error) {
	ctx, span := tracer.Start(ctx, "SubmissionForApplicationUser")
	defer span.End()

	span.SetAttributes(
		attribute.String("applicationID", applicationID.String()),
		attribute.String("userID", userID.String()),
	)

	db = db.WithContext(ctx)

	var submission Submission
	err := db.Preload("Answers").
		Where("application_id = ? AND user_id = ?", applicationID, userID).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get submission")
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return &submission, nil
}

// SubmissionsForUser lists everything the user has saved or submitted, newest
// first, with each application's questions preloaded in display order.
func SubmissionsForUser(
	ctx context.Context,
	db *gorm.DB,
	userID uuid.UUID,
) ([]Submission, error) {
	ctx, span := tracer.Start(ctx, "SubmissionsForUser")
	defer span.End()

	span.SetAttributes(attribute.String("userID", userID.String()))

	db = db.WithContext(ctx)

	var submissions []Submission
	err := db.Preload("Answers").
		Preload("Application").
		Preload("Application.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_number ASC")
		}).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&submissions).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list submissions")
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	return submissions, nil
}

// UpsertSubmission creates or refreshes the (application, user) submission row
// and writes the given answers, all in one transaction. The status moves to
// DRAFT on save and SUBMITTED on submit; callers gate on the current status
// before calling since SUBMITTED rows accept no further writes.
func UpsertSubmission(
	ctx context.Context,
	db *gorm.DB,
	applicationID uuid.UUID,
	userID uuid.UUID,
	status types.SubmissionStatus,
	answers map[uuid.UUID]types.AnswerValue,
) (*Submission, error) {
	ctx, span := tracer.Start(ctx, "UpsertSubmission")
	defer span.End()

	span.SetAttributes(
		attribute.String("applicationID", applicationID.String()),
		attribute.String("userID", userID.String()),
		attribute.String("status", string(status)),
		attribute.Int("answerCount", len(answers)),
	)

	db = db.WithContext(ctx)

	var submission Submission
	err := db.Transaction(func(tx *gorm.DB) error {
		//nolint:govet // shadow: intentionally shadow ctx and span to avoid using the incorrect one.
		ctx, span := tracer.Start(ctx, "UpsertSubmission/Transaction")
		defer span.End()

		tx = tx.WithContext(ctx)

		submission = Submission{
			ApplicationID: applicationID,
			UserID:        userID,
			Status:        status,
		}

		span.AddEvent("upserting submission row")
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "application_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&submission).Error
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to upsert submission")
			return fmt.Errorf("failed to upsert submission: %w", err)
		}

		if len(answers) != 0 {
			rows := make([]Answer, 0, len(answers))
			for questionID, value := range answers {
				rows = append(rows, Answer{
					SubmissionID: submission.ID,
					QuestionID:   questionID,
					Value:        value,
				})
			}

			span.AddEvent("upserting answers")
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "submission_id"}, {Name: "question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&rows).Error
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to upsert answers")
				return fmt.Errorf("failed to upsert answers: %w", err)
			}
		}

		span.AddEvent("reloading submission with answers")
		err = tx.Preload("Answers").First(&submission, submission.ID).Error
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to reload submission")
			return fmt.Errorf("failed to reload submission: %w", err)
		}

		span.SetStatus(codes.Ok, "saved submission")
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save submission")
		return nil, err
	}

	span.SetStatus(codes.Ok, "saved submission")
	return &submission, nil
}
