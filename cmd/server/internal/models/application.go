package models

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clubhub/club-api/internal/types"
)

type Application struct {
	Name        string
	Description string
	Status      types.ApplicationStatus `gorm:"type:text;default:DRAFT"`
	Model
	ClubID    uuid.UUID `gorm:"index"`
	Deadline  datatypes.Null[time.Time]
	Questions []Question `gorm:"foreignKey:ApplicationID"`
}

func (Application) TableName() string {
	return "application"
}

func (a Application) GetID() uuid.UUID {
	return a.ID
}

// AcceptingSubmissions reports whether answers may be written right now.
// Drafts and closed applications never accept; an open application stops
// accepting once its deadline passes.
func (a Application) AcceptingSubmissions(now time.Time) bool {
	if a.Status != types.ApplicationStatusOpen {
		return false
	}

	if a.Deadline.Valid && now.After(a.Deadline.V) {
		return false
	}

	return true
}

func (a Application) Detail() types.ApplicationDetail {
	questions := make([]types.QuestionDetail, len(a.Questions))
	for i, q := range a.Questions {
		questions[i] = q.Detail()
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].OrderNumber < questions[j].OrderNumber
	})

	var deadline *types.UnixMilli
	if t := PtrFromNull(a.Deadline); t != nil {
		d := types.NewUnixMilli(*t)
		deadline = &d
	}

	return types.ApplicationDetail{
		ID:          a.ID.String(),
		ClubID:      a.ClubID.String(),
		Name:        a.Name,
		Description: a.Description,
		Status:      a.Status,
		Deadline:    deadline,
		Questions:   questions,
	}
}

type Question struct {
	Question      string
	Type          types.QuestionType              `gorm:"type:text"`
	AnswerChoices datatypes.JSONSlice[string]
	Model
	ApplicationID uuid.UUID `gorm:"uniqueIndex:idx_question_application_order"`
	OrderNumber   int       `gorm:"uniqueIndex:idx_question_application_order"`
	Required      bool
}

func (Question) TableName() string {
	return "application_question"
}

func (q Question) GetID() uuid.UUID {
	return q.ID
}

func (q Question) Detail() types.QuestionDetail {
	return types.QuestionDetail{
		ID:            q.ID.String(),
		OrderNumber:   q.OrderNumber,
		Question:      q.Question,
		Required:      q.Required,
		Type:          q.Type,
		AnswerChoices: q.AnswerChoices,
	}
}

// ApplicationByID loads an application with its questions in display order.
func ApplicationByID(
	ctx context.Context,
	db *gorm.DB,
	id uuid.UUID,
) (*Application, error) {
	ctx, span := tracer.Start(ctx, "ApplicationByID")
	defer span.End()

	span.SetAttributes(attribute.String("applicationID", id.String()))

	db = db.WithContext(ctx)

	var application Application
	err := db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_number ASC")
	}).First(&application, id).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get application")
		return nil, err
	}

	return &application, nil
}

// ReplaceQuestions swaps the application's full question list. Existing
// answers referencing the old questions are removed with them, matching the
// destructive nature of a question edit.
func ReplaceQuestions(
	ctx context.Context,
	db *gorm.DB,
	applicationID uuid.UUID,
	questions []Question,
) error {
	ctx, span := tracer.Start(ctx, "ReplaceQuestions")
	defer span.End()

	span.SetAttributes(
		attribute.String("applicationID", applicationID.String()),
		attribute.Int("questionCount", len(questions)),
	)

	db = db.WithContext(ctx)

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(
			"submission_id IN (?)",
			tx.Model(&Submission{}).Select("id").Where("application_id = ?", applicationID),
		).Delete(&Answer{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete answers for replaced questions: %w", err)
		}

		err = tx.Where("application_id = ?", applicationID).Delete(&Question{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete existing questions: %w", err)
		}

		if len(questions) == 0 {
			return nil
		}

		for i := range questions {
			questions[i].ApplicationID = applicationID
		}

		err = tx.Create(&questions).Error
		if err != nil {
			return fmt.Errorf("failed to insert replacement questions: %w", err)
		}

		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to replace questions")
		return err
	}

	span.SetStatus(codes.Ok, "replaced questions")
	return nil
}

// MissingRequired returns the ids of required questions with no usable answer.
// An empty string or an empty selection does not satisfy a required question.
func MissingRequired(
	questions []Question,
	answers map[uuid.UUID]types.AnswerValue,
) []uuid.UUID {
	var missing []uuid.UUID
	for _, q := range questions {
		if !q.Required {
			continue
		}

		answer, ok := answers[q.ID]
		if !ok || answer.Empty() {
			missing = append(missing, q.ID)
		}
	}

	return missing
}

// ShapeMismatches maps question id to expected shape for every answer whose
// payload shape disagrees with its question type. Answers to unknown question
// ids are reported as mismatches too.
func ShapeMismatches(
	questions []Question,
	answers map[uuid.UUID]types.AnswerValue,
) map[uuid.UUID]string {
	byID := make(map[uuid.UUID]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	mismatches := make(map[uuid.UUID]string)
	for id, answer := range answers {
		q, ok := byID[id]
		if !ok {
			mismatches[id] = "question does not belong to this application"
			continue
		}

		if !answer.MatchesType(q.Type) {
			if q.Type.ListAnswered() {
				mismatches[id] = "expected a list of strings"
			} else {
				mismatches[id] = "expected a string"
			}
		}
	}

	if len(mismatches) == 0 {
		return nil
	}

	return mismatches
}
