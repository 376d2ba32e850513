package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	srverr "github.com/clubhub/club-api/cmd/server/internal/error"
	"github.com/clubhub/club-api/cmd/server/internal/models"
	"github.com/clubhub/club-api/cmd/server/internal/response"
	"github.com/clubhub/club-api/internal/audit"
	"github.com/clubhub/club-api/internal/types"
	"github.com/clubhub/club-api/internal/validator"
)

// Keys incoming answers by question id. Duplicate question ids in one request
// are ambiguous, so they fail instead of silently picking a winner.
func answerMap(answers []types.SubmissionAnswer) (map[uuid.UUID]types.AnswerValue, error) {
	m := make(map[uuid.UUID]types.AnswerValue, len(answers))
	for _, answer := range answers {
		questionID, err := uuid.Parse(answer.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("invalid question id %q", answer.QuestionID)
		}

		if _, ok := m[questionID]; ok {
			return nil, fmt.Errorf("duplicate answer for question %s", questionID)
		}

		payload, err := json.Marshal(answer.Answer)
		if err != nil {
			return nil, fmt.Errorf("unencodable answer for question %s", questionID)
		}
		if !validator.ValidateAnswerSize(len(payload)) {
			return nil, fmt.Errorf("answer for question %s exceeds the size limit", questionID)
		}

		m[questionID] = answer.Answer
	}

	return m, nil
}

func (h *Handler) SaveOrSubmit(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "SaveOrSubmit")
	defer span.End()

	span.AddEvent("received submission save request")

	user, ok := c.Get("user").(*models.User)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("user: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	application, ok := c.Get("application").(*models.Application)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("application: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	requestTime, ok := c.Get("time").(time.Time)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("time: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	userID := user.ID.String()
	applicationID := application.ID.String()
	clubID := application.ClubID.String()

	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("application.id", applicationID),
		attribute.String("application.status", string(application.Status)),
		attribute.Int64("request.timestamp_ms", requestTime.UnixMilli()),
	)

	var rdata types.SaveSubmissionRequest

	span.AddEvent("parsing request body")
	err := c.Bind(&rdata)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to parse request data")
		span.RecordError(err)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.StringError("failed to parse request data"),
		)
	}

	span.AddEvent("validating request body")
	err = c.Validate(rdata)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to validate request data")
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, types.ValidationError(err))
	}

	answers, err := answerMap(rdata.Answers)
	if err != nil {
		span.SetStatus(codes.Ok, "invalid answer list")
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, types.StringError(err.Error()))
	}

	span.AddEvent("checking application accepts submissions")
	if !application.AcceptingSubmissions(requestTime) {
		span.AddEvent("not accepting", trace.WithAttributes(
			attribute.String("status", string(application.Status)),
			attribute.Bool("deadline.set", application.Deadline.Valid),
		))
		span.SetStatus(codes.Ok, "application is not accepting submissions")
		span.RecordError(nil)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.StringError("application is not accepting submissions"),
		)
	}

	span.AddEvent("loading application questions")
	loaded, err := models.ApplicationByID(ctx, h.DB, application.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load application")
		return response.InternalServerError
	}

	span.AddEvent("checking answer shapes against question types")
	mismatches := models.ShapeMismatches(loaded.Questions, answers)
	if mismatches != nil {
		fields := make(map[string]string, len(mismatches))
		for id, reason := range mismatches {
			fields[id.String()] = reason
		}

		span.SetStatus(codes.Ok, "answer shape mismatch")
		span.RecordError(nil)
		return echo.NewHTTPError(http.StatusBadRequest, types.AnswerShapeError(fields))
	}

	span.AddEvent("fetching existing submission")
	existing, err := models.SubmissionForApplicationUser(ctx, h.DB, application.ID, user.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch existing submission")
		return response.InternalServerError
	}

	if existing != nil && existing.Status == types.SubmissionStatusSubmitted {
		span.SetStatus(codes.Ok, "submission already final")
		span.RecordError(nil)
		return response.ConflictError
	}

	auditContext := audit.Context{ClubID: &clubID, UserID: &userID}

	status := types.SubmissionStatusDraft
	if rdata.Submit {
		// Saved answers count toward completeness; the request only has to
		// carry what changed
		merged := answers
		if existing != nil {
			merged = existing.AnswerMap()
			for questionID, answer := range answers {
				merged[questionID] = answer
			}
		}

		span.AddEvent("checking required questions are answered")
		missing := models.MissingRequired(loaded.Questions, merged)
		if len(missing) != 0 {
			missingIDs := make([]string, len(missing))
			for i, id := range missing {
				missingIDs[i] = id.String()
			}

			span.AddEvent("generating audit log message")
			audit.LogSubmissionRejected(auditContext, applicationID, missingIDs)

			span.SetStatus(codes.Ok, "missing required answers")
			span.RecordError(nil)
			return echo.NewHTTPError(http.StatusBadRequest, types.MissingAnswersError(missingIDs))
		}

		status = types.SubmissionStatusSubmitted
	}

	span.AddEvent("saving submission")
	submission, err := models.UpsertSubmission(ctx, h.DB, application.ID, user.ID, status, answers)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save submission")
		return response.InternalServerError
	}

	submissionID := submission.ID.String()
	span.SetAttributes(
		attribute.String("submission.id", submissionID),
		attribute.String("submission.status", string(submission.Status)),
	)

	span.AddEvent("generating audit log message")
	if rdata.Submit {
		audit.LogSubmissionSubmitted(
			auditContext,
			submissionID,
			applicationID,
			len(submission.Answers),
		)
	} else {
		audit.LogSubmissionSaved(
			auditContext,
			submissionID,
			applicationID,
			submission.Status,
			len(submission.Answers),
		)
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, submission.Response())
}

func (h *Handler) GetMySubmission(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "GetMySubmission")
	defer span.End()

	span.AddEvent("received submission get request")

	user, ok := c.Get("user").(*models.User)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("user: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	application, ok := c.Get("application").(*models.Application)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("application: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(
		attribute.String("user.id", user.ID.String()),
		attribute.String("application.id", application.ID.String()),
	)

	submission, err := models.SubmissionForApplicationUser(ctx, h.DB, application.ID, user.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch submission")
		return response.InternalServerError
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")

	// Nothing saved yet is not an error, the form just starts blank
	if submission == nil {
		return c.JSON(http.StatusOK, nil)
	}

	return c.JSON(http.StatusOK, submission.Response())
}

func (h *Handler) ListMySubmissions(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ListMySubmissions")
	defer span.End()

	span.AddEvent("received submission list request")

	user, ok := c.Get("user").(*models.User)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("user: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(attribute.String("user.id", user.ID.String()))

	submissions, err := models.SubmissionsForUser(ctx, h.DB, user.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list submissions")
		return response.InternalServerError
	}

	details := make([]types.SubmissionDetail, len(submissions))
	for i, submission := range submissions {
		details[i] = submission.Detail()
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, details)
}
