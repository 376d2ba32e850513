package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	srverr "github.com/clubhub/club-api/cmd/server/internal/error"
	"github.com/clubhub/club-api/cmd/server/internal/models"
	"github.com/clubhub/club-api/cmd/server/internal/response"
	"github.com/clubhub/club-api/internal/audit"
	"github.com/clubhub/club-api/internal/types"
)

// Builds model rows from question requests, rejecting duplicate order numbers
// before the unique index does it less helpfully.
func questionRows(requests []types.QuestionRequest) ([]models.Question, error) {
	seen := make(map[int]bool, len(requests))
	rows := make([]models.Question, len(requests))
	for i, request := range requests {
		if seen[request.OrderNumber] {
			return nil, fmt.Errorf("duplicate order number %d", request.OrderNumber)
		}
		seen[request.OrderNumber] = true

		rows[i] = models.Question{
			OrderNumber:   request.OrderNumber,
			Question:      request.Question,
			Required:      request.Required,
			Type:          request.Type,
			AnswerChoices: datatypes.NewJSONSlice(request.AnswerChoices),
		}
	}

	return rows, nil
}

func (h *Handler) CreateApplication(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "CreateApplication")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received application create request")

	user, ok := c.Get("user").(*models.User)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("user: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	userID := user.ID.String()
	clubID := club.ID.String()

	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("club.id", clubID),
	)

	var rdata types.CreateApplicationRequest

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

	questions, err := questionRows(rdata.Questions)
	if err != nil {
		span.SetStatus(codes.Ok, "invalid question list")
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, types.StringError(err.Error()))
	}

	application := models.Application{
		ClubID:      club.ID,
		Name:        rdata.Name,
		Description: rdata.Description,
		Status:      types.ApplicationStatusDraft,
		Questions:   questions,
	}

	span.AddEvent("inserting into database")
	err = db.Create(&application).Error
	if err != nil {
		span.SetStatus(codes.Error, "failed to insert")
		span.RecordError(err)
		return response.InternalServerError
	}

	applicationID := application.ID.String()
	span.SetAttributes(attribute.String("application.id", applicationID))

	span.AddEvent("generating audit log message")
	auditContext := audit.Context{ClubID: &clubID, UserID: &userID}
	audit.LogApplicationCreated(auditContext, applicationID, application.Name, len(questions))

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, application.Detail())
}

func (h *Handler) ListClubApplications(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ListClubApplications")
	defer span.End()

	db := h.DB.WithContext(ctx)

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(attribute.String("club.id", club.ID.String()))

	var applications []models.Application
	err := db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_number ASC")
	}).Where("club_id = ?", club.ID).Order("created_at ASC").Find(&applications).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list applications")
		return response.InternalServerError
	}

	details := make([]types.ApplicationDetail, len(applications))
	for i, application := range applications {
		details[i] = application.Detail()
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, details)
}

// isApplicationAdmin reports whether the user may administer the club that
// owns the application.
func (h *Handler) isApplicationAdmin(
	c echo.Context,
	user *models.User,
	application *models.Application,
) (bool, error) {
	if user.Permissions.Admin {
		return true, nil
	}

	return models.IsClubAdmin(c.Request().Context(), h.DB, application.ClubID, user.ID)
}

func (h *Handler) GetApplication(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "GetApplication")
	defer span.End()

	span.AddEvent("received application get request")

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
		attribute.String("application.status", string(application.Status)),
	)

	// Drafts exist only for the admins still editing them
	if application.Status == types.ApplicationStatusDraft {
		isAdmin, err := h.isApplicationAdmin(c, user, application)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to check club role")
			return response.InternalServerError
		}

		if !isAdmin {
			span.SetStatus(codes.Ok, "draft hidden from non-admin")
			span.RecordError(nil)
			return response.NotFoundError
		}
	}

	span.AddEvent("loading application questions")
	loaded, err := models.ApplicationByID(ctx, h.DB, application.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load application")
		return response.InternalServerError
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, loaded.Detail())
}

func (h *Handler) UpdateApplication(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "UpdateApplication")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received application update request")

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

	userID := user.ID.String()
	applicationID := application.ID.String()
	clubID := application.ClubID.String()

	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("application.id", applicationID),
		attribute.String("club.id", clubID),
	)

	span.AddEvent("checking user can perform this operation")
	isAdmin, err := h.isApplicationAdmin(c, user, application)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check club role")
		return response.InternalServerError
	}
	if !isAdmin {
		span.SetStatus(codes.Ok, "not a club admin")
		span.RecordError(nil)
		return response.NotFoundError
	}

	var rdata types.UpdateApplicationRequest

	span.AddEvent("parsing request body")
	err = c.Bind(&rdata)
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

	previousStatus := application.Status

	if rdata.Name.Defined && rdata.Name.Value != nil {
		application.Name = *rdata.Name.Value
	}
	if rdata.Description.Defined && rdata.Description.Value != nil {
		application.Description = *rdata.Description.Value
	}
	deadline, err := types.Map(rdata.Deadline, func(u *types.UnixMilli) (*time.Time, error) {
		if u == nil {
			return nil, nil
		}

		t := u.Time()
		return &t, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to convert deadline")
		return response.InternalServerError
	}
	if deadline.Defined {
		application.Deadline = models.NewNull(deadline.Value)
	}
	if rdata.Status.Defined && rdata.Status.Value != nil {
		switch *rdata.Status.Value {
		case types.ApplicationStatusDraft,
			types.ApplicationStatusOpen,
			types.ApplicationStatusClosed:
		default:
			span.SetStatus(codes.Ok, "invalid status")
			span.RecordError(nil)
			return echo.NewHTTPError(http.StatusBadRequest, types.StringError("invalid status"))
		}

		application.Status = *rdata.Status.Value
	}

	// An application cannot leave DRAFT without a deadline to close on
	if application.Status != types.ApplicationStatusDraft && !application.Deadline.Valid {
		span.SetStatus(codes.Ok, "missing deadline")
		span.RecordError(nil)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.StringError("a deadline is required once the application leaves DRAFT"),
		)
	}

	if rdata.Questions != nil {
		questions, err := questionRows(*rdata.Questions)
		if err != nil {
			span.SetStatus(codes.Ok, "invalid question list")
			span.RecordError(err)
			return echo.NewHTTPError(http.StatusBadRequest, types.StringError(err.Error()))
		}

		span.AddEvent("replacing question list")
		err = models.ReplaceQuestions(ctx, h.DB, application.ID, questions)
		if err != nil {
			span.SetStatus(codes.Error, "failed to replace questions")
			span.RecordError(err)
			return response.InternalServerError
		}
	}

	span.AddEvent("updating application in database")
	err = db.Save(application).Error
	if err != nil {
		span.SetStatus(codes.Error, "failed to update application")
		span.RecordError(err)
		return response.InternalServerError
	}

	if application.Status != previousStatus {
		span.AddEvent("generating audit log message")
		auditContext := audit.Context{ClubID: &clubID, UserID: &userID}
		audit.LogApplicationStatusChanged(
			auditContext,
			applicationID,
			previousStatus,
			application.Status,
		)
	}

	span.AddEvent("reloading application with questions")
	loaded, err := models.ApplicationByID(ctx, h.DB, application.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to reload application")
		return response.InternalServerError
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, loaded.Detail())
}
