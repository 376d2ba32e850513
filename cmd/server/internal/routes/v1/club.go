package v1

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	srverr "github.com/clubhub/club-api/cmd/server/internal/error"
	"github.com/clubhub/club-api/cmd/server/internal/models"
	"github.com/clubhub/club-api/cmd/server/internal/response"
	"github.com/clubhub/club-api/internal/audit"
	"github.com/clubhub/club-api/internal/types"
)

func (h *Handler) ListClubs(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ListClubs")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received club list request")

	nameFilter := c.QueryParam("name")
	span.SetAttributes(attribute.String("filter.name", nameFilter))

	query := db.Model(&models.Club{}).Order("name ASC")
	if nameFilter != "" {
		query = query.Where("name ILIKE ?", "%"+nameFilter+"%")
	}

	var clubs []models.Club
	err := query.Find(&clubs).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list clubs")
		return response.InternalServerError
	}

	summaries := make([]types.ClubSummary, len(clubs))
	for i, club := range clubs {
		summaries[i] = types.ClubSummary{ID: club.ID.String(), Name: club.Name}
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, summaries)
}

func (h *Handler) CreateClub(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "CreateClub")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received club create request")

	user, ok := c.Get("user").(*models.User)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("user: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	userID := user.ID.String()
	span.SetAttributes(attribute.String("user.id", userID))

	var rdata types.CreateClubRequest

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

	club := models.Club{
		Name:         rdata.Name,
		Description:  rdata.Description,
		TimelineDesc: rdata.TimelineDesc,
	}

	span.AddEvent("inserting into database")
	err = db.Create(&club).Error
	if err != nil {
		span.SetStatus(codes.Error, "failed to insert")
		span.RecordError(err)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.StringError("a club with that name already exists"),
		)
	}

	clubID := club.ID.String()
	span.SetAttributes(attribute.String("club.id", clubID))

	// Creator administers the club they created
	_, err = models.JoinClub(ctx, h.DB, club.ID, user.ID, types.MemberRoleAdmin)
	if err != nil {
		span.SetStatus(codes.Error, "failed to record creator membership")
		span.RecordError(err)
		return response.InternalServerError
	}

	span.AddEvent("generating audit log message")
	auditContext := audit.Context{ClubID: &clubID, UserID: &userID}
	audit.LogClubCreated(auditContext, clubID, club.Name)

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, types.ClubSummary{ID: clubID, Name: club.Name})
}

func (h *Handler) GetClub(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "GetClub")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received club get request")

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

	span.SetAttributes(
		attribute.String("user.id", user.ID.String()),
		attribute.String("club.id", club.ID.String()),
	)

	span.AddEvent("loading club associations")
	err := db.Preload("SocialMedia").Preload("ContactInfo").First(club, club.ID).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load club associations")
		return response.InternalServerError
	}

	// Draft applications stay hidden from everyone but the club's admins
	isAdmin := user.Permissions.Admin
	if !isAdmin {
		isAdmin, err = models.IsClubAdmin(ctx, h.DB, club.ID, user.ID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to check club role")
			return response.InternalServerError
		}
	}

	span.AddEvent("loading club applications")
	applicationQuery := db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_number ASC")
	}).Where("club_id = ?", club.ID)
	if !isAdmin {
		applicationQuery = applicationQuery.Where(
			"status <> ?",
			types.ApplicationStatusDraft,
		)
	}

	var applications []models.Application
	err = applicationQuery.Find(&applications).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load club applications")
		return response.InternalServerError
	}

	socialMedia := make([]types.SocialMediaDetail, len(club.SocialMedia))
	for i, s := range club.SocialMedia {
		socialMedia[i] = s.Detail()
	}

	contactInfo := make([]types.ContactInfoDetail, len(club.ContactInfo))
	for i, ci := range club.ContactInfo {
		contactInfo[i] = ci.Detail()
	}

	applicationDetails := make([]types.ApplicationDetail, len(applications))
	for i, a := range applications {
		applicationDetails[i] = a.Detail()
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, types.ClubDetail{
		ID:           club.ID.String(),
		Name:         club.Name,
		Description:  club.Description,
		TimelineDesc: club.TimelineDesc,
		SocialMedia:  socialMedia,
		ContactInfo:  contactInfo,
		Applications: applicationDetails,
	})
}

func (h *Handler) UpdateClub(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "UpdateClub")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received club update request")

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(attribute.String("club.id", club.ID.String()))

	var rdata types.UpdateClubRequest

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

	if rdata.Description.Defined && rdata.Description.Value != nil {
		club.Description = *rdata.Description.Value
	}
	if rdata.TimelineDesc.Defined && rdata.TimelineDesc.Value != nil {
		club.TimelineDesc = *rdata.TimelineDesc.Value
	}

	span.AddEvent("updating club in database")
	err = db.Save(club).Error
	if err != nil {
		span.SetStatus(codes.Error, "failed to update club")
		span.RecordError(err)
		return response.InternalServerError
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, types.ClubSummary{ID: club.ID.String(), Name: club.Name})
}
