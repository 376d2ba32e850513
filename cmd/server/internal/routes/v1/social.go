package v1

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	srverr "github.com/clubhub/club-api/cmd/server/internal/error"
	"github.com/clubhub/club-api/cmd/server/internal/models"
	"github.com/clubhub/club-api/cmd/server/internal/response"
	"github.com/clubhub/club-api/internal/types"
)

func (h *Handler) ListSocialMedia(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ListSocialMedia")
	defer span.End()

	db := h.DB.WithContext(ctx)

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(attribute.String("club.id", club.ID.String()))

	var links []models.SocialMedia
	err := db.Where("club_id = ?", club.ID).Order("created_at ASC").Find(&links).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list social media")
		return response.InternalServerError
	}

	details := make([]types.SocialMediaDetail, len(links))
	for i, link := range links {
		details[i] = link.Detail()
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, details)
}

func (h *Handler) CreateSocialMedia(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "CreateSocialMedia")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received social media create request")

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(attribute.String("club.id", club.ID.String()))

	var rdata types.SocialMediaRequest

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

	link := models.SocialMedia{
		ClubID:   club.ID,
		Platform: rdata.Platform,
		URL:      rdata.URL,
	}

	span.AddEvent("inserting into database")
	err = db.Create(&link).Error
	if err != nil {
		span.SetStatus(codes.Error, "failed to insert")
		span.RecordError(err)
		return response.InternalServerError
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, link.Detail())
}

func (h *Handler) UpdateSocialMedia(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "UpdateSocialMedia")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received social media update request")

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	link, ok := c.Get("social_media").(*models.SocialMedia)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("social_media: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(
		attribute.String("club.id", club.ID.String()),
		attribute.String("social_media.id", link.ID.String()),
	)

	span.AddEvent("checking user can perform this operation")
	if link.ClubID != club.ID {
		span.SetStatus(codes.Ok, "club did not match")
		span.RecordError(nil)
		return response.NotFoundError
	}

	var rdata types.SocialMediaRequest

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

	link.Platform = rdata.Platform
	link.URL = rdata.URL

	span.AddEvent("updating social media in database")
	err = db.Save(link).Error
	if err != nil {
		span.SetStatus(codes.Error, "failed to update social media")
		span.RecordError(err)
		return response.InternalServerError
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, link.Detail())
}

func (h *Handler) DeleteSocialMedia(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "DeleteSocialMedia")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received social media delete request")

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	link, ok := c.Get("social_media").(*models.SocialMedia)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("social_media: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(
		attribute.String("club.id", club.ID.String()),
		attribute.String("social_media.id", link.ID.String()),
	)

	span.AddEvent("checking user can perform this operation")
	if link.ClubID != club.ID {
		span.SetStatus(codes.Ok, "club did not match")
		span.RecordError(nil)
		return response.NotFoundError
	}

	span.AddEvent("deleting social media from database")
	err := db.Delete(link).Error
	if err != nil {
		span.SetStatus(codes.Error, "failed to delete social media")
		span.RecordError(err)
		return response.InternalServerError
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.NoContent(http.StatusNoContent)
}
