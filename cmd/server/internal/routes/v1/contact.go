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

func (h *Handler) ListContactInfo(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ListContactInfo")
	defer span.End()

	db := h.DB.WithContext(ctx)

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(attribute.String("club.id", club.ID.String()))

	var contacts []models.ContactInfo
	err := db.Where("club_id = ?", club.ID).Order("created_at ASC").Find(&contacts).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list contact info")
		return response.InternalServerError
	}

	details := make([]types.ContactInfoDetail, len(contacts))
	for i, contact := range contacts {
		details[i] = contact.Detail()
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, details)
}

func (h *Handler) CreateContactInfo(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "CreateContactInfo")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received contact info create request")

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(attribute.String("club.id", club.ID.String()))

	var rdata types.ContactInfoRequest

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

	contact := models.ContactInfo{
		ClubID: club.ID,
		Type:   rdata.Type,
		Value:  rdata.Value,
		Role:   rdata.Role,
	}

	span.AddEvent("inserting into database")
	err = db.Create(&contact).Error
	if err != nil {
		span.SetStatus(codes.Error, "failed to insert")
		span.RecordError(err)
		return response.InternalServerError
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, contact.Detail())
}

func (h *Handler) UpdateContactInfo(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "UpdateContactInfo")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received contact info update request")

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	contact, ok := c.Get("contact_info").(*models.ContactInfo)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("contact_info: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(
		attribute.String("club.id", club.ID.String()),
		attribute.String("contact_info.id", contact.ID.String()),
	)

	span.AddEvent("checking user can perform this operation")
	if contact.ClubID != club.ID {
		span.SetStatus(codes.Ok, "club did not match")
		span.RecordError(nil)
		return response.NotFoundError
	}

	var rdata types.ContactInfoRequest

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

	contact.Type = rdata.Type
	contact.Value = rdata.Value
	contact.Role = rdata.Role

	span.AddEvent("updating contact info in database")
	err = db.Save(contact).Error
	if err != nil {
		span.SetStatus(codes.Error, "failed to update contact info")
		span.RecordError(err)
		return response.InternalServerError
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, contact.Detail())
}

func (h *Handler) DeleteContactInfo(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "DeleteContactInfo")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received contact info delete request")

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	contact, ok := c.Get("contact_info").(*models.ContactInfo)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("contact_info: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(
		attribute.String("club.id", club.ID.String()),
		attribute.String("contact_info.id", contact.ID.String()),
	)

	span.AddEvent("checking user can perform this operation")
	if contact.ClubID != club.ID {
		span.SetStatus(codes.Ok, "club did not match")
		span.RecordError(nil)
		return response.NotFoundError
	}

	span.AddEvent("deleting contact info from database")
	err := db.Delete(contact).Error
	if err != nil {
		span.SetStatus(codes.Error, "failed to delete contact info")
		span.RecordError(err)
		return response.InternalServerError
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.NoContent(http.StatusNoContent)
}
