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

func (h *Handler) ListEvents(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ListEvents")
	defer span.End()

	db := h.DB.WithContext(ctx)

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(attribute.String("club.id", club.ID.String()))

	var events []models.ClubEvent
	err := db.Where("club_id = ?", club.ID).Order("start ASC").Find(&events).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list events")
		return response.InternalServerError
	}

	details := make([]types.EventDetail, len(events))
	for i, event := range events {
		details[i] = event.Detail()
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, details)
}

func (h *Handler) CreateEvent(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "CreateEvent")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received event create request")

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(attribute.String("club.id", club.ID.String()))

	var rdata types.EventRequest

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

	event := models.ClubEvent{
		ClubID:      club.ID,
		Name:        rdata.Name,
		Description: rdata.Description,
		Start:       rdata.Start.Time(),
		End:         rdata.End.Time(),
		InPerson:    rdata.InPerson,
		Location:    rdata.Location,
	}

	span.AddEvent("inserting into database")
	err = db.Create(&event).Error
	if err != nil {
		span.SetStatus(codes.Error, "failed to insert")
		span.RecordError(err)
		return response.InternalServerError
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, event.Detail())
}

func (h *Handler) UpdateEvent(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "UpdateEvent")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received event update request")

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	event, ok := c.Get("event").(*models.ClubEvent)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("event: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(
		attribute.String("club.id", club.ID.String()),
		attribute.String("event.id", event.ID.String()),
	)

	span.AddEvent("checking user can perform this operation")
	if event.ClubID != club.ID {
		span.SetStatus(codes.Ok, "club did not match")
		span.RecordError(nil)
		return response.NotFoundError
	}

	var rdata types.EventRequest

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

	event.Name = rdata.Name
	event.Description = rdata.Description
	event.Start = rdata.Start.Time()
	event.End = rdata.End.Time()
	event.InPerson = rdata.InPerson
	event.Location = rdata.Location

	span.AddEvent("updating event in database")
	err = db.Save(event).Error
	if err != nil {
		span.SetStatus(codes.Error, "failed to update event")
		span.RecordError(err)
		return response.InternalServerError
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, event.Detail())
}

func (h *Handler) DeleteEvent(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "DeleteEvent")
	defer span.End()

	db := h.DB.WithContext(ctx)

	span.AddEvent("received event delete request")

	club, ok := c.Get("club").(*models.Club)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	event, ok := c.Get("event").(*models.ClubEvent)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("event: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(
		attribute.String("club.id", club.ID.String()),
		attribute.String("event.id", event.ID.String()),
	)

	span.AddEvent("checking user can perform this operation")
	if event.ClubID != club.ID {
		span.SetStatus(codes.Ok, "club did not match")
		span.RecordError(nil)
		return response.NotFoundError
	}

	span.AddEvent("deleting event from database")
	err := db.Delete(event).Error
	if err != nil {
		span.SetStatus(codes.Error, "failed to delete event")
		span.RecordError(err)
		return response.InternalServerError
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.NoContent(http.StatusNoContent)
}
