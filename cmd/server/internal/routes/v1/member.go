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
	"github.com/clubhub/club-api/internal/audit"
	"github.com/clubhub/club-api/internal/types"
)

func (h *Handler) JoinClub(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "JoinClub")
	defer span.End()

	span.AddEvent("received club join request")

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

	span.AddEvent("recording membership")
	member, err := models.JoinClub(ctx, h.DB, club.ID, user.ID, types.MemberRoleMember)
	if err != nil {
		span.SetStatus(codes.Error, "failed to record membership")
		span.RecordError(err)
		return response.InternalServerError
	}

	span.AddEvent("generating audit log message")
	auditContext := audit.Context{ClubID: &clubID, UserID: &userID}
	audit.LogMemberJoined(auditContext, clubID, member.Role)

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, types.JoinClubResponse{ClubID: clubID, Role: member.Role})
}

func (h *Handler) ListMyClubs(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ListMyClubs")
	defer span.End()

	span.AddEvent("received membership list request")

	user, ok := c.Get("user").(*models.User)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("user: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(attribute.String("user.id", user.ID.String()))

	members, err := models.MembershipsForUser(ctx, h.DB, user.ID)
	if err != nil {
		span.SetStatus(codes.Error, "failed to list memberships")
		span.RecordError(err)
		return response.InternalServerError
	}

	memberships := make([]types.MembershipDetail, len(members))
	for i, member := range members {
		memberships[i] = types.MembershipDetail{
			ClubID: member.ClubID.String(),
			Name:   member.Club.Name,
			Role:   member.Role,
		}
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, memberships)
}
