package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	srverr "github.com/clubhub/club-api/cmd/server/internal/error"
	"github.com/clubhub/club-api/cmd/server/internal/models"
	"github.com/clubhub/club-api/cmd/server/internal/response"
	"github.com/clubhub/club-api/internal/logger"
	"github.com/clubhub/club-api/internal/types"
)

// Checks that all `needed` permissions are present on `has`
func hasPermission(
	ctx context.Context,
	needed *models.Permissions,
	has *models.Permissions,
	l *slog.Logger,
) bool {
	ctx, span := tracer.Start(ctx, "hasPermission")
	defer span.End()

	logger.Logger.DebugContext(ctx, "comparing permissions", "needed", *needed, "has", *has)

	// Reflection feels kinda wrong but I dont know how to codegen in golang
	// and I do not want a static check where we forget to add a new field
	//
	// Other option is weaker typesafety using maps
	valNeeded := reflect.Indirect(reflect.ValueOf(needed))
	valHas := reflect.Indirect(reflect.ValueOf(has))

	typNeeded := valNeeded.Type()
	typHas := valHas.Type()

	if typNeeded != typHas {
		span.RecordError(nil)
		span.SetStatus(codes.Ok, "non matching types")
		return false
	}

	for i := range valNeeded.NumField() {
		fieldNeeded := valNeeded.Field(i)
		fieldHas := valHas.Field(i)

		if fieldNeeded.Kind() != reflect.Bool || fieldHas.Kind() != reflect.Bool {
			l.WarnContext(ctx, "non boolean fields on permissions skipping")
			continue
		}

		// if we need it but dont have
		if fieldNeeded.Bool() && !fieldHas.Bool() {
			l.DebugContext(ctx, "missing permission")
			span.RecordError(nil)
			span.SetStatus(codes.Ok, "missing permission")
			return false
		}
	}

	l.DebugContext(ctx, "granting access")
	span.RecordError(nil)
	span.SetStatus(codes.Ok, "granting access")
	return true
}

// User on `userKey` must contain all of the permissions set to true on the provided `permissions`
func HasPermissions(userKey string, permissions *models.Permissions) echo.MiddlewareFunc {
	l := logger.Logger.With("userKey", userKey, "permissions", permissions)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), "HasPermissions", trace.WithAttributes(
				attribute.String("userKey", userKey),
			))
			defer span.End()

			l.DebugContext(ctx, "getting user object")
			user, ok := c.Get(userKey).(*models.User)
			if !ok {
				l.WarnContext(ctx, "failed to get user object")
				span.RecordError(nil)
				span.SetStatus(codes.Error, "failed to get user object")
				return echo.NewHTTPError(http.StatusUnauthorized, types.StringError("Unauthorized"))
			}

			comparison := hasPermission(ctx, permissions, &user.Permissions, l)
			if !comparison {
				span.RecordError(nil)
				span.SetStatus(codes.Ok, "unauthorized")
				return echo.NewHTTPError(http.StatusUnauthorized, types.StringError("Unauthorized"))
			}

			span.RecordError(nil)
			span.SetStatus(codes.Ok, "checked permissions")
			return next(c)
		}
	}
}

// Requires the caller to hold the ADMIN role in the club on `clubKey`.
// Globally privileged users pass regardless of membership.
func ClubAdmin(h *Handler, userKey string, clubKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), "ClubAdmin", trace.WithAttributes(
				attribute.String("userKey", userKey),
				attribute.String("clubKey", clubKey),
			))
			defer span.End()

			user, ok := c.Get(userKey).(*models.User)
			if !ok {
				span.RecordError(srverr.ErrTypeAssertMismatch)
				span.SetStatus(codes.Error, fmt.Sprintf("user: %s", srverr.ErrTypeAssertMismatch))
				return echo.NewHTTPError(http.StatusUnauthorized, types.StringError("Unauthorized"))
			}

			if user.Permissions.Admin {
				span.AddEvent("globally privileged user")
				span.RecordError(nil)
				span.SetStatus(codes.Ok, "granting access")
				return next(c)
			}

			club, ok := c.Get(clubKey).(*models.Club)
			if !ok {
				span.RecordError(srverr.ErrTypeAssertMismatch)
				span.SetStatus(codes.Error, fmt.Sprintf("club: %s", srverr.ErrTypeAssertMismatch))
				return response.InternalServerError
			}

			isAdmin, err := models.IsClubAdmin(ctx, h.DB, club.ID, user.ID)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to check club role")
				return response.InternalServerError
			}

			if !isAdmin {
				span.RecordError(nil)
				span.SetStatus(codes.Ok, "not a club admin")
				return echo.NewHTTPError(
					http.StatusForbidden,
					types.StringError("must be a club admin"),
				)
			}

			span.RecordError(nil)
			span.SetStatus(codes.Ok, "checked club role")
			return next(c)
		}
	}
}
