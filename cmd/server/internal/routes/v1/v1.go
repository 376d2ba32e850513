package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	srverr "github.com/clubhub/club-api/cmd/server/internal/error"
	servermiddleware "github.com/clubhub/club-api/cmd/server/internal/middleware"
	"github.com/clubhub/club-api/cmd/server/internal/models"
	"github.com/clubhub/club-api/cmd/server/internal/ratelimit"
	"github.com/clubhub/club-api/internal/config"
	"github.com/clubhub/club-api/internal/logger"
)

const name = "github.com/clubhub/club-api/cmd/server/internal/routes/v1"

var tracer = otel.Tracer(name)

type Handler struct {
	DB     *gorm.DB
	config *config.Config
}

func NewRedisLimiter(
	redisHost string,
	limiterKey string,
	perMinute int64,
	failOpen bool,
	onlyMethod *string,
) middleware.RateLimiterConfig {
	l := logger.Logger
	var store middleware.RateLimiterStore

	redisAddr := redisHost + ":6379"
	l.Debug("Setting up rate limiter with Redis", "redis", redisAddr)
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	rdConf := &ratelimit.RedisLimiterConfig{
		PerMinute:   perMinute,
		RedisClient: rdb,
		LimiterKey:  limiterKey,
		FailOpen:    failOpen,
	}
	store = ratelimit.NewRedisLimitStore(*rdConf)

	skipper := middleware.DefaultSkipper
	if onlyMethod != nil {
		skipper = func(c echo.Context) bool {
			return c.Request().Method != *onlyMethod
		}
	}

	return middleware.RateLimiterConfig{
		Skipper: skipper,
		Store:   store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			user, ok := c.Get("user").(*models.User)
			if !ok {
				return "", srverr.ErrTypeAssertMismatch
			}
			return user.ID.String(), nil
		},
		ErrorHandler: func(context echo.Context, _ error) error {
			return context.JSON(http.StatusForbidden, nil)
		},
		DenyHandler: func(context echo.Context, _ string, _ error) error {
			return context.JSON(http.StatusTooManyRequests, nil)
		},
	}
}

func NewHandler(db *gorm.DB, cfg *config.Config) Handler {
	return Handler{
		DB:     db,
		config: cfg,
	}
}

func (h *Handler) AddRoutes(e *echo.Echo, middlewareHandler *servermiddleware.Handler) {
	l := logger.Logger

	v1Group := e.Group("/v1", middleware.BasicAuth(middlewareHandler.BasicAuthValidator))

	if h.config.RateLimit != nil && h.config.RateLimit.GlobalPerMinute > 0 {
		v1Group.Use(
			middleware.RateLimiterWithConfig(
				NewRedisLimiter(
					h.config.RateLimit.RedisHost,
					"global",
					h.config.RateLimit.GlobalPerMinute,
					h.config.RateLimit.FailOpen,
					nil,
				),
			),
		)
	} else {
		l.Warn("not configured to have a global rate limit")
	}

	v1Group.GET("/ping/", h.Ping)

	clubGroup := v1Group.Group("/club")
	clubGroup.GET("/", h.ListClubs)
	clubGroup.POST("/", h.CreateClub,
		servermiddleware.HasPermissions("user", &models.Permissions{Admin: true}),
	)

	clubScoped := clubGroup.Group(
		"/:club_id",
		servermiddleware.PopulateFromIDParam[models.Club](middlewareHandler, "club_id", "club"),
	)
	clubScoped.GET("/", h.GetClub)
	clubScoped.POST("/member/", h.JoinClub)

	clubAdmin := clubScoped.Group(
		"",
		servermiddleware.ClubAdmin(middlewareHandler, "user", "club"),
	)
	clubAdmin.PATCH("/", h.UpdateClub)

	clubAdmin.GET("/social-media/", h.ListSocialMedia)
	clubAdmin.POST("/social-media/", h.CreateSocialMedia)
	clubAdmin.PATCH("/social-media/:social_media_id/", h.UpdateSocialMedia,
		servermiddleware.PopulateFromIDParam[models.SocialMedia](
			middlewareHandler,
			"social_media_id",
			"social_media",
		),
	)
	clubAdmin.DELETE("/social-media/:social_media_id/", h.DeleteSocialMedia,
		servermiddleware.PopulateFromIDParam[models.SocialMedia](
			middlewareHandler,
			"social_media_id",
			"social_media",
		),
	)

	clubAdmin.GET("/contact-info/", h.ListContactInfo)
	clubAdmin.POST("/contact-info/", h.CreateContactInfo)
	clubAdmin.PATCH("/contact-info/:contact_info_id/", h.UpdateContactInfo,
		servermiddleware.PopulateFromIDParam[models.ContactInfo](
			middlewareHandler,
			"contact_info_id",
			"contact_info",
		),
	)
	clubAdmin.DELETE("/contact-info/:contact_info_id/", h.DeleteContactInfo,
		servermiddleware.PopulateFromIDParam[models.ContactInfo](
			middlewareHandler,
			"contact_info_id",
			"contact_info",
		),
	)

	clubScoped.GET("/event/", h.ListEvents)
	clubAdmin.POST("/event/", h.CreateEvent)
	clubAdmin.PATCH("/event/:event_id/", h.UpdateEvent,
		servermiddleware.PopulateFromIDParam[models.ClubEvent](
			middlewareHandler,
			"event_id",
			"event",
		),
	)
	clubAdmin.DELETE("/event/:event_id/", h.DeleteEvent,
		servermiddleware.PopulateFromIDParam[models.ClubEvent](
			middlewareHandler,
			"event_id",
			"event",
		),
	)

	clubAdmin.POST("/application/", h.CreateApplication)
	clubAdmin.GET("/application/", h.ListClubApplications)

	applicationGroup := v1Group.Group(
		"/application/:application_id",
		servermiddleware.PopulateFromIDParam[models.Application](
			middlewareHandler,
			"application_id",
			"application",
		),
	)
	applicationGroup.GET("/", h.GetApplication)
	applicationGroup.PATCH("/", h.UpdateApplication)

	submissionGroup := applicationGroup.Group("/submission")
	if h.config.RateLimit != nil && h.config.RateLimit.SavePerMinute > 0 {
		put := http.MethodPut

		submissionGroup.Use(
			middleware.RateLimiterWithConfig(
				NewRedisLimiter(
					h.config.RateLimit.RedisHost,
					"save",
					h.config.RateLimit.SavePerMinute,
					h.config.RateLimit.FailOpen,
					&put,
				),
			),
		)
	} else {
		l.Warn("not configured to have a save rate limit")
	}

	submissionGroup.PUT("/", h.SaveOrSubmit)
	submissionGroup.GET("/", h.GetMySubmission)

	memberGroup := v1Group.Group("/member")
	memberGroup.GET("/club/", h.ListMyClubs)
	memberGroup.GET("/submission/", h.ListMySubmissions)
}
