package fixtures

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/clubhub/club-api/cmd/server/internal/models"
	"github.com/clubhub/club-api/internal/logger"
	"github.com/clubhub/club-api/internal/types"
)

var tracer = otel.Tracer("github.com/clubhub/club-api/cmd/seeder/internal/fixtures")

// The first clubs get stable recognizable names so dev environments look the
// same everywhere; any extras fall back to generated ones.
var clubNames = []string{
	"Robotics Club",
	"Debate Society",
	"Chess Club",
	"Photography Collective",
	"Hiking and Outdoors Club",
	"Game Development Guild",
	"Culinary Arts Club",
	"Astronomy Society",
	"Film Appreciation Club",
	"Entrepreneurship Network",
}

var socialPlatforms = []types.SocialMediaPlatform{
	types.SocialMediaPlatformWebsite,
	types.SocialMediaPlatformInstagram,
	types.SocialMediaPlatformFacebook,
	types.SocialMediaPlatformTwitter,
	types.SocialMediaPlatformLinkedIn,
}

// Wipe removes all seeded domain rows. Users stay, they come from config.
func Wipe(ctx context.Context, db *gorm.DB) error {
	ctx, span := tracer.Start(ctx, "Wipe")
	defer span.End()

	db = db.WithContext(ctx)

	// Dependency order, children first
	for _, model := range []any{
		&models.Answer{},
		&models.Submission{},
		&models.Question{},
		&models.Application{},
		&models.ClubEvent{},
		&models.Member{},
		&models.ContactInfo{},
		&models.SocialMedia{},
		&models.Club{},
	} {
		err := db.Where("1 = 1").Delete(model).Error
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to wipe table")
			return fmt.Errorf("failed to wipe table: %w", err)
		}
	}

	span.SetStatus(codes.Ok, "wiped domain rows")
	return nil
}

// Seed generates `count` clubs with randomized social links, contacts,
// events, and recruitment applications.
func Seed(ctx context.Context, db *gorm.DB, count int) error {
	ctx, span := tracer.Start(ctx, "Seed")
	defer span.End()

	span.SetAttributes(attribute.Int("clubs", count))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i := range count {
		g.Go(func() error {
			return seedClub(ctx, db, i)
		})
	}

	err := g.Wait()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to seed clubs")
		return err
	}

	span.SetStatus(codes.Ok, "seeded clubs")
	return nil
}

func clubName(i int) string {
	if i < len(clubNames) {
		return clubNames[i]
	}

	return fmt.Sprintf("%s Club %d", gofakeit.NounAbstract(), i)
}

func seedClub(ctx context.Context, db *gorm.DB, i int) error {
	ctx, span := tracer.Start(ctx, "seedClub")
	defer span.End()

	db = db.WithContext(ctx)

	club := models.Club{
		Name:         clubName(i),
		Description:  gofakeit.Paragraph(1, 3, 12, " "),
		TimelineDesc: gofakeit.Sentence(10),
	}

	err := db.Create(&club).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create club")
		return fmt.Errorf("failed to create club: %w", err)
	}

	span.SetAttributes(
		attribute.String("club.id", club.ID.String()),
		attribute.String("club.name", club.Name),
	)
	logger.Logger.InfoContext(ctx, "seeded club", "name", club.Name)

	if err := seedSocialMedia(db, club.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to seed social media")
		return err
	}

	if err := seedContactInfo(db, club.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to seed contact info")
		return err
	}

	if err := seedEvents(db, club.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to seed events")
		return err
	}

	if err := seedApplications(db, club.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to seed applications")
		return err
	}

	span.SetStatus(codes.Ok, "seeded club")
	return nil
}

func seedSocialMedia(db *gorm.DB, clubID uuid.UUID) error {
	for range gofakeit.Number(0, len(socialPlatforms)*2) {
		link := models.SocialMedia{
			ClubID:   clubID,
			Platform: socialPlatforms[gofakeit.Number(0, len(socialPlatforms)-1)],
			URL:      gofakeit.URL(),
		}
		if err := db.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to create social media: %w", err)
		}
	}

	return nil
}

func seedContactInfo(db *gorm.DB, clubID uuid.UUID) error {
	for range gofakeit.Number(0, 2) {
		contact := models.ContactInfo{
			ClubID: clubID,
			Type:   types.ContactTypeEmail,
			Value:  gofakeit.Email(),
			Role:   gofakeit.JobTitle(),
		}
		if gofakeit.Bool() {
			contact.Type = types.ContactTypePhone
			contact.Value = gofakeit.Phone()
		}
		if err := db.Create(&contact).Error; err != nil {
			return fmt.Errorf("failed to create contact info: %w", err)
		}
	}

	return nil
}

func seedEvents(db *gorm.DB, clubID uuid.UUID) error {
	now := time.Now()

	for range gofakeit.Number(0, 10) {
		// Half the events already happened
		start := gofakeit.DateRange(now.AddDate(0, -3, 0), now)
		if gofakeit.Bool() {
			start = gofakeit.DateRange(now, now.AddDate(0, 3, 0))
		}

		inPerson := gofakeit.Bool()
		location := gofakeit.URL()
		if inPerson {
			location = gofakeit.Address().Address
		}

		event := models.ClubEvent{
			ClubID:      clubID,
			Name:        gofakeit.Sentence(3),
			Description: gofakeit.Paragraph(1, 2, 10, " "),
			Start:       start,
			End:         start.Add(time.Duration(gofakeit.Number(1, 4)) * time.Hour),
			InPerson:    inPerson,
			Location:    location,
		}
		if err := db.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}
	}

	return nil
}

// 50% DRAFT, 40% OPEN with a future deadline, 10% CLOSED with a past one
func applicationStatus(now time.Time) (types.ApplicationStatus, *time.Time) {
	roll := gofakeit.Number(1, 10)
	switch {
	case roll <= 5:
		return types.ApplicationStatusDraft, nil
	case roll <= 9:
		deadline := gofakeit.DateRange(now, now.AddDate(0, 2, 0))
		return types.ApplicationStatusOpen, &deadline
	default:
		deadline := gofakeit.DateRange(now.AddDate(0, -2, 0), now)
		return types.ApplicationStatusClosed, &deadline
	}
}

func seedApplications(db *gorm.DB, clubID uuid.UUID) error {
	now := time.Now()

	for range gofakeit.Number(0, 4) {
		status, deadline := applicationStatus(now)

		questionCount := gofakeit.Number(0, 5)
		questions := make([]models.Question, questionCount)
		for q := range questionCount {
			questions[q] = models.Question{
				OrderNumber: q,
				Question:    gofakeit.Question(),
				Required:    gofakeit.Bool(),
				Type:        types.QuestionTypeTextField,
			}
		}

		application := models.Application{
			ClubID:      clubID,
			Name:        gofakeit.Sentence(4),
			Description: gofakeit.Paragraph(1, 2, 12, " "),
			Status:      status,
			Deadline:    models.NewNull(deadline),
			Questions:   questions,
		}
		if err := db.Create(&application).Error; err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}
	}

	return nil
}
