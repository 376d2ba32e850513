package cmds

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clubhub/club-api/cmd/server/seeder/internal/fixtures"
	"github.com/clubhub/club-api/cmd/server/internal/migrations"
	"github.com/clubhub/club-api/internal/config"
	"github.com/clubhub/club-api/internal/logger"
)

var (
	seedClubs int
	seedWipe  bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate clubs, events, applications and questions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, span := tracer.Start(cmd.Context(), "seedCmd")
		defer span.End()

		span.SetAttributes(
			attribute.Int("clubs", seedClubs),
			attribute.Bool("wipe", seedWipe),
		)

		cfg, err := config.GetConfig()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to load config")
			return err
		}

		db, err := connect(ctx, cfg)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to connect to the database")
			return err
		}

		err = migrations.Up(ctx, db)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to migrate the database")
			return err
		}

		if seedWipe {
			logger.Logger.InfoContext(ctx, "wiping existing fixture data")
			err = fixtures.Wipe(ctx, db)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to wipe existing data")
				return err
			}
		}

		err = fixtures.Seed(ctx, db, seedClubs)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to seed fixtures")
			return err
		}

		span.RecordError(nil)
		span.SetStatus(codes.Ok, "seeded fixtures")
		return nil
	},
}

// The database may still be starting in dev compose setups, so back off
// instead of failing on the first refused connection.
func connect(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	var db *gorm.DB

	b := retry.NewFibonacci(time.Millisecond * 250)
	b = retry.WithMaxRetries(8, b)

	err := retry.Do(ctx, b, func(_ context.Context) error {
		var err error
		db, err = gorm.Open(
			postgres.Open(cfg.PostgresDSN()),
			&gorm.Config{TranslateError: true},
		)
		if err != nil {
			logger.Logger.Warn("database not ready, retrying", "error", err)
			return retry.RetryableError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.PersistentFlags().
		IntVarP(&seedClubs, "clubs", "c", 10, "Number of clubs to generate")
	seedCmd.PersistentFlags().
		BoolVarP(&seedWipe, "wipe", "w", false, "Delete existing domain rows before seeding")
}
