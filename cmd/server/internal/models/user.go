package models

import (
	"context"
	"fmt"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clubhub/club-api/internal/config"
)

type Permissions struct {
	// May create clubs and mutate any club regardless of membership
	Admin bool `json:"admin"`
}

type User struct {
	Token string // argon2id hash
	Name  string
	Email string
	Model
	Permissions Permissions `gorm:"type:jsonb;serializer:json"`
	Active      datatypes.Null[bool]
}

func (User) TableName() string {
	return "app_user"
}

func (u User) GetID() uuid.UUID {
	return u.ID
}

// Config is the authoritative user list
//
// 1. Upsert user records
// 2. Disable users not currently contained in the config
func SyncUsersFromConfig(ctx context.Context, db *gorm.DB, users []config.User) error {
	ctx, span := tracer.Start(ctx, "SyncUsersFromConfig")
	defer span.End()

	db = db.WithContext(ctx)

	usersToUpsert := make([]*User, len(users))
	usersInConfig := make([]uuid.UUID, len(users))
	for i, user := range users {
		hash, err := argon2id.CreateHash(user.APIKey.Token, argon2id.DefaultParams)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "error creating hash for api key")
			span.SetAttributes(attribute.String("failedUser", user.ID))
			return err
		}

		userID, err := uuid.Parse(user.ID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "error parsing user id")
			span.SetAttributes(attribute.String("failedUser", user.ID))
			return err
		}

		newModel := User{
			Model: Model{
				ID: userID,
			},
			Token:  hash,
			Name:   user.Name,
			Email:  user.Email,
			Active: NewNull(user.APIKey.Active),
			Permissions: Permissions{
				Admin: user.APIKey.Permissions.Admin,
			},
		}

		usersToUpsert[i] = &newModel
		usersInConfig[i] = newModel.ID
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		//nolint:govet // shadow: intentionally shadow ctx and span to avoid using the incorrect one.
		ctx, span := tracer.Start(ctx, "SyncUsersFromConfig/Transaction")
		defer span.End()

		tx = tx.WithContext(ctx)

		if len(usersToUpsert) != 0 {
			span.AddEvent("upserting defined users")
			result := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(usersToUpsert)
			if result.Error != nil {
				span.RecordError(result.Error)
				span.SetStatus(codes.Error, "failed to upsert defined users")
				return fmt.Errorf("failed to upsert defined users: %w", result.Error)
			}
			if result.RowsAffected != int64(len(users)) {
				span.AddEvent("updated rows did not equal configured user count")
				span.SetAttributes(
					attribute.Int64("rowsAffected", result.RowsAffected),
					attribute.Int64("users", int64(len(users))),
				)
			}
		} else {
			span.AddEvent("no defined users to upsert")
		}

		span.AddEvent("setting all rows not in defined users inactive")

		result := tx.Model(&User{}).
			Where("id NOT IN ?", usersInConfig).
			Updates(&User{Active: NewNullFromData(false)})
		if result.Error != nil {
			span.RecordError(result.Error)
			span.SetStatus(codes.Error, "failed to set all rows not in defined users inactive")
			return fmt.Errorf(
				"failed to set all rows not in defined users inactive: %w",
				result.Error,
			)
		}

		span.RecordError(nil)
		span.SetStatus(codes.Ok, "updated users")
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update users")
		return fmt.Errorf("failed to update users: %w", err)
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "updated users")
	return nil
}
