package models

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clubhub/club-api/internal/types"
)

type Member struct {
	Role types.MemberRole `gorm:"type:text"`
	Model
	ClubID uuid.UUID `gorm:"uniqueIndex:idx_member_club_user"`
	UserID uuid.UUID `gorm:"uniqueIndex:idx_member_club_user"`
	Club   Club
}

// MembershipsForUser lists the clubs the user belongs to with the club row
// preloaded, oldest membership first.
func MembershipsForUser(
	ctx context.Context,
	db *gorm.DB,
	userID uuid.UUID,
) ([]Member, error) {
	ctx, span := tracer.Start(ctx, "MembershipsForUser")
	defer span.End()

	span.SetAttributes(attribute.String("userID", userID.String()))

	db = db.WithContext(ctx)

	var members []Member
	err := db.Preload("Club").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list memberships")
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	return members, nil
}

func (Member) TableName() string {
	return "member"
}

func (m Member) GetID() uuid.UUID {
	return m.ID
}

// JoinClub records membership idempotently. Re-joining never downgrades an
// existing ADMIN row.
func JoinClub(
	ctx context.Context,
	db *gorm.DB,
	clubID uuid.UUID,
	userID uuid.UUID,
	role types.MemberRole,
) (*Member, error) {
	ctx, span := tracer.Start(ctx, "JoinClub")
	defer span.End()

	span.SetAttributes(
		attribute.String("clubID", clubID.String()),
		attribute.String("userID", userID.String()),
		attribute.String("role", string(role)),
	)

	db = db.WithContext(ctx)

	member := Member{
		ClubID: clubID,
		UserID: userID,
		Role:   role,
	}

	span.AddEvent("upserting membership")
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "club_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&member).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upsert membership")
		return nil, fmt.Errorf("failed to upsert membership: %w", err)
	}

	// DoNothing leaves the struct zeroed when the row already existed
	if member.ID == uuid.Nil {
		err = db.Where("club_id = ? AND user_id = ?", clubID, userID).First(&member).Error
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch existing membership")
			return nil, fmt.Errorf("failed to fetch existing membership: %w", err)
		}
	}

	span.SetStatus(codes.Ok, "membership recorded")
	return &member, nil
}

// IsClubAdmin reports whether the user holds the ADMIN role in the club.
// Globally privileged users are handled by the caller, not here.
func IsClubAdmin(
	ctx context.Context,
	db *gorm.DB,
	clubID uuid.UUID,
	userID uuid.UUID,
) (bool, error) {
	ctx, span := tracer.Start(ctx, "IsClubAdmin")
	defer span.End()

	span.SetAttributes(
		attribute.String("clubID", clubID.String()),
		attribute.String("userID", userID.String()),
	)

	span.AddEvent("checking for an ADMIN membership row")
	exists, err := Exists[Member](
		ctx,
		db,
		"club_id = ? AND user_id = ? AND role = ?",
		clubID, userID, types.MemberRoleAdmin,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to query membership")
		return false, fmt.Errorf("failed to query membership: %w", err)
	}

	return exists, nil
}
