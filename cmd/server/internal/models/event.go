package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/clubhub/club-api/internal/types"
)

type ClubEvent struct {
	Name        string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Model
	ClubID   uuid.UUID `gorm:"index"`
	InPerson bool
}

func (ClubEvent) TableName() string {
	return "club_event"
}

func (e ClubEvent) GetID() uuid.UUID {
	return e.ID
}

func (e ClubEvent) Detail() types.EventDetail {
	return types.EventDetail{
		ID:          e.ID.String(),
		ClubID:      e.ClubID.String(),
		Name:        e.Name,
		Description: e.Description,
		Start:       types.NewUnixMilli(e.Start),
		End:         types.NewUnixMilli(e.End),
		InPerson:    e.InPerson,
		Location:    e.Location,
	}
}
