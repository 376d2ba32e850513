package models

import (
	"github.com/google/uuid"

	"github.com/clubhub/club-api/internal/types"
)

type Club struct {
	Name         string `gorm:"uniqueIndex"`
	Description  string
	TimelineDesc string
	Model
	SocialMedia []SocialMedia `gorm:"foreignKey:ClubID"`
	ContactInfo []ContactInfo `gorm:"foreignKey:ClubID"`
}

func (Club) TableName() string {
	return "club"
}

func (c Club) GetID() uuid.UUID {
	return c.ID
}

type SocialMedia struct {
	Platform types.SocialMediaPlatform `gorm:"type:text"`
	URL      string
	Model
	ClubID uuid.UUID
}

func (SocialMedia) TableName() string {
	return "social_media"
}

func (s SocialMedia) GetID() uuid.UUID {
	return s.ID
}

func (s SocialMedia) Detail() types.SocialMediaDetail {
	return types.SocialMediaDetail{
		ID:       s.ID.String(),
		Platform: s.Platform,
		URL:      s.URL,
	}
}

type ContactInfo struct {
	Type  types.ContactType `gorm:"type:text"`
	Value string
	Role  string
	Model
	ClubID uuid.UUID
}

func (ContactInfo) TableName() string {
	return "contact_info"
}

func (c ContactInfo) GetID() uuid.UUID {
	return c.ID
}

func (c ContactInfo) Detail() types.ContactInfoDetail {
	return types.ContactInfoDetail{
		ID:    c.ID.String(),
		Type:  c.Type,
		Value: c.Value,
		Role:  c.Role,
	}
}
