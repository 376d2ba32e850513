package types

type (
	CreateClubRequest struct {
		// Club names are unique across the system
		Name        string `json:"name"          validate:"required,max=191"`
		Description string `json:"description"   validate:"max=4096"`
		TimelineDesc string `json:"timeline_desc" validate:"max=1024"`
	}

	UpdateClubRequest struct {
		Description  Optional[string] `json:"description"`
		TimelineDesc Optional[string] `json:"timeline_desc"`
	}

	SocialMediaRequest struct {
		Platform SocialMediaPlatform `json:"platform" validate:"required,eq=WEBSITE|eq=INSTAGRAM|eq=FACEBOOK|eq=TWITTER|eq=LINKEDIN"`
		URL      string              `json:"url"      validate:"required,url,max=2048"`
	}

	SocialMediaDetail struct {
		ID       string              `json:"id"       validate:"required,uuid_rfc4122" format:"uuid"`
		Platform SocialMediaPlatform `json:"platform" validate:"required"`
		URL      string              `json:"url"      validate:"required"`
	}

	ContactInfoRequest struct {
		Type  ContactType `json:"type"  validate:"required,eq=EMAIL|eq=PHONE"`
		Value string      `json:"value" validate:"required,max=320"`
		Role  string      `json:"role"  validate:"max=191"`
	}

	ContactInfoDetail struct {
		ID    string      `json:"id"    validate:"required,uuid_rfc4122" format:"uuid"`
		Type  ContactType `json:"type"  validate:"required"`
		Value string      `json:"value" validate:"required"`
		Role  string      `json:"role"`
	}

	ClubSummary struct {
		ID   string `json:"id"   validate:"required,uuid_rfc4122" format:"uuid"`
		Name string `json:"name" validate:"required"`
	}

	ClubDetail struct {
		ID           string              `json:"id"            validate:"required,uuid_rfc4122" format:"uuid"`
		Name         string              `json:"name"          validate:"required"`
		Description  string              `json:"description"`
		TimelineDesc string              `json:"timeline_desc"`
		SocialMedia  []SocialMediaDetail `json:"social_media"`
		ContactInfo  []ContactInfoDetail `json:"contact_info"`
		// Applications visible to the requesting user. Club admins also see drafts.
		Applications []ApplicationDetail `json:"applications"`
	}

	// One club the caller belongs to, with the role they hold there.
	MembershipDetail struct {
		ClubID string     `json:"club_id" validate:"required,uuid_rfc4122" format:"uuid"`
		Name   string     `json:"name"    validate:"required"`
		Role   MemberRole `json:"role"    validate:"required,eq=ADMIN|eq=MEMBER"`
	}

	JoinClubResponse struct {
		ClubID string     `json:"club_id" validate:"required,uuid_rfc4122" format:"uuid"`
		Role   MemberRole `json:"role"    validate:"required,eq=ADMIN|eq=MEMBER"`
	}
)
