package types

type (
	QuestionRequest struct {
		// Zero-based display position, unique within the application
		OrderNumber int          `json:"order_number" validate:"min=0"`
		Question    string       `json:"question"     validate:"required,max=4096"`
		Required    bool         `json:"required"`
		Type        QuestionType `json:"type"         validate:"required,eq=TEXT_INPUT|eq=TEXT_FIELD|eq=MULTIPLE_CHOICE|eq=MULTIPLE_SELECT"`
		// Only meaningful for MULTIPLE_CHOICE / MULTIPLE_SELECT
		AnswerChoices []string `json:"answer_choices" validate:"max=64,dive,max=1024"`
	}

	CreateApplicationRequest struct {
		Name        string            `json:"name"        validate:"required,max=191"`
		Description string            `json:"description" validate:"max=8192"`
		Questions   []QuestionRequest `json:"questions"   validate:"dive"`
	}

	UpdateApplicationRequest struct {
		Name        Optional[string]            `json:"name"`
		Description Optional[string]            `json:"description"`
		Status      Optional[ApplicationStatus] `json:"status"`
		// Required once status leaves DRAFT
		Deadline Optional[UnixMilli] `json:"deadline"`
		// When present, replaces the whole question list
		Questions *[]QuestionRequest `json:"questions" validate:"omitempty,dive"`
	}

	QuestionDetail struct {
		ID            string       `json:"id"             validate:"required,uuid_rfc4122" format:"uuid"`
		OrderNumber   int          `json:"order_number"`
		Question      string       `json:"question"       validate:"required"`
		Required      bool         `json:"required"`
		Type          QuestionType `json:"type"           validate:"required"`
		AnswerChoices []string     `json:"answer_choices"`
	}

	ApplicationDetail struct {
		ID          string            `json:"id"          validate:"required,uuid_rfc4122" format:"uuid"`
		ClubID      string            `json:"club_id"     validate:"required,uuid_rfc4122" format:"uuid"`
		Name        string            `json:"name"        validate:"required"`
		Description string            `json:"description"`
		Status      ApplicationStatus `json:"status"      validate:"required,eq=DRAFT|eq=OPEN|eq=CLOSED"`
		Deadline    *UnixMilli        `json:"deadline"`
		// Ascending order_number
		Questions []QuestionDetail `json:"questions"`
	}
)
