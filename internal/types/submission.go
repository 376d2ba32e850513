package types

type (
	SubmissionAnswer struct {
		QuestionID string `json:"question_id" validate:"required,uuid_rfc4122" format:"uuid"`
		// String for TEXT_INPUT / TEXT_FIELD / MULTIPLE_CHOICE, string list for MULTIPLE_SELECT
		Answer AnswerValue `json:"answer"`
	}

	// SaveSubmissionRequest is the save-or-submit contract. The submission row
	// is keyed on (application, user); submission_id is accepted for parity
	// with clients that track it but never changes which row is targeted.
	SaveSubmissionRequest struct {
		SubmissionID *string            `json:"submission_id" validate:"omitempty,uuid_rfc4122" format:"uuid"`
		Answers      []SubmissionAnswer `json:"answers"       validate:"dive"`
		// When true every required question must carry a non-empty answer
		Submit bool `json:"submit"`
	}

	AnswerDetail struct {
		QuestionID string      `json:"question_id" validate:"required,uuid_rfc4122" format:"uuid"`
		Answer     AnswerValue `json:"answer"`
	}

	SubmissionResponse struct {
		SubmissionID  string           `json:"submission_id"  validate:"required,uuid_rfc4122"           format:"uuid"`
		ApplicationID string           `json:"application_id" validate:"required,uuid_rfc4122"           format:"uuid"`
		Status        SubmissionStatus `json:"status"         validate:"required,eq=NEW|eq=DRAFT|eq=SUBMITTED"`
		UpdatedAt     UnixMilli        `json:"updated_at"     validate:"required"`
		Answers       []AnswerDetail   `json:"answers"`
	}

	// SubmissionDetail joins a submission with its application so a client can
	// render the whole form read-only, questions in display order.
	SubmissionDetail struct {
		SubmissionID string            `json:"submission_id" validate:"required,uuid_rfc4122"           format:"uuid"`
		Status       SubmissionStatus  `json:"status"        validate:"required,eq=NEW|eq=DRAFT|eq=SUBMITTED"`
		UpdatedAt    UnixMilli         `json:"updated_at"    validate:"required"`
		Application  ApplicationDetail `json:"application"   validate:"required"`
		Answers      []AnswerDetail    `json:"answers"`
	}
)
