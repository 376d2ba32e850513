package audit

import (
	"github.com/clubhub/club-api/internal/types"
)

var schemaVersion = "0.1.0"
var logContext = "audit"

type Disposition string

const (
	DispositionNeutral Disposition = "neutral"
	DispositionGood    Disposition = "good"
	DispositionBad     Disposition = "bad"
)

type EventType string

const (
	EvtClubCreated              EventType = "club_created"
	EvtMemberJoined             EventType = "member_joined"
	EvtApplicationCreated       EventType = "application_created"
	EvtApplicationStatusChanged EventType = "application_status_changed"
	EvtSubmissionSaved          EventType = "submission_saved"
	EvtSubmissionSubmitted      EventType = "submission_submitted"
	EvtSubmissionRejected       EventType = "submission_rejected"
)

type Message struct {
	ClubID        *string     `json:"club_id"`
	UserID        *string     `json:"user_id"`
	LogContext    string      `json:"log_context" validate:"required"`
	SchemaVersion string      `json:"version"     validate:"required"`
	Disposition   Disposition `json:"disposition" validate:"required"`
	Type          EventType   `json:"event_type"  validate:"required"`

	Timestamp types.UnixMilli `json:"timestamp" validate:"required"`
}

type ClubCreatedEvent struct {
	ClubID string `json:"club_id" validate:"required"`
	Name   string `json:"name"    validate:"required"`
}

type ClubCreated struct {
	Event ClubCreatedEvent `json:"event" validate:"required"`
	Message
}

type MemberJoinedEvent struct {
	ClubID string           `json:"club_id" validate:"required"`
	Role   types.MemberRole `json:"role"    validate:"required"`
}

type MemberJoined struct {
	Event MemberJoinedEvent `json:"event" validate:"required"`
	Message
}

type ApplicationCreatedEvent struct {
	ApplicationID string `json:"application_id" validate:"required"`
	Name          string `json:"name"           validate:"required"`
	QuestionCount int    `json:"question_count"`
}

type ApplicationCreated struct {
	Event ApplicationCreatedEvent `json:"event" validate:"required"`
	Message
}

type ApplicationStatusChangedEvent struct {
	ApplicationID string                  `json:"application_id" validate:"required"`
	From          types.ApplicationStatus `json:"from"           validate:"required"`
	To            types.ApplicationStatus `json:"to"             validate:"required"`
}

type ApplicationStatusChanged struct {
	Event ApplicationStatusChangedEvent `json:"event" validate:"required"`
	Message
}

type SubmissionEvent struct {
	SubmissionID  string                 `json:"submission_id"  validate:"required"`
	ApplicationID string                 `json:"application_id" validate:"required"`
	Status        types.SubmissionStatus `json:"status"`
	AnswerCount   int                    `json:"answer_count"`
}

type Submission struct {
	Event SubmissionEvent `json:"event" validate:"required"`
	Message
}

type SubmissionRejectedEvent struct {
	ApplicationID string `json:"application_id" validate:"required"`
	// Required questions left unanswered at submit time
	MissingQuestionIDs []string `json:"missing_question_ids"`
}

type SubmissionRejected struct {
	Event SubmissionRejectedEvent `json:"event" validate:"required"`
	Message
}
