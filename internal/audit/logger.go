package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/clubhub/club-api/internal/logger"
	"github.com/clubhub/club-api/internal/types"
)

type Context struct {
	ClubID *string
	UserID *string
}

func dispForStatus(status types.SubmissionStatus) Disposition {
	switch status {
	case types.SubmissionStatusSubmitted:
		return DispositionGood
	case types.SubmissionStatusNew, types.SubmissionStatusDraft:
		return DispositionNeutral
	default:
		return DispositionNeutral
	}
}

func (m *Message) fill(c Context, t EventType, d Disposition) {
	m.Type = t
	m.LogContext = logContext
	m.SchemaVersion = schemaVersion
	m.Timestamp = types.UnixMilli(time.Now().UTC().UnixMilli())
	m.ClubID = c.ClubID
	m.UserID = c.UserID
	m.Disposition = d
}

func emit(event any, name string, attrs ...any) {
	evtStr, err := json.Marshal(event)
	if err != nil {
		args := append([]any{"event", name}, attrs...)
		logger.Logger.Error("could not serialize audit event", args...)
		return
	}

	// TODO: should this go to stderr?
	fmt.Println(string(evtStr))
}

func LogClubCreated(c Context, clubID string, name string) {
	event := ClubCreated{}
	event.fill(c, EvtClubCreated, DispositionNeutral)

	event.Event.ClubID = clubID
	event.Event.Name = name

	emit(event, "ClubCreated", "clubID", clubID, "name", name)
}

func LogMemberJoined(c Context, clubID string, role types.MemberRole) {
	event := MemberJoined{}
	event.fill(c, EvtMemberJoined, DispositionNeutral)

	event.Event.ClubID = clubID
	event.Event.Role = role

	emit(event, "MemberJoined", "clubID", clubID, "role", role)
}

func LogApplicationCreated(c Context, applicationID string, name string, questionCount int) {
	event := ApplicationCreated{}
	event.fill(c, EvtApplicationCreated, DispositionNeutral)

	event.Event.ApplicationID = applicationID
	event.Event.Name = name
	event.Event.QuestionCount = questionCount

	emit(event, "ApplicationCreated", "applicationID", applicationID, "name", name)
}

func LogApplicationStatusChanged(
	c Context,
	applicationID string,
	from types.ApplicationStatus,
	to types.ApplicationStatus,
) {
	event := ApplicationStatusChanged{}
	event.fill(c, EvtApplicationStatusChanged, DispositionNeutral)

	event.Event.ApplicationID = applicationID
	event.Event.From = from
	event.Event.To = to

	emit(event, "ApplicationStatusChanged", "applicationID", applicationID, "from", from, "to", to)
}

func LogSubmissionSaved(
	c Context,
	submissionID string,
	applicationID string,
	status types.SubmissionStatus,
	answerCount int,
) {
	event := Submission{}
	event.fill(c, EvtSubmissionSaved, dispForStatus(status))

	event.Event.SubmissionID = submissionID
	event.Event.ApplicationID = applicationID
	event.Event.Status = status
	event.Event.AnswerCount = answerCount

	emit(event, "SubmissionSaved", "submissionID", submissionID, "status", status)
}

func LogSubmissionSubmitted(
	c Context,
	submissionID string,
	applicationID string,
	answerCount int,
) {
	event := Submission{}
	event.fill(c, EvtSubmissionSubmitted, DispositionGood)

	event.Event.SubmissionID = submissionID
	event.Event.ApplicationID = applicationID
	event.Event.Status = types.SubmissionStatusSubmitted
	event.Event.AnswerCount = answerCount

	emit(event, "SubmissionSubmitted", "submissionID", submissionID)
}

func LogSubmissionRejected(c Context, applicationID string, missingQuestionIDs []string) {
	event := SubmissionRejected{}
	event.fill(c, EvtSubmissionRejected, DispositionBad)

	event.Event.ApplicationID = applicationID
	event.Event.MissingQuestionIDs = missingQuestionIDs

	emit(event, "SubmissionRejected", "applicationID", applicationID)
}
