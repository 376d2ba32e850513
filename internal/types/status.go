package types

// Lifecycle of a recruitment application as club admins publish it.
type ApplicationStatus string

const (
	ApplicationStatusDraft  ApplicationStatus = "DRAFT"  // Visible to club admins only, deadline not yet meaningful
	ApplicationStatusOpen   ApplicationStatus = "OPEN"   // Accepting submissions until the deadline
	ApplicationStatusClosed ApplicationStatus = "CLOSED" // No longer accepting submissions
)

// Lifecycle of one user's submission against an application.
type SubmissionStatus string

const (
	SubmissionStatusNew       SubmissionStatus = "NEW"       // Created but nothing saved yet
	SubmissionStatusDraft     SubmissionStatus = "DRAFT"     // Saved for later, re-enterable any number of times
	SubmissionStatusSubmitted SubmissionStatus = "SUBMITTED" // Final, accepts no further edits
)

type QuestionType string

const (
	QuestionTypeTextInput      QuestionType = "TEXT_INPUT"
	QuestionTypeTextField      QuestionType = "TEXT_FIELD"
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeMultipleSelect QuestionType = "MULTIPLE_SELECT"
	// Reserved. Not accepted on question create until artifact storage lands.
	QuestionTypeFileUpload QuestionType = "FILE_UPLOAD"
)

// ListAnswered reports whether answers to this question type carry a list of
// strings rather than a single string.
func (t QuestionType) ListAnswered() bool {
	return t == QuestionTypeMultipleSelect
}

// Choiced reports whether the question carries a fixed set of answer choices.
func (t QuestionType) Choiced() bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeMultipleSelect
}

type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

type SocialMediaPlatform string

const (
	SocialMediaPlatformWebsite   SocialMediaPlatform = "WEBSITE"
	SocialMediaPlatformInstagram SocialMediaPlatform = "INSTAGRAM"
	SocialMediaPlatformFacebook  SocialMediaPlatform = "FACEBOOK"
	SocialMediaPlatformTwitter   SocialMediaPlatform = "TWITTER"
	SocialMediaPlatformLinkedIn  SocialMediaPlatform = "LINKEDIN"
)

type ContactType string

const (
	ContactTypeEmail ContactType = "EMAIL"
	ContactTypePhone ContactType = "PHONE"
)
