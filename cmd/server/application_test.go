package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/clubhub/club-api/internal/types"
)

func (s *ServerTestSuite) Test_CreateApplicationTests() {
	tests := []struct {
		name           string
		auth           *clientAuth
		bodyTester     func(t *testing.T, body map[string]any)
		clubID         string
		payload        string
		expectedStatus int
	}{
		{
			name:   "Valid",
			clubID: clubChess.ID.String(),
			auth:   &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload: `{
				"name": "Next Season Recruitment",
				"description": "All skill levels welcome",
				"questions": [
					{"order_number": 0, "question": "What is your rating?", "required": true, "type": "TEXT_INPUT"},
					{"order_number": 1, "question": "Preferred opening?", "required": false, "type": "MULTIPLE_CHOICE", "answer_choices": ["e4", "d4", "c4"]}
				]
			}`,
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, string(types.ApplicationStatusDraft), body["status"], "new applications start as drafts")
				assert.Len(t, body["questions"], 2, "questions created with the application")
				assert.Nil(t, body["deadline"], "no deadline while drafting")
			},
		},
		{
			name:           "ValidGlobalAdmin",
			clubID:         clubChess.ID.String(),
			auth:           &clientAuth{id: authAdmin.ID.String(), token: authToken},
			payload:        `{"name": "Admin Created Recruitment", "questions": []}`,
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, string(types.ApplicationStatusDraft), body["status"])
			},
		},
		{
			name:   "InvalidDuplicateOrderNumbers",
			clubID: clubChess.ID.String(),
			auth:   &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload: `{
				"name": "Broken Recruitment",
				"questions": [
					{"order_number": 0, "question": "First?", "type": "TEXT_INPUT"},
					{"order_number": 0, "question": "Also first?", "type": "TEXT_INPUT"}
				]
			}`,
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "message", "contains message key")
				assert.Contains(t, body["message"], "duplicate order number")
			},
		},
		{
			name:           "InvalidUnknownQuestionType",
			clubID:         clubChess.ID.String(),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"name": "Broken Recruitment", "questions": [{"order_number": 0, "question": "Upload?", "type": "FILE_UPLOAD"}]}`,
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name:           "InvalidMissingName",
			clubID:         clubChess.ID.String(),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"questions": []}`,
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name:           "InvalidNonAdmin",
			clubID:         clubChess.ID.String(),
			auth:           &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload:        `{"name": "Sneaky Recruitment", "questions": []}`,
			expectedStatus: http.StatusForbidden,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "message", "contains message key")
				assert.Contains(t, body["message"], "club admin")
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req, err := http.NewRequest(
				http.MethodPost,
				fmt.Sprintf("%s/v1/club/%s/application/", s.server.URL, tt.clubID),
				strings.NewReader(tt.payload),
			)
			s.Require().NoError(err, "failed to construct http request")

			req.Header.Add("Content-Type", "application/json")

			if tt.auth != nil {
				req.SetBasicAuth(tt.auth.id, tt.auth.token)
			}

			resp, err := doRequest(s.T(), req)
			s.Require().NoError(err)

			s.Equal(tt.expectedStatus, resp.code, "incorrect status code")
			body := make(map[string]any)
			s.Require().NoError(json.Unmarshal([]byte(resp.body), &body))

			tt.bodyTester(s.T(), body)
		})
	}
}

func (s *ServerTestSuite) Test_ListClubApplications() {
	req, err := http.NewRequest(
		http.MethodGet,
		fmt.Sprintf("%s/v1/club/%s/application/", s.server.URL, clubChess.ID.String()),
		nil,
	)
	s.Require().NoError(err, "failed to construct http request")
	req.SetBasicAuth(authOwner.ID.String(), authToken)

	resp, err := doRequest(s.T(), req)
	s.Require().NoError(err)

	s.Equal(http.StatusOK, resp.code, "incorrect status code")

	var body []map[string]any
	s.Require().NoError(json.Unmarshal([]byte(resp.body), &body))
	s.Len(body, 4, "admin listing includes drafts")
}

func (s *ServerTestSuite) Test_ListClubApplicationsNonAdmin() {
	req, err := http.NewRequest(
		http.MethodGet,
		fmt.Sprintf("%s/v1/club/%s/application/", s.server.URL, clubChess.ID.String()),
		nil,
	)
	s.Require().NoError(err, "failed to construct http request")
	req.SetBasicAuth(authApplicant.ID.String(), authToken)

	resp, err := doRequest(s.T(), req)
	s.Require().NoError(err)

	s.Equal(http.StatusForbidden, resp.code, "incorrect status code")
}

func (s *ServerTestSuite) Test_GetApplicationTests() {
	tests := []struct {
		name           string
		auth           *clientAuth
		bodyTester     func(t *testing.T, body map[string]any)
		applicationID  string
		expectedStatus int
	}{
		{
			name:           "ValidOpen",
			applicationID:  applicationOpen.ID.String(),
			auth:           &clientAuth{id: authApplicant.ID.String(), token: authToken},
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, applicationOpen.Name, body["name"])
				assert.Equal(t, string(types.ApplicationStatusOpen), body["status"])

				questions, ok := body["questions"].([]any)
				assert.True(t, ok, "questions is a list")
				assert.Len(t, questions, 3)

				// order_number ascending
				for i, raw := range questions {
					question, ok := raw.(map[string]any)
					assert.True(t, ok, "question is an object")
					assert.EqualValues(t, i, question["order_number"])
				}
			},
		},
		{
			name:           "InvalidDraftHiddenFromNonAdmin",
			applicationID:  applicationDraft.ID.String(),
			auth:           &clientAuth{id: authApplicant.ID.String(), token: authToken},
			expectedStatus: http.StatusNotFound,
			bodyTester:     notFoundBodyTester,
		},
		{
			name:           "ValidDraftVisibleToClubAdmin",
			applicationID:  applicationDraft.ID.String(),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, string(types.ApplicationStatusDraft), body["status"])
			},
		},
		{
			name:           "ValidDraftVisibleToGlobalAdmin",
			applicationID:  applicationDraft.ID.String(),
			auth:           &clientAuth{id: authAdmin.ID.String(), token: authToken},
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, string(types.ApplicationStatusDraft), body["status"])
			},
		},
		{
			name:           "InvalidUnknownApplication",
			applicationID:  uuid.New().String(),
			auth:           &clientAuth{id: authApplicant.ID.String(), token: authToken},
			expectedStatus: http.StatusNotFound,
			bodyTester:     notFoundBodyTester,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req, err := http.NewRequest(
				http.MethodGet,
				fmt.Sprintf("%s/v1/application/%s/", s.server.URL, tt.applicationID),
				nil,
			)
			s.Require().NoError(err, "failed to construct http request")

			if tt.auth != nil {
				req.SetBasicAuth(tt.auth.id, tt.auth.token)
			}

			resp, err := doRequest(s.T(), req)
			s.Require().NoError(err)

			s.Equal(tt.expectedStatus, resp.code, "incorrect status code")
			body := make(map[string]any)
			s.Require().NoError(json.Unmarshal([]byte(resp.body), &body))

			tt.bodyTester(s.T(), body)
		})
	}
}

func (s *ServerTestSuite) Test_UpdateApplicationTests() {
	deadline := time.Date(3000, time.March, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	tests := []struct {
		name           string
		auth           *clientAuth
		bodyTester     func(t *testing.T, body map[string]any)
		applicationID  string
		payload        string
		expectedStatus int
	}{
		{
			name:          "ValidPublishDraft",
			applicationID: applicationDraft.ID.String(),
			auth:          &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"status": "OPEN", "deadline": %d}`,
				deadline,
			),
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, string(types.ApplicationStatusOpen), body["status"])
				assert.EqualValues(t, deadline, body["deadline"])
			},
		},
		{
			name:           "InvalidPublishWithoutDeadline",
			applicationID:  applicationDraft.ID.String(),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"status": "OPEN"}`,
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "message", "contains message key")
				assert.Contains(t, body["message"], "deadline is required")
			},
		},
		{
			name:           "InvalidClearDeadlineWhileOpen",
			applicationID:  applicationOpen.ID.String(),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"deadline": null}`,
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "message", "contains message key")
				assert.Contains(t, body["message"], "deadline is required")
			},
		},
		{
			name:           "InvalidStatus",
			applicationID:  applicationDraft.ID.String(),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"status": "ARCHIVED"}`,
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "message", "contains message key")
				assert.Contains(t, body["message"], "invalid status")
			},
		},
		{
			name:           "ValidRename",
			applicationID:  applicationDraft.ID.String(),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"name": "Renamed Recruitment"}`,
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Renamed Recruitment", body["name"])
			},
		},
		{
			name:          "ValidReplaceQuestions",
			applicationID: applicationDraft.ID.String(),
			auth:          &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload: `{"questions": [
				{"order_number": 0, "question": "New first question?", "required": true, "type": "TEXT_FIELD"},
				{"order_number": 1, "question": "New second question?", "required": false, "type": "TEXT_INPUT"}
			]}`,
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Len(t, body["questions"], 2, "old question list fully replaced")
			},
		},
		{
			name:           "InvalidNonAdmin",
			applicationID:  applicationOpen.ID.String(),
			auth:           &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload:        `{"name": "hijacked"}`,
			expectedStatus: http.StatusNotFound,
			bodyTester:     notFoundBodyTester,
		},
		{
			name:           "ValidGlobalAdmin",
			applicationID:  applicationOpen.ID.String(),
			auth:           &clientAuth{id: authAdmin.ID.String(), token: authToken},
			payload:        `{"description": "Extended to all students"}`,
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Extended to all students", body["description"])
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req, err := http.NewRequest(
				http.MethodPatch,
				fmt.Sprintf("%s/v1/application/%s/", s.server.URL, tt.applicationID),
				strings.NewReader(tt.payload),
			)
			s.Require().NoError(err, "failed to construct http request")

			req.Header.Add("Content-Type", "application/json")

			if tt.auth != nil {
				req.SetBasicAuth(tt.auth.id, tt.auth.token)
			}

			resp, err := doRequest(s.T(), req)
			s.Require().NoError(err)

			s.Equal(tt.expectedStatus, resp.code, "incorrect status code")
			body := make(map[string]any)
			s.Require().NoError(json.Unmarshal([]byte(resp.body), &body))

			tt.bodyTester(s.T(), body)
		})
	}
}

// Replacing the question list discards answers tied to the old questions
func (s *ServerTestSuite) Test_ReplaceQuestionsDiscardsAnswers() {
	payload := `{"questions": [{"order_number": 0, "question": "Fresh start?", "required": false, "type": "TEXT_INPUT"}]}`

	req, err := http.NewRequest(
		http.MethodPatch,
		fmt.Sprintf("%s/v1/application/%s/", s.server.URL, applicationOpen.ID.String()),
		strings.NewReader(payload),
	)
	s.Require().NoError(err, "failed to construct http request")
	req.Header.Add("Content-Type", "application/json")
	req.SetBasicAuth(authOwner.ID.String(), authToken)

	resp, err := doRequest(s.T(), req)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, resp.code, "incorrect status code")

	// The draft submission from before the edit is still there, but empty
	req, err = http.NewRequest(
		http.MethodGet,
		fmt.Sprintf("%s/v1/application/%s/submission/", s.server.URL, applicationOpen.ID.String()),
		nil,
	)
	s.Require().NoError(err, "failed to construct http request")
	req.SetBasicAuth(authApplicant2.ID.String(), authToken)

	resp, err = doRequest(s.T(), req)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, resp.code, "incorrect status code")

	body := make(map[string]any)
	s.Require().NoError(json.Unmarshal([]byte(resp.body), &body))
	s.Equal(submissionDraft.ID.String(), body["submission_id"])
	s.Empty(body["answers"], "answers to replaced questions removed")
}
