package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (s *ServerTestSuite) Test_SaveSubmissionTests() {
	tests := []struct {
		name           string
		auth           *clientAuth
		bodyTester     func(t *testing.T, body map[string]any)
		applicationID  string
		payload        string
		expectedStatus int
	}{
		{
			name:          "ValidTextAnswer",
			applicationID: applicationOpen.ID.String(),
			auth:          &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": "Magnus"}]}`,
				applicationOpen.Questions[0].ID.String(),
			),
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "status", "contains status key")
				assert.Contains(t, body["status"], "DRAFT")
				assert.Len(t, body["answers"], 1, "one answer stored")
			},
		},
		{
			name:          "ValidListAnswer",
			applicationID: applicationOpen.ID.String(),
			auth:          &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": ["Monday", "Friday"]}]}`,
				applicationOpen.Questions[2].ID.String(),
			),
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "status", "contains status key")
				assert.Contains(t, body["status"], "DRAFT")
			},
		},
		{
			name:           "ValidNoAnswers",
			applicationID:  applicationOpen.ID.String(),
			auth:           &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload:        `{"answers": []}`,
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "status", "contains status key")
				assert.Contains(t, body["status"], "DRAFT")
				assert.Len(t, body["answers"], 0, "no answers stored")
			},
		},
		{
			name:          "InvalidListForTextQuestion",
			applicationID: applicationOpen.ID.String(),
			auth:          &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": ["Magnus"]}]}`,
				applicationOpen.Questions[0].ID.String(),
			),
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assertErrorBodyWithFields(t, body)
				assert.Contains(t, body["message"], "answer shape")
			},
		},
		{
			name:          "InvalidTextForSelectQuestion",
			applicationID: applicationOpen.ID.String(),
			auth:          &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": "Monday"}]}`,
				applicationOpen.Questions[2].ID.String(),
			),
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name:          "InvalidUnknownQuestion",
			applicationID: applicationOpen.ID.String(),
			auth:          &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": "hello"}]}`,
				uuid.New().String(),
			),
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name:          "InvalidQuestionFromOtherApplication",
			applicationID: applicationOpen.ID.String(),
			auth:          &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": "Software"}]}`,
				applicationOpen2.Questions[0].ID.String(),
			),
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name:          "InvalidDuplicateAnswer",
			applicationID: applicationOpen.ID.String(),
			auth:          &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": "a"}, {"question_id": "%s", "answer": "b"}]}`,
				applicationOpen.Questions[0].ID.String(),
				applicationOpen.Questions[0].ID.String(),
			),
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "message", "contains message key")
				assert.Contains(t, body["message"], "duplicate answer")
			},
		},
		{
			name:           "InvalidMalformedQuestionID",
			applicationID:  applicationOpen.ID.String(),
			auth:           &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload:        `{"answers": [{"question_id": "not-a-uuid", "answer": "hello"}]}`,
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name:          "InvalidOversizedAnswer",
			applicationID: applicationOpen.ID.String(),
			auth:          &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": "%s"}]}`,
				applicationOpen.Questions[1].ID.String(),
				longString(70000),
			),
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "message", "contains message key")
				assert.Contains(t, body["message"], "size limit")
			},
		},
		{
			name:          "InvalidExpiredDeadline",
			applicationID: applicationExpired.ID.String(),
			auth:          &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": "Magnus"}]}`,
				applicationExpired.Questions[0].ID.String(),
			),
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "message", "contains message key")
				assert.Contains(t, body["message"], "not accepting submissions")
			},
		},
		{
			name:           "InvalidClosedApplication",
			applicationID:  applicationClosed.ID.String(),
			auth:           &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload:        `{"answers": []}`,
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "message", "contains message key")
				assert.Contains(t, body["message"], "not accepting submissions")
			},
		},
		{
			name:           "InvalidDraftApplication",
			applicationID:  applicationDraft.ID.String(),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"answers": []}`,
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "message", "contains message key")
				assert.Contains(t, body["message"], "not accepting submissions")
			},
		},
		{
			name:          "InvalidAlreadySubmitted",
			applicationID: applicationOpen2.ID.String(),
			auth:          &clientAuth{id: authApplicant2.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": "Mechanical"}]}`,
				applicationOpen2.Questions[0].ID.String(),
			),
			expectedStatus: http.StatusConflict,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "message", "contains message key")
				assert.Contains(t, body["message"], "final")
			},
		},
		{
			name:           "InvalidUnknownApplication",
			applicationID:  uuid.New().String(),
			auth:           &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload:        `{"answers": []}`,
			expectedStatus: http.StatusNotFound,
			bodyTester:     notFoundBodyTester,
		},
		{
			name:           "InvalidNoAuth",
			applicationID:  applicationOpen.ID.String(),
			auth:           nil,
			payload:        `{"answers": []}`,
			expectedStatus: http.StatusUnauthorized,
			bodyTester:     unauthorizedBodyTester,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req, err := http.NewRequest(
				http.MethodPut,
				fmt.Sprintf("%s/v1/application/%s/submission/", s.server.URL, tt.applicationID),
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

func (s *ServerTestSuite) Test_SubmitSubmissionTests() {
	tests := []struct {
		name           string
		auth           *clientAuth
		bodyTester     func(t *testing.T, body map[string]any)
		applicationID  string
		payload        string
		expectedStatus int
	}{
		{
			name:          "ValidAllRequiredAnswered",
			applicationID: applicationOpen.ID.String(),
			auth:          &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": "Magnus"}, {"question_id": "%s", "answer": "I love chess"}], "submit": true}`,
				applicationOpen.Questions[0].ID.String(),
				applicationOpen.Questions[1].ID.String(),
			),
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "status", "contains status key")
				assert.Contains(t, body["status"], "SUBMITTED")
				assert.Len(t, body["answers"], 2, "both answers stored")
			},
		},
		{
			// The draft already holds an answer for the second required
			// question, so the request only carries the first
			name:          "ValidMergesSavedDraftAnswers",
			applicationID: applicationOpen.ID.String(),
			auth:          &clientAuth{id: authApplicant2.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": "Hikaru"}], "submit": true}`,
				applicationOpen.Questions[0].ID.String(),
			),
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "status", "contains status key")
				assert.Contains(t, body["status"], "SUBMITTED")
				assert.Len(t, body["answers"], 2, "saved and new answers stored")
			},
		},
		{
			name:          "InvalidMissingRequired",
			applicationID: applicationOpen.ID.String(),
			auth:          &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": "Magnus"}], "submit": true}`,
				applicationOpen.Questions[0].ID.String(),
			),
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assertErrorBodyWithFields(t, body)
				assert.Contains(t, body["message"], "missing required answers")

				fields, ok := body["fields"].(map[string]any)
				assert.True(t, ok, "fields is an object")
				assert.Contains(
					t,
					fields,
					applicationOpen.Questions[1].ID.String(),
					"names the unanswered question",
				)
			},
		},
		{
			// An empty string does not satisfy a required question
			name:          "InvalidEmptyRequiredAnswer",
			applicationID: applicationOpen.ID.String(),
			auth:          &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": "Magnus"}, {"question_id": "%s", "answer": ""}], "submit": true}`,
				applicationOpen.Questions[0].ID.String(),
				applicationOpen.Questions[1].ID.String(),
			),
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assertErrorBodyWithFields(t, body)

				fields, ok := body["fields"].(map[string]any)
				assert.True(t, ok, "fields is an object")
				assert.Contains(t, fields, applicationOpen.Questions[1].ID.String())
			},
		},
		{
			name:           "InvalidNothingAnswered",
			applicationID:  applicationOpen.ID.String(),
			auth:           &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload:        `{"answers": [], "submit": true}`,
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assertErrorBodyWithFields(t, body)

				fields, ok := body["fields"].(map[string]any)
				assert.True(t, ok, "fields is an object")
				assert.Len(t, fields, 2, "both required questions reported")
			},
		},
		{
			name:          "InvalidResubmit",
			applicationID: applicationOpen2.ID.String(),
			auth:          &clientAuth{id: authApplicant2.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"answers": [{"question_id": "%s", "answer": "Electrical"}], "submit": true}`,
				applicationOpen2.Questions[0].ID.String(),
			),
			expectedStatus: http.StatusConflict,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "message", "contains message key")
				assert.Contains(t, body["message"], "final")
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req, err := http.NewRequest(
				http.MethodPut,
				fmt.Sprintf("%s/v1/application/%s/submission/", s.server.URL, tt.applicationID),
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

func (s *ServerTestSuite) Test_GetMySubmissionTests() {
	tests := []struct {
		name           string
		auth           *clientAuth
		bodyTester     func(t *testing.T, rawBody string)
		applicationID  string
		expectedStatus int
	}{
		{
			// The form just starts blank, nothing saved yet is not an error
			name:           "ValidNothingSavedYet",
			applicationID:  applicationOpen.ID.String(),
			auth:           &clientAuth{id: authApplicant.ID.String(), token: authToken},
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, rawBody string) {
				assert.Equal(t, "null", strings.TrimSpace(rawBody), "body is JSON null")
			},
		},
		{
			name:           "ValidExistingDraft",
			applicationID:  applicationOpen.ID.String(),
			auth:           &clientAuth{id: authApplicant2.ID.String(), token: authToken},
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, rawBody string) {
				body := make(map[string]any)
				assert.NoError(t, json.Unmarshal([]byte(rawBody), &body))
				assert.Equal(t, submissionDraft.ID.String(), body["submission_id"])
				assert.Contains(t, body["status"], "DRAFT")
				assert.Len(t, body["answers"], 1, "saved answer returned")
			},
		},
		{
			name:           "ValidSubmittedStaysReadable",
			applicationID:  applicationOpen2.ID.String(),
			auth:           &clientAuth{id: authApplicant2.ID.String(), token: authToken},
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, rawBody string) {
				body := make(map[string]any)
				assert.NoError(t, json.Unmarshal([]byte(rawBody), &body))
				assert.Equal(t, submissionFinal.ID.String(), body["submission_id"])
				assert.Contains(t, body["status"], "SUBMITTED")
			},
		},
		{
			name:           "InvalidUnknownApplication",
			applicationID:  uuid.New().String(),
			auth:           &clientAuth{id: authApplicant.ID.String(), token: authToken},
			expectedStatus: http.StatusNotFound,
			bodyTester: func(t *testing.T, rawBody string) {
				body := make(map[string]any)
				assert.NoError(t, json.Unmarshal([]byte(rawBody), &body))
				notFoundBodyTester(t, body)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req, err := http.NewRequest(
				http.MethodGet,
				fmt.Sprintf("%s/v1/application/%s/submission/", s.server.URL, tt.applicationID),
				nil,
			)
			s.Require().NoError(err, "failed to construct http request")

			if tt.auth != nil {
				req.SetBasicAuth(tt.auth.id, tt.auth.token)
			}

			resp, err := doRequest(s.T(), req)
			s.Require().NoError(err)

			s.Equal(tt.expectedStatus, resp.code, "incorrect status code")
			tt.bodyTester(s.T(), resp.body)
		})
	}
}

func (s *ServerTestSuite) Test_ListMySubmissions() {
	req, err := http.NewRequest(
		http.MethodGet,
		fmt.Sprintf("%s/v1/member/submission/", s.server.URL),
		nil,
	)
	s.Require().NoError(err, "failed to construct http request")
	req.SetBasicAuth(authApplicant2.ID.String(), authToken)

	resp, err := doRequest(s.T(), req)
	s.Require().NoError(err)

	s.Equal(http.StatusOK, resp.code, "incorrect status code")

	var body []map[string]any
	s.Require().NoError(json.Unmarshal([]byte(resp.body), &body))
	s.Len(body, 2, "both submissions listed")

	for _, entry := range body {
		s.Contains(entry, "application", "application detail embedded")
		application, ok := entry["application"].(map[string]any)
		s.Require().True(ok, "application is an object")
		s.Contains(application, "questions", "questions embedded")
	}
}

func (s *ServerTestSuite) Test_ListMySubmissionsEmpty() {
	req, err := http.NewRequest(
		http.MethodGet,
		fmt.Sprintf("%s/v1/member/submission/", s.server.URL),
		nil,
	)
	s.Require().NoError(err, "failed to construct http request")
	req.SetBasicAuth(authApplicant.ID.String(), authToken)

	resp, err := doRequest(s.T(), req)
	s.Require().NoError(err)

	s.Equal(http.StatusOK, resp.code, "incorrect status code")

	var body []map[string]any
	s.Require().NoError(json.Unmarshal([]byte(resp.body), &body))
	s.Empty(body, "no submissions for a fresh user")
}
