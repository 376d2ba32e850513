package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func (s *ServerTestSuite) Test_CreateEventTests() {
	start := time.Date(3000, time.April, 1, 18, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(3000, time.April, 1, 20, 0, 0, 0, time.UTC).UnixMilli()

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
			payload: fmt.Sprintf(
				`{"name": "Simul Exhibition", "description": "One against twenty", "start": %d, "end": %d, "in_person": true, "location": "Main Hall"}`,
				start,
				end,
			),
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Simul Exhibition", body["name"])
				assert.EqualValues(t, start, body["start"])
				assert.EqualValues(t, end, body["end"])
			},
		},
		{
			name:   "InvalidEndBeforeStart",
			clubID: clubChess.ID.String(),
			auth:   &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"name": "Backwards Event", "start": %d, "end": %d, "location": "Main Hall"}`,
				end,
				start,
			),
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name:   "InvalidMissingLocation",
			clubID: clubChess.ID.String(),
			auth:   &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"name": "Nowhere Event", "start": %d, "end": %d}`,
				start,
				end,
			),
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name:   "InvalidNonAdmin",
			clubID: clubChess.ID.String(),
			auth:   &clientAuth{id: authApplicant.ID.String(), token: authToken},
			payload: fmt.Sprintf(
				`{"name": "Unsanctioned Event", "start": %d, "end": %d, "location": "Main Hall"}`,
				start,
				end,
			),
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
				fmt.Sprintf("%s/v1/club/%s/event/", s.server.URL, tt.clubID),
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

// Members and non-members can read the calendar, only admins write it
func (s *ServerTestSuite) Test_ListEvents() {
	req, err := http.NewRequest(
		http.MethodGet,
		fmt.Sprintf("%s/v1/club/%s/event/", s.server.URL, clubChess.ID.String()),
		nil,
	)
	s.Require().NoError(err, "failed to construct http request")
	req.SetBasicAuth(authApplicant.ID.String(), authToken)

	resp, err := doRequest(s.T(), req)
	s.Require().NoError(err)

	s.Equal(http.StatusOK, resp.code, "incorrect status code")

	var body []map[string]any
	s.Require().NoError(json.Unmarshal([]byte(resp.body), &body))
	s.Require().Len(body, 1)
	s.Equal(eventChess.ID.String(), body[0]["id"])
	s.Equal(eventChess.Name, body[0]["name"])
}

func (s *ServerTestSuite) Test_UpdateEventTests() {
	start := time.Date(3000, time.May, 1, 18, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(3000, time.May, 1, 21, 0, 0, 0, time.UTC).UnixMilli()

	payload := fmt.Sprintf(
		`{"name": "Blitz Night Rescheduled", "description": "Moved a week out", "start": %d, "end": %d, "in_person": true, "location": "Student Union Room 204"}`,
		start,
		end,
	)

	tests := []struct {
		name           string
		auth           *clientAuth
		bodyTester     func(t *testing.T, body map[string]any)
		clubID         string
		eventID        string
		expectedStatus int
	}{
		{
			name:           "Valid",
			clubID:         clubChess.ID.String(),
			eventID:        eventChess.ID.String(),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Blitz Night Rescheduled", body["name"])
				assert.EqualValues(t, start, body["start"])
			},
		},
		{
			// An event id from another club does not resolve under this club
			name:           "InvalidForeignEvent",
			clubID:         clubChess.ID.String(),
			eventID:        eventRobotics.ID.String(),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			expectedStatus: http.StatusNotFound,
			bodyTester:     notFoundBodyTester,
		},
		{
			name:           "InvalidNonAdmin",
			clubID:         clubChess.ID.String(),
			eventID:        eventChess.ID.String(),
			auth:           &clientAuth{id: authApplicant2.ID.String(), token: authToken},
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
				http.MethodPatch,
				fmt.Sprintf(
					"%s/v1/club/%s/event/%s/",
					s.server.URL,
					tt.clubID,
					tt.eventID,
				),
				strings.NewReader(payload),
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

func (s *ServerTestSuite) Test_DeleteEvent() {
	req, err := http.NewRequest(
		http.MethodDelete,
		fmt.Sprintf(
			"%s/v1/club/%s/event/%s/",
			s.server.URL,
			clubChess.ID.String(),
			eventChess.ID.String(),
		),
		nil,
	)
	s.Require().NoError(err, "failed to construct http request")
	req.SetBasicAuth(authOwner.ID.String(), authToken)

	resp, err := doRequest(s.T(), req)
	s.Require().NoError(err)
	s.Equal(http.StatusNoContent, resp.code, "incorrect status code")

	req, err = http.NewRequest(
		http.MethodGet,
		fmt.Sprintf("%s/v1/club/%s/event/", s.server.URL, clubChess.ID.String()),
		nil,
	)
	s.Require().NoError(err, "failed to construct http request")
	req.SetBasicAuth(authOwner.ID.String(), authToken)

	resp, err = doRequest(s.T(), req)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.code, "incorrect status code")

	var body []map[string]any
	s.Require().NoError(json.Unmarshal([]byte(resp.body), &body))
	s.Empty(body, "calendar empty after delete")
}
