package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clubhub/club-api/internal/types"
)

func (s *ServerTestSuite) Test_SocialMediaTests() {
	tests := []struct {
		name           string
		auth           *clientAuth
		bodyTester     func(t *testing.T, body map[string]any)
		method         string
		path           string
		payload        string
		expectedStatus int
	}{
		{
			name:           "ValidCreate",
			method:         http.MethodPost,
			path:           fmt.Sprintf("/v1/club/%s/social-media/", clubChess.ID.String()),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"platform": "WEBSITE", "url": "https://chessclub.example.com"}`,
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, string(types.SocialMediaPlatformWebsite), body["platform"])
				assert.Equal(t, "https://chessclub.example.com", body["url"])
			},
		},
		{
			name:           "InvalidCreateUnknownPlatform",
			method:         http.MethodPost,
			path:           fmt.Sprintf("/v1/club/%s/social-media/", clubChess.ID.String()),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"platform": "MYSPACE", "url": "https://myspace.com/chessclub"}`,
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name:           "InvalidCreateBadURL",
			method:         http.MethodPost,
			path:           fmt.Sprintf("/v1/club/%s/social-media/", clubChess.ID.String()),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"platform": "WEBSITE", "url": "not a url"}`,
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name:   "ValidUpdate",
			method: http.MethodPatch,
			path: fmt.Sprintf(
				"/v1/club/%s/social-media/%s/",
				clubChess.ID.String(),
				socialChess.ID.String(),
			),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"platform": "TWITTER", "url": "https://twitter.com/chessclub"}`,
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, string(types.SocialMediaPlatformTwitter), body["platform"])
			},
		},
		{
			// A link id from another club does not resolve under this club
			name:   "InvalidUpdateForeignLink",
			method: http.MethodPatch,
			path: fmt.Sprintf(
				"/v1/club/%s/social-media/%s/",
				clubRobotics.ID.String(),
				socialChess.ID.String(),
			),
			auth:           &clientAuth{id: authAdmin.ID.String(), token: authToken},
			payload:        `{"platform": "TWITTER", "url": "https://twitter.com/stolen"}`,
			expectedStatus: http.StatusNotFound,
			bodyTester:     notFoundBodyTester,
		},
		{
			name:           "InvalidCreateNonAdmin",
			method:         http.MethodPost,
			path:           fmt.Sprintf("/v1/club/%s/social-media/", clubChess.ID.String()),
			auth:           &clientAuth{id: authApplicant2.ID.String(), token: authToken},
			payload:        `{"platform": "WEBSITE", "url": "https://example.com"}`,
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
				tt.method,
				s.server.URL+tt.path,
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

func (s *ServerTestSuite) Test_DeleteSocialMedia() {
	req, err := http.NewRequest(
		http.MethodDelete,
		fmt.Sprintf(
			"%s/v1/club/%s/social-media/%s/",
			s.server.URL,
			clubChess.ID.String(),
			socialChess.ID.String(),
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
		fmt.Sprintf("%s/v1/club/%s/social-media/", s.server.URL, clubChess.ID.String()),
		nil,
	)
	s.Require().NoError(err, "failed to construct http request")
	req.SetBasicAuth(authOwner.ID.String(), authToken)

	resp, err = doRequest(s.T(), req)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.code, "incorrect status code")

	var body []map[string]any
	s.Require().NoError(json.Unmarshal([]byte(resp.body), &body))
	s.Empty(body, "no links after delete")
}

func (s *ServerTestSuite) Test_ContactInfoTests() {
	tests := []struct {
		name           string
		auth           *clientAuth
		bodyTester     func(t *testing.T, body map[string]any)
		method         string
		path           string
		payload        string
		expectedStatus int
	}{
		{
			name:           "ValidCreateEmail",
			method:         http.MethodPost,
			path:           fmt.Sprintf("/v1/club/%s/contact-info/", clubChess.ID.String()),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"type": "EMAIL", "value": "treasurer@example.com", "role": "Treasurer"}`,
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, string(types.ContactTypeEmail), body["type"])
				assert.Equal(t, "Treasurer", body["role"])
			},
		},
		{
			name:           "ValidCreatePhone",
			method:         http.MethodPost,
			path:           fmt.Sprintf("/v1/club/%s/contact-info/", clubChess.ID.String()),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"type": "PHONE", "value": "555-0100"}`,
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, string(types.ContactTypePhone), body["type"])
			},
		},
		{
			name:           "InvalidCreateUnknownType",
			method:         http.MethodPost,
			path:           fmt.Sprintf("/v1/club/%s/contact-info/", clubChess.ID.String()),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"type": "CARRIER_PIGEON", "value": "coop 3"}`,
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name:   "ValidUpdate",
			method: http.MethodPatch,
			path: fmt.Sprintf(
				"/v1/club/%s/contact-info/%s/",
				clubChess.ID.String(),
				contactChess.ID.String(),
			),
			auth:           &clientAuth{id: authOwner.ID.String(), token: authToken},
			payload:        `{"type": "EMAIL", "value": "president@example.com", "role": "President"}`,
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "president@example.com", body["value"])
			},
		},
		{
			name:   "InvalidUpdateForeignContact",
			method: http.MethodPatch,
			path: fmt.Sprintf(
				"/v1/club/%s/contact-info/%s/",
				clubRobotics.ID.String(),
				contactChess.ID.String(),
			),
			auth:           &clientAuth{id: authAdmin.ID.String(), token: authToken},
			payload:        `{"type": "EMAIL", "value": "stolen@example.com"}`,
			expectedStatus: http.StatusNotFound,
			bodyTester:     notFoundBodyTester,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req, err := http.NewRequest(
				tt.method,
				s.server.URL+tt.path,
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
