package login

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayBooker/internal/http-server/handlers/user/login/mocks"
	"stayBooker/internal/lib/logger/handlers/slogdiscard"
	"stayBooker/internal/lib/session"
	"stayBooker/internal/models"
	"stayBooker/internal/services/credentials"
	"stayBooker/internal/storage"
)

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	id := primitive.NewObjectID()
	user := &models.User{ID: id, Name: "Ann", Email: "ann@example.com", Password: "$2a$10$hash"}

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.UserAuthenticator)
		expectedStatus int
		expectedBody   string
		expectedCookie string
	}{
		{
			name:        "Success",
			requestBody: `{"email":"ann@example.com","password":"hunter22"}`,
			mockSetup: func(m *mocks.UserAuthenticator) {
				m.On("Login", mock.Anything, "ann@example.com", "hunter22").Return("signed.token.value", user, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: fmt.Sprintf(
				`{"_id":%q,"name":"Ann","email":"ann@example.com","password":"$2a$10$hash"}`, id.Hex(),
			),
			expectedCookie: "signed.token.value",
		},
		{
			name:        "Unknown email",
			requestBody: `{"email":"bob@example.com","password":"hunter22"}`,
			mockSetup: func(m *mocks.UserAuthenticator) {
				m.On("Login", mock.Anything, "bob@example.com", "hunter22").
					Return("", nil, fmt.Errorf("services.credentials.Login: %w", storage.ErrUserNotFound))
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"not found"`,
		},
		{
			name:        "Wrong password",
			requestBody: `{"email":"ann@example.com","password":"nope"}`,
			mockSetup: func(m *mocks.UserAuthenticator) {
				m.On("Login", mock.Anything, "ann@example.com", "nope").
					Return("", nil, fmt.Errorf("services.credentials.Login: %w", credentials.ErrWrongPassword))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"Password is wrong"`,
		},
		{
			name:        "Storage failure",
			requestBody: `{"email":"ann@example.com","password":"hunter22"}`,
			mockSetup: func(m *mocks.UserAuthenticator) {
				m.On("Login", mock.Anything, "ann@example.com", "hunter22").
					Return("", nil, errors.New("server selection timeout"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","message":"failed to log in"}`,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `{"email":`,
			mockSetup:      func(m *mocks.UserAuthenticator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","message":"failed to decode request"}`,
		},
		{
			name:           "Missing email",
			requestBody:    `{"password":"hunter22"}`,
			mockSetup:      func(m *mocks.UserAuthenticator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","message":"field Email is a required field"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			authenticator := mocks.NewUserAuthenticator(t)
			tc.mockSetup(authenticator)

			handler := New(logger, authenticator)

			req, err := http.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")

			cookies := rr.Result().Cookies()
			if tc.expectedCookie == "" {
				assert.Empty(t, cookies)
				return
			}

			require.Len(t, cookies, 1)
			assert.Equal(t, session.CookieName, cookies[0].Name)
			assert.Equal(t, tc.expectedCookie, cookies[0].Value)
			assert.Equal(t, "/", cookies[0].Path)
			assert.True(t, cookies[0].HttpOnly)
		})
	}
}
