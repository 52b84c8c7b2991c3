package profile

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayBooker/internal/http-server/handlers/user/profile/mocks"
	"stayBooker/internal/http-server/middleware/auth"
	"stayBooker/internal/lib/logger/handlers/slogdiscard"
	"stayBooker/internal/lib/session"
	"stayBooker/internal/models"
	"stayBooker/internal/storage"
)

func TestProfileHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	id := primitive.NewObjectID()
	claims := &session.Claims{Email: "ann@example.com", ID: id.Hex(), Name: "Ann"}
	user := &models.User{ID: id, Name: "Ann", Email: "ann@example.com", Password: "$2a$10$hash"}

	testCases := []struct {
		name           string
		claims         *session.Claims
		mockSetup      func(m *mocks.UserFinder)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Signed in",
			claims: claims,
			mockSetup: func(m *mocks.UserFinder) {
				m.On("FindByID", mock.Anything, id.Hex()).Return(user, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   fmt.Sprintf(`{"name":"Ann","email":"ann@example.com","_id":%q}`, id.Hex()),
		},
		{
			name:           "Anonymous",
			mockSetup:      func(m *mocks.UserFinder) {},
			expectedStatus: http.StatusOK,
			expectedBody:   `null`,
		},
		{
			name:   "User removed",
			claims: claims,
			mockSetup: func(m *mocks.UserFinder) {
				m.On("FindByID", mock.Anything, id.Hex()).
					Return(nil, fmt.Errorf("services.credentials.FindByID: %w", storage.ErrUserNotFound))
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `null`,
		},
		{
			name:   "Storage failure",
			claims: claims,
			mockSetup: func(m *mocks.UserFinder) {
				m.On("FindByID", mock.Anything, id.Hex()).Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","message":"failed to get profile"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			finder := mocks.NewUserFinder(t)
			tc.mockSetup(finder)

			handler := New(logger, finder)

			req, err := http.NewRequest(http.MethodGet, "/profile", nil)
			require.NoError(t, err)
			if tc.claims != nil {
				req = req.WithContext(auth.WithClaims(req.Context(), *tc.claims))
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}
