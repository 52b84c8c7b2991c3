package updatePlace

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

	"stayBooker/internal/http-server/handlers/place/updatePlace/mocks"
	"stayBooker/internal/http-server/middleware/auth"
	"stayBooker/internal/lib/logger/handlers/slogdiscard"
	"stayBooker/internal/lib/session"
	"stayBooker/internal/models"
	"stayBooker/internal/storage"
)

func TestUpdatePlaceHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	placeID := primitive.NewObjectID()

	ownerClaims := &session.Claims{Email: "ann@example.com", ID: owner.Hex(), Name: "Ann"}
	strangerClaims := &session.Claims{Email: "bob@example.com", ID: stranger.Hex(), Name: "Bob"}

	stored := &models.Place{ID: placeID, Owner: owner, PlaceFields: models.PlaceFields{Title: "Cabin"}}

	updated := models.PlaceFields{
		Title:     "Lake cabin",
		Photos:    []string{"x.jpg"},
		Perks:     []string{"wifi", "tv"},
		MaxGuests: 3,
		Price:     99,
	}

	body := fmt.Sprintf(`{"id":%q,"title":"Lake cabin","addedPhotos":["x.jpg"],"perks":["wifi","tv"],`+
		`"maxGuests":3,"price":99}`, placeID.Hex())

	testCases := []struct {
		name           string
		claims         *session.Claims
		requestBody    string
		mockSetup      func(m *mocks.PlaceUpdater)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Owner updates",
			claims:      ownerClaims,
			requestBody: body,
			mockSetup: func(m *mocks.PlaceUpdater) {
				m.On("GetPlace", mock.Anything, placeID).Return(stored, nil)
				m.On("UpdatePlace", mock.Anything, placeID, updated).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"ok"`,
		},
		{
			name:        "Non-owner rejected",
			claims:      strangerClaims,
			requestBody: body,
			mockSetup: func(m *mocks.PlaceUpdater) {
				m.On("GetPlace", mock.Anything, placeID).Return(stored, nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","message":"only the owner can update this place"}`,
		},
		{
			name:        "Unknown place",
			claims:      ownerClaims,
			requestBody: body,
			mockSetup: func(m *mocks.PlaceUpdater) {
				m.On("GetPlace", mock.Anything, placeID).
					Return(nil, fmt.Errorf("storage.mongodb.GetPlace: %w", storage.ErrPlaceNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","message":"place not found"}`,
		},
		{
			name:        "Removed between read and write",
			claims:      ownerClaims,
			requestBody: body,
			mockSetup: func(m *mocks.PlaceUpdater) {
				m.On("GetPlace", mock.Anything, placeID).Return(stored, nil)
				m.On("UpdatePlace", mock.Anything, placeID, updated).
					Return(fmt.Errorf("storage.mongodb.UpdatePlace: %w", storage.ErrPlaceNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","message":"place not found"}`,
		},
		{
			name:        "Storage failure",
			claims:      ownerClaims,
			requestBody: body,
			mockSetup: func(m *mocks.PlaceUpdater) {
				m.On("GetPlace", mock.Anything, placeID).Return(stored, nil)
				m.On("UpdatePlace", mock.Anything, placeID, updated).Return(errors.New("not primary"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","message":"failed to update place"}`,
		},
		{
			name:           "Missing id",
			claims:         ownerClaims,
			requestBody:    `{"title":"Lake cabin"}`,
			mockSetup:      func(m *mocks.PlaceUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","message":"field ID is a required field"}`,
		},
		{
			name:           "Malformed id",
			claims:         ownerClaims,
			requestBody:    `{"id":"123"}`,
			mockSetup:      func(m *mocks.PlaceUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","message":"field ID is not a valid id"}`,
		},
		{
			name:           "Anonymous",
			requestBody:    body,
			mockSetup:      func(m *mocks.PlaceUpdater) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","message":"authentication required"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			updater := mocks.NewPlaceUpdater(t)
			tc.mockSetup(updater)

			handler := New(logger, updater)

			req, err := http.NewRequest(http.MethodPut, "/places", bytes.NewBufferString(tc.requestBody))
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
