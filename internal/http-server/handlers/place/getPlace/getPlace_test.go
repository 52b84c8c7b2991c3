package getPlace

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayBooker/internal/http-server/handlers/place/getPlace/mocks"
	"stayBooker/internal/lib/logger/handlers/slogdiscard"
	"stayBooker/internal/models"
	"stayBooker/internal/storage"
)

func TestGetPlaceHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	owner := primitive.NewObjectID()
	placeID := primitive.NewObjectID()

	place := &models.Place{ID: placeID, Owner: owner, PlaceFields: models.PlaceFields{
		Title:     "Cabin",
		Photos:    []string{"2.jpg", "1.jpg"},
		Perks:     []string{"parking"},
		MaxGuests: 2,
		Price:     80,
	}}

	testCases := []struct {
		name           string
		placeID        string
		mockSetup      func(m *mocks.PlaceGetter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Success",
			placeID: placeID.Hex(),
			mockSetup: func(m *mocks.PlaceGetter) {
				m.On("GetPlace", mock.Anything, placeID).Return(place, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: fmt.Sprintf(`{"_id":%q,"owner":%q,"title":"Cabin","address":"","photos":["2.jpg","1.jpg"],`+
				`"description":"","perks":["parking"],"extraInfo":"","checkIn":"","checkOut":"","maxGuests":2,"price":80}`,
				placeID.Hex(), owner.Hex()),
		},
		{
			name:    "Unknown id",
			placeID: placeID.Hex(),
			mockSetup: func(m *mocks.PlaceGetter) {
				m.On("GetPlace", mock.Anything, placeID).
					Return(nil, fmt.Errorf("storage.mongodb.GetPlace: %w", storage.ErrPlaceNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","message":"place not found"}`,
		},
		{
			name:           "Malformed id",
			placeID:        "not-an-id",
			mockSetup:      func(m *mocks.PlaceGetter) {},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","message":"place not found"}`,
		},
		{
			name:    "Storage failure",
			placeID: placeID.Hex(),
			mockSetup: func(m *mocks.PlaceGetter) {
				m.On("GetPlace", mock.Anything, placeID).Return(nil, errors.New("socket closed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","message":"failed to get place"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			getter := mocks.NewPlaceGetter(t)
			tc.mockSetup(getter)

			r := chi.NewRouter()
			r.Get("/places/{id}", New(logger, getter))

			req, err := http.NewRequest(http.MethodGet, "/places/"+tc.placeID, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}
