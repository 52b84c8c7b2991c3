package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayBooker/internal/config"
)

func TestConnString(t *testing.T) {
	t.Parallel()

	got := connString(&config.Database{
		Host:     "db",
		Port:     5432,
		User:     "stay",
		Password: "pw",
		DBName:   "stay_booker",
		SSLMode:  "disable",
	})

	assert.Equal(t, "host=db port=5432 user=stay password=pw dbname=stay_booker sslmode=disable", got)
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "Unique violation", err: &pq.Error{Code: "23505"}, want: true},
		{name: "Wrapped unique violation", err: fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), want: true},
		{name: "Foreign key violation", err: &pq.Error{Code: "23503"}, want: false},
		{name: "Plain error", err: errors.New("connection refused"), want: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, isUniqueViolation(tc.err))
		})
	}
}

func TestDecodeBookingWithPlace(t *testing.T) {
	t.Parallel()

	placeID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	bookingDoc := []byte(fmt.Sprintf(
		`{"_id":%q,"place":%q,"checkIn":"2024-05-01T00:00:00Z","checkOut":"2024-05-03T00:00:00Z","numberOfGuests":2,"name":"Ann","phone":"123","price":200,"user":%q}`,
		primitive.NewObjectID().Hex(), placeID.Hex(), userID.Hex(),
	))
	placeDoc := []byte(fmt.Sprintf(`{"_id":%q,"owner":%q,"title":"Cabin","photos":["a.jpg","b.jpg"]}`, placeID.Hex(), userID.Hex()))

	booking, err := decodeBookingWithPlace(bookingDoc, placeDoc)
	require.NoError(t, err)
	require.NotNil(t, booking.Place)
	assert.Equal(t, placeID, booking.Place.ID)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, booking.Place.Photos)
	assert.Equal(t, userID, booking.User)
	assert.Equal(t, 2, booking.NumberOfGuests)

	orphan, err := decodeBookingWithPlace(bookingDoc, nil)
	require.NoError(t, err)
	assert.Nil(t, orphan.Place)
}
