package createBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayBooker/internal/http-server/middleware/auth"
	"stayBooker/internal/lib/api/response"
	"stayBooker/internal/lib/logger/sl"
	"stayBooker/internal/models"
)

type Request struct {
	Place          string      `json:"place" validate:"required,hexadecimal,len=24"`
	CheckIn        models.Date `json:"checkIn"`
	CheckOut       models.Date `json:"checkOut"`
	NumberOfGuests int         `json:"numberOfGuests" validate:"gte=0"`
	Name           string      `json:"name"`
	Phone          string      `json:"phone"`
	Price          float64     `json:"price" validate:"gte=0"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	CreateBooking(ctx context.Context, user primitive.ObjectID, fields models.BookingFields) (*models.Booking, error)
}

// New records a booking for the caller. The price is taken from the client
// as sent and the place is not looked up.
func New(log *slog.Logger, creator BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.createBooking.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		user, ok := auth.UserID(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		placeID, err := primitive.ObjectIDFromHex(req.Place)
		if err != nil {
			log.Error("invalid place id", slog.String("place", req.Place), sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("field Place is not a valid id"))
			return
		}

		booking, err := creator.CreateBooking(r.Context(), user, models.BookingFields{
			Place:          placeID,
			CheckIn:        req.CheckIn,
			CheckOut:       req.CheckOut,
			NumberOfGuests: req.NumberOfGuests,
			Name:           req.Name,
			Phone:          req.Phone,
			Price:          req.Price,
		})
		if err != nil {
			log.Error("failed to create booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create booking"))
			return
		}

		log.Info("booking created",
			slog.String("id", booking.ID.Hex()),
			slog.String("place", req.Place),
		)

		render.JSON(w, r, booking)
	}
}
