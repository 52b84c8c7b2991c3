package createPlace

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

// Request carries the listing fields. Photos arrive as addedPhotos.
type Request struct {
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	AddedPhotos []string `json:"addedPhotos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests" validate:"gte=0"`
	Price       float64  `json:"price" validate:"gte=0"`
}

func (r Request) Fields() models.PlaceFields {
	return models.PlaceFields{
		Title:       r.Title,
		Address:     r.Address,
		Photos:      r.AddedPhotos,
		Description: r.Description,
		Perks:       r.Perks,
		ExtraInfo:   r.ExtraInfo,
		CheckIn:     r.CheckIn,
		CheckOut:    r.CheckOut,
		MaxGuests:   r.MaxGuests,
		Price:       r.Price,
	}
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PlaceCreator
type PlaceCreator interface {
	CreatePlace(ctx context.Context, owner primitive.ObjectID, fields models.PlaceFields) (*models.Place, error)
}

func New(log *slog.Logger, creator PlaceCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.place.createPlace.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		owner, ok := auth.UserID(r.Context())
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

		place, err := creator.CreatePlace(r.Context(), owner, req.Fields())
		if err != nil {
			log.Error("failed to create place", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create place"))
			return
		}

		log.Info("place created", slog.String("id", place.ID.Hex()))

		render.JSON(w, r, place)
	}
}
