package updatePlace

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
	"stayBooker/internal/storage"
)

// Request is the full set of editable fields plus the listing id. Fields
// left out of the body are cleared.
type Request struct {
	ID          string   `json:"id" validate:"required,hexadecimal,len=24"`
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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PlaceUpdater
type PlaceUpdater interface {
	GetPlace(ctx context.Context, id primitive.ObjectID) (*models.Place, error)
	UpdatePlace(ctx context.Context, id primitive.ObjectID, fields models.PlaceFields) error
}

// New replaces the editable fields of a listing owned by the caller.
// Anyone else gets 403.
func New(log *slog.Logger, updater PlaceUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.place.updatePlace.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		claims, ok := auth.ClaimsFromContext(r.Context())
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

		id, err := primitive.ObjectIDFromHex(req.ID)
		if err != nil {
			log.Error("invalid place id", slog.String("id", req.ID), sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("field ID is not a valid id"))
			return
		}

		place, err := updater.GetPlace(r.Context(), id)
		if err != nil {
			handleStorageError(w, r, log, err)
			return
		}

		if !auth.AuthorizeOwner(claims, place) {
			log.Warn("update by non-owner rejected",
				slog.String("place", req.ID),
				slog.String("user", claims.ID),
			)
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("only the owner can update this place"))
			return
		}

		if err = updater.UpdatePlace(r.Context(), id, req.Fields()); err != nil {
			handleStorageError(w, r, log, err)
			return
		}

		log.Info("place updated", slog.String("id", req.ID))

		render.JSON(w, r, "ok")
	}
}

func handleStorageError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if errors.Is(err, storage.ErrPlaceNotFound) {
		log.Info("place not found", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("place not found"))
		return
	}

	log.Error("failed to update place", sl.Err(err))
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, response.Error("failed to update place"))
}
