package getPlace

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayBooker/internal/lib/api/response"
	"stayBooker/internal/lib/logger/sl"
	"stayBooker/internal/models"
	"stayBooker/internal/storage"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PlaceGetter
type PlaceGetter interface {
	GetPlace(ctx context.Context, id primitive.ObjectID) (*models.Place, error)
}

// New serves GET /places/{id}. Ids that are not object ids can never
// match a listing and are answered like unknown ones.
func New(log *slog.Logger, getter PlaceGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.place.getPlace.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		rawID := chi.URLParam(r, "id")

		id, err := primitive.ObjectIDFromHex(rawID)
		if err != nil {
			log.Info("malformed place id", slog.String("id", rawID))
			responseNotFound(w, r)
			return
		}

		place, err := getter.GetPlace(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrPlaceNotFound) {
				log.Info("place not found", slog.String("id", rawID))
				responseNotFound(w, r)
				return
			}

			log.Error("failed to get place", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get place"))
			return
		}

		render.JSON(w, r, place)
	}
}

func responseNotFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, response.Error("place not found"))
}
