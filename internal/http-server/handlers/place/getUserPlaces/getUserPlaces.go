package getUserPlaces

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayBooker/internal/http-server/middleware/auth"
	"stayBooker/internal/lib/api/response"
	"stayBooker/internal/lib/logger/sl"
	"stayBooker/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserPlacesGetter
type UserPlacesGetter interface {
	GetPlacesByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Place, error)
}

func New(log *slog.Logger, getter UserPlacesGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.place.getUserPlaces.New"

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

		places, err := getter.GetPlacesByOwner(r.Context(), owner)
		if err != nil {
			log.Error("failed to get user places", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get places"))
			return
		}

		render.JSON(w, r, places)
	}
}
