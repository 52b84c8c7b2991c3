package getAllPlaces

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"stayBooker/internal/lib/api/response"
	"stayBooker/internal/lib/logger/sl"
	"stayBooker/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PlacesGetter
type PlacesGetter interface {
	GetAllPlaces(ctx context.Context) ([]models.Place, error)
}

func New(log *slog.Logger, getter PlacesGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.place.getAllPlaces.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		places, err := getter.GetAllPlaces(r.Context())
		if err != nil {
			log.Error("failed to get places", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get places"))
			return
		}

		log.Debug("places listed", slog.Int("count", len(places)))

		render.JSON(w, r, places)
	}
}
