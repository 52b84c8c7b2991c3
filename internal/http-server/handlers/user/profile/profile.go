package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"stayBooker/internal/http-server/middleware/auth"
	"stayBooker/internal/lib/api/response"
	"stayBooker/internal/lib/logger/sl"
	"stayBooker/internal/models"
	"stayBooker/internal/storage"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserFinder
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// New returns {name, email, _id} for the caller, or null for anonymous
// requests. It expects auth.New to have run.
func New(log *slog.Logger, finder UserFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.profile.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			render.JSON(w, r, nil)
			return
		}

		user, err := finder.FindByID(r.Context(), claims.ID)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				log.Warn("token refers to unknown user", slog.String("id", claims.ID))
				render.JSON(w, r, nil)
				return
			}

			log.Error("failed to get user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get profile"))
			return
		}

		render.JSON(w, r, user.Profile())
	}
}
