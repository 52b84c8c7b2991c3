package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"stayBooker/internal/lib/api/response"
	"stayBooker/internal/lib/logger/sl"
	"stayBooker/internal/models"
	"stayBooker/internal/storage"
)

type Request struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserRegisterer
type UserRegisterer interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
}

func New(log *slog.Logger, registerer UserRegisterer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.register.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.String("email", req.Email))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		user, err := registerer.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, storage.ErrEmailExists) {
				log.Info("email already exists", slog.String("email", req.Email))
				render.Status(r, http.StatusUnprocessableEntity)
				render.JSON(w, r, response.Error("Email already exists. Please use a different email or login."))
				return
			}

			log.Error("failed to register user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Registration failed due to server error."))
			return
		}

		log.Info("user registered", slog.String("id", user.ID.Hex()))

		render.JSON(w, r, user)
	}
}
