package login

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
	"stayBooker/internal/lib/session"
	"stayBooker/internal/models"
	"stayBooker/internal/services/credentials"
	"stayBooker/internal/storage"
)

type Request struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserAuthenticator
type UserAuthenticator interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

func New(log *slog.Logger, authenticator UserAuthenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.login.New"

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

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		token, user, err := authenticator.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrUserNotFound):
				log.Info("login for unknown email", slog.String("email", req.Email))
				responseUserNotFound(w, r)
			case errors.Is(err, credentials.ErrWrongPassword):
				log.Info("wrong password", slog.String("email", req.Email))
				render.Status(r, http.StatusUnprocessableEntity)
				render.JSON(w, r, "Password is wrong")
			default:
				log.Error("failed to log in", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to log in"))
			}
			return
		}

		log.Info("user logged in", slog.String("id", user.ID.Hex()))

		http.SetCookie(w, &http.Cookie{
			Name:     session.CookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		render.JSON(w, r, user)
	}
}

// responseUserNotFound answers a login for an unknown email. Existing
// clients expect a 200 with the bare string "not found".
func responseUserNotFound(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, "not found")
}
