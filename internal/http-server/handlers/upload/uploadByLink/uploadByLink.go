package uploadByLink

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
	"stayBooker/internal/media"
)

type Request struct {
	Link string `json:"link" validate:"required,url"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=URLImporter
type URLImporter interface {
	ImportFromURL(ctx context.Context, link string) (string, error)
}

func New(log *slog.Logger, importer URLImporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.upload.uploadByLink.New"

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

		name, err := importer.ImportFromURL(r.Context(), req.Link)
		if err != nil {
			if errors.Is(err, media.ErrDownloadFailed) {
				log.Warn("failed to download photo", slog.String("link", req.Link), sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("failed to download photo"))
				return
			}

			log.Error("failed to store photo", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to store photo"))
			return
		}

		log.Info("photo imported", slog.String("name", name))

		render.JSON(w, r, name)
	}
}
