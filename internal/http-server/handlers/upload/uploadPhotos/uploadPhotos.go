package uploadPhotos

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"stayBooker/internal/lib/api/response"
	"stayBooker/internal/lib/logger/sl"
	"stayBooker/internal/media"
)

// FormField is the multipart field the files are sent under.
const FormField = "photos"

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PhotoUploader
type PhotoUploader interface {
	AcceptUploads(files []*multipart.FileHeader) ([]string, error)
}

// New stores the files of a multipart request. Parts beyond maxMemory bytes
// are spooled to temporary files and removed once the request is done.
func New(log *slog.Logger, uploader PhotoUploader, maxMemory int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.upload.uploadPhotos.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := r.ParseMultipartForm(maxMemory); err != nil {
			log.Error("failed to parse multipart form", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to parse multipart form"))
			return
		}
		defer func() {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				log.Warn("failed to remove temporary upload files", sl.Err(err))
			}
		}()

		files := r.MultipartForm.File[FormField]

		names, err := uploader.AcceptUploads(files)
		if err != nil {
			if errors.Is(err, media.ErrTooManyFiles) {
				log.Warn("too many files", slog.Int("count", len(files)))
				render.Status(r, http.StatusRequestEntityTooLarge)
				render.JSON(w, r, response.Error("too many files"))
				return
			}

			log.Error("failed to store uploads", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to store uploads"))
			return
		}

		log.Info("photos uploaded", slog.Int("count", len(names)))

		render.JSON(w, r, names)
	}
}
