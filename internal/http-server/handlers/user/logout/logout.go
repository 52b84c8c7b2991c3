package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"stayBooker/internal/lib/session"
)

// New overwrites the session cookie with an empty value.
func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.logout.New"

		http.SetCookie(w, &http.Cookie{
			Name:     session.CookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		log.Debug("session cookie cleared", slog.String("op", op))

		render.JSON(w, r, true)
	}
}
