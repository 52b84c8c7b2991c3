package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayBooker/internal/lib/api/response"
	"stayBooker/internal/lib/logger/sl"
	"stayBooker/internal/lib/session"
	"stayBooker/internal/models"
)

type TokenVerifier interface {
	Verify(raw string) (session.Claims, error)
}

type ctxKey struct{}

// New identifies the caller from the session cookie. A missing or empty
// cookie leaves the request anonymous; a cookie that fails verification is
// rejected with 401.
func New(log *slog.Logger, verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/auth"),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(cookie.Value)
			if err != nil {
				log.Warn("rejected session token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid session token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		}

		return http.HandlerFunc(fn)
	}
}

// Required rejects anonymous requests with 401. It must run after New.
func Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func WithClaims(ctx context.Context, claims session.Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (session.Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(session.Claims)
	return claims, ok
}

// UserID returns the caller's id from the request claims. It reports false
// for anonymous requests and for claims whose id is not an object id.
func UserID(ctx context.Context) (primitive.ObjectID, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return primitive.NilObjectID, false
	}

	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return primitive.NilObjectID, false
	}

	return id, true
}

// AuthorizeOwner reports whether claims belong to the owner of place.
func AuthorizeOwner(claims session.Claims, place *models.Place) bool {
	return claims.ID == place.Owner.Hex()
}
