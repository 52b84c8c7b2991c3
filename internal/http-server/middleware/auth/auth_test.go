package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayBooker/internal/lib/logger/handlers/slogdiscard"
	"stayBooker/internal/lib/session"
	"stayBooker/internal/models"
)

func echoClaims(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		render.JSON(w, r, nil)
		return
	}
	render.JSON(w, r, claims)
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	codec, err := session.NewCodec("secret")
	require.NoError(t, err)

	other, err := session.NewCodec("other")
	require.NoError(t, err)

	claims := session.Claims{Email: "ann@example.com", ID: "65f1c0ffee0000000000abcd", Name: "Ann"}

	valid, err := codec.Issue(claims)
	require.NoError(t, err)

	forged, err := other.Issue(claims)
	require.NoError(t, err)

	testCases := []struct {
		name           string
		cookie         *http.Cookie
		required       bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Anonymous on optional route",
			expectedStatus: http.StatusOK,
			expectedBody:   `null`,
		},
		{
			name:           "Empty cookie after logout is anonymous",
			cookie:         &http.Cookie{Name: session.CookieName, Value: ""},
			expectedStatus: http.StatusOK,
			expectedBody:   `null`,
		},
		{
			name:           "Valid token",
			cookie:         &http.Cookie{Name: session.CookieName, Value: valid},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"email":"ann@example.com","id":"65f1c0ffee0000000000abcd","name":"Ann"}`,
		},
		{
			name:           "Token signed with another secret",
			cookie:         &http.Cookie{Name: session.CookieName, Value: forged},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","message":"invalid session token"}`,
		},
		{
			name:           "Anonymous on required route",
			required:       true,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","message":"authentication required"}`,
		},
		{
			name:           "Valid token on required route",
			cookie:         &http.Cookie{Name: session.CookieName, Value: valid},
			required:       true,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"email":"ann@example.com","id":"65f1c0ffee0000000000abcd","name":"Ann"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var handler http.Handler = http.HandlerFunc(echoClaims)
			if tc.required {
				handler = Required(handler)
			}
			handler = New(slogdiscard.NewDiscardLogger(), codec)(handler)

			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestAuthorizeOwner(t *testing.T) {
	t.Parallel()

	owner := primitive.NewObjectID()
	place := &models.Place{ID: primitive.NewObjectID(), Owner: owner}

	assert.True(t, AuthorizeOwner(session.Claims{ID: owner.Hex()}, place))
	assert.False(t, AuthorizeOwner(session.Claims{ID: primitive.NewObjectID().Hex()}, place))
	assert.False(t, AuthorizeOwner(session.Claims{}, place))
}

func TestUserID(t *testing.T) {
	t.Parallel()

	id := primitive.NewObjectID()

	got, ok := UserID(WithClaims(context.Background(), session.Claims{ID: id.Hex()}))
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = UserID(WithClaims(context.Background(), session.Claims{ID: "42"}))
	assert.False(t, ok)

	_, ok = UserID(context.Background())
	assert.False(t, ok)
}
