package session

import (
	"errors"
	"fmt"

	"github.com/cristalhq/jwt/v4"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

var ErrInvalidToken = errors.New("invalid token")

// Claims identify the user a token was issued to. No expiry is set, so a
// token stays valid for as long as the signing secret does.
type Claims struct {
	Email string `json:"email"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

// Codec issues and verifies HS256 signed session tokens.
type Codec struct {
	builder  *jwt.Builder
	verifier jwt.Verifier
}

func NewCodec(secret string) (*Codec, error) {
	const op = "session.NewCodec"

	key := []byte(secret)

	signer, err := jwt.NewSignerHS(jwt.HS256, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	verifier, err := jwt.NewVerifierHS(jwt.HS256, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Codec{
		builder:  jwt.NewBuilder(signer),
		verifier: verifier,
	}, nil
}

func (c *Codec) Issue(claims Claims) (string, error) {
	token, err := c.builder.Build(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token.String(), nil
}

func (c *Codec) Verify(raw string) (Claims, error) {
	var claims Claims

	if err := jwt.ParseClaims([]byte(raw), c.verifier, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.ID == "" {
		return Claims{}, fmt.Errorf("%w: missing id claim", ErrInvalidToken)
	}

	return claims, nil
}
