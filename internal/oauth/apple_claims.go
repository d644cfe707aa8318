package oauth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type appleClaims struct {
	Sub           string
	Email         string
	EmailVerified bool
}

func decodeJWTClaims(idToken string) (*appleClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil, fmt.Errorf("decoding apple id token: %w", err)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("apple id token has no subject")
	}

	out := &appleClaims{Sub: sub}
	out.Email, _ = claims["email"].(string)

	// Apple sends email_verified as either a bool or the string "true".
	switch v := claims["email_verified"].(type) {
	case bool:
		out.EmailVerified = v
	case string:
		out.EmailVerified = v == "true"
	}
	return out, nil
}
