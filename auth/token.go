package auth

import (
	"roster-lab/domain"
	"roster-lab/errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtKey is the secret used to sign tokens.
// In a production environment, this should be loaded from an environment variable or a secret manager.
var jwtKey = []byte("my_strong_and_long_secret_key_2026")

// SessionClaims defines the structure of the data stored inside the JWT.
type SessionClaims struct {
	Identity string `json:"identity"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed session JWT for a specific identity.
func GenerateToken(identity domain.Identity, tokenDuration time.Duration) (string, error) {
	expirationTime := time.Now().Add(tokenDuration)

	claims := &SessionClaims{
		Identity: string(identity),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "roster-lab",
		},
	}

	// HS256: HMAC with SHA256, signed with the server secret.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// CurrentIdentity validates a session token and extracts the viewing
// identity. Every failure mode (empty, malformed, bad signature, expired)
// collapses to ErrNoSession: callers only need to know there is no session.
func CurrentIdentity(tokenString string) (domain.Identity, error) {
	if tokenString == "" {
		return "", errors.ErrNoSession
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil {
		return "", errors.ErrNoSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Identity == "" {
		return "", errors.ErrNoSession
	}
	return domain.Identity(claims.Identity), nil
}
