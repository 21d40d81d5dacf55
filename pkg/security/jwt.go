package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

var ErrTokenInvalid = errors.New("token is invalid or expired")

// SessionClaims is the identity snapshot carried inside a session token.
// The role is the one the user had at login time; role-gated routes
// re-check the live record anyway.
type SessionClaims struct {
	UserID string
	Role   string
}

// MakeSessionToken signs a HS256 token for the given identity using
// jwt.secret and jwt.ttl from the config
func MakeSessionToken(userID, role string) (string, error) {
	ttl, err := time.ParseDuration(viper.GetString("jwt.ttl"))
	if err != nil {
		ttl = time.Hour * 24
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(ttl).Unix(),
	})

	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}

// ParseSessionToken verifies the signature and expiry of a session token.
// Any kind of failure comes back as ErrTokenInvalid so callers can treat
// verification as a fallible lookup instead of branching on causes.
func ParseSessionToken(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(viper.GetString("jwt.secret")), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrTokenInvalid
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}

	// jwt.Parse only rejects expired tokens when an exp claim exists.
	// A token without one never expires, which we don't allow.
	if _, ok := claims["exp"]; !ok {
		return nil, ErrTokenInvalid
	}

	return &SessionClaims{
		UserID: userID,
		Role:   role,
	}, nil
}
