package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// validateTokenExpiry checks the exp claim with a small leeway for
// clock skew between the issuer and this service.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp claim")
	}

	var exp time.Time
	switch v := expRaw.(type) {
	case float64:
		exp = time.Unix(int64(v), 0)
	case int64:
		exp = time.Unix(v, 0)
	default:
		return errors.New("invalid exp claim")
	}

	if time.Now().After(exp.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

func extractProfileID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["profile_id"]
	if !ok {
		// older tokens carry user_id with the profile uuid
		raw, ok = claims["user_id"]
		if !ok {
			return uuid.Nil, errors.New("missing profile_id claim")
		}
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("invalid profile_id claim")
	}
	return uuid.Parse(s)
}

func extractIsStaff(claims jwt.MapClaims) bool {
	if v, ok := claims["is_staff"].(bool); ok {
		return v
	}
	return false
}
