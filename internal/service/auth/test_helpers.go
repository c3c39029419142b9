package auth

import "time"

// NewTestJWTService creates a JWT service with an injectable time function
// and no clock-skew leeway, so expiry scenarios are exact and deterministic
// in tests. Both token lifetimes use the same duration.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	return &hmacJWTService{
		signingKey:           []byte(secret),
		tokenLifetime:        lifetime,
		refreshTokenLifetime: lifetime,
		timeFunc:             timeFunc,
		clockSkew:            0,
	}
}
