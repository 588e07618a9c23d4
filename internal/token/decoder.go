// ABOUTME: Unverified JWT payload decoding for the client side
// ABOUTME: Extracts subject and expiry claims; signature verification is the backend's job

package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded, unverified payload of an access token. Only the
// claims the client actually reads are surfaced; everything else is ignored.
type Claims struct {
	Subject   string
	Issuer    string
	Audience  []string
	ExpiresAt time.Time // zero when the token carries no exp claim
}

// Decode splits the token, base64-decodes the payload segment, and parses
// the claims. No signature verification is performed. A malformed token
// (wrong segment count, invalid base64, invalid JSON) returns an error;
// callers treat that as an invalid session.
func Decode(tokenString string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("invalid sub claim: %w", err)
	}
	iss, err := parsed.Claims.GetIssuer()
	if err != nil {
		return nil, fmt.Errorf("invalid iss claim: %w", err)
	}
	aud, err := parsed.Claims.GetAudience()
	if err != nil {
		return nil, fmt.Errorf("invalid aud claim: %w", err)
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}

	claims := &Claims{
		Subject:  sub,
		Issuer:   iss,
		Audience: aud,
	}
	if exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// IsExpired reports whether the token should be treated as expired.
// Fail-closed: a token that cannot be decoded, or that carries no exp
// claim, is expired. Otherwise the exp instant (seconds since epoch) is
// compared against the wall clock.
func IsExpired(tokenString string) bool {
	claims, err := Decode(tokenString)
	if err != nil {
		return true
	}
	if claims.ExpiresAt.IsZero() {
		return true
	}
	return !time.Now().Before(claims.ExpiresAt)
}
