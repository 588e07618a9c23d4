// ABOUTME: Tests for unverified JWT claim extraction
// ABOUTME: Verifies decode behavior on valid, malformed, and expired tokens

package token

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"
)

// makeToken builds a structurally valid JWT with the given claims and a
// fake signature. The decoder never verifies signatures, so any value works.
func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()

	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		t.Fatalf("marshal header: %v", err)
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("sig"))
}

func TestDecode(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	tok := makeToken(t, map[string]any{
		"sub": "user-42",
		"iss": "zelqora",
		"aud": "zelqora-web",
		"exp": exp,
	})

	claims, err := Decode(tok)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if claims.Subject != "user-42" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "user-42")
	}
	if claims.Issuer != "zelqora" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "zelqora")
	}
	if len(claims.Audience) != 1 || claims.Audience[0] != "zelqora-web" {
		t.Errorf("Audience = %v, want [zelqora-web]", claims.Audience)
	}
	if claims.ExpiresAt.Unix() != exp {
		t.Errorf("ExpiresAt = %v, want unix %d", claims.ExpiresAt, exp)
	}
}

func TestDecode_NoExpiry(t *testing.T) {
	tok := makeToken(t, map[string]any{"sub": "user-42"})

	claims, err := Decode(tok)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !claims.ExpiresAt.IsZero() {
		t.Errorf("ExpiresAt = %v, want zero time", claims.ExpiresAt)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a jwt", "hello world"},
		{"two segments", "abc.def"},
		{"bad base64 payload", "eyJhbGciOiJIUzI1NiJ9.!!!.sig"},
		{"payload not json", "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.token); err == nil {
				t.Error("Decode succeeded, want error")
			}
		})
	}
}

func TestIsExpired(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "future expiry",
			token: "", // set below
			want:  false,
		},
		{
			name:  "past expiry",
			token: "",
			want:  true,
		},
		{
			name:  "no expiry claim",
			token: "",
			want:  true,
		},
		{
			name:  "malformed token",
			token: "garbage",
			want:  true,
		},
	}

	tests[0].token = makeToken(t, map[string]any{"sub": "u", "exp": time.Now().Add(time.Hour).Unix()})
	tests[1].token = makeToken(t, map[string]any{"sub": "u", "exp": time.Now().Add(-time.Hour).Unix()})
	tests[2].token = makeToken(t, map[string]any{"sub": "u"})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExpired(tt.token); got != tt.want {
				t.Errorf("IsExpired = %v, want %v", got, tt.want)
			}
		})
	}
}
