package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeIDToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func TestDecodeIdentityToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token := makeIDToken(t, map[string]any{
		"iss":            "https://securetoken.google.com/servihub",
		"exp":            now.Add(time.Hour).Unix(),
		"user_id":        "uid-123",
		"email":          "jane@example.com",
		"name":           "Jane",
		"picture":        "https://img.example.com/jane.png",
		"email_verified": true,
	})

	id, err := DecodeIdentityToken(token, now)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", id.UID)
	assert.Equal(t, "jane@example.com", id.Email)
	assert.Equal(t, "Jane", id.DisplayName)
	assert.Equal(t, "https://img.example.com/jane.png", id.PhotoURL)
	assert.True(t, id.EmailVerified)
}

func TestDecodeIdentityTokenFallsBackToSub(t *testing.T) {
	token := makeIDToken(t, map[string]any{
		"iss": "https://securetoken.google.com/servihub",
		"sub": "sub-456",
	})

	id, err := DecodeIdentityToken(token, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "sub-456", id.UID)
}

func TestDecodeIdentityTokenExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token := makeIDToken(t, map[string]any{
		"iss":     "https://securetoken.google.com/servihub",
		"exp":     now.Add(-time.Minute).Unix(),
		"user_id": "uid-123",
	})

	_, err := DecodeIdentityToken(token, now)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestDecodeIdentityTokenWrongIssuer(t *testing.T) {
	token := makeIDToken(t, map[string]any{
		"iss":     "https://accounts.example.org",
		"user_id": "uid-123",
	})

	_, err := DecodeIdentityToken(token, time.Now())
	assert.ErrorIs(t, err, ErrWrongIssuer)
}

func TestDecodeIdentityTokenMalformed(t *testing.T) {
	cases := []string{
		"",
		"not-a-jwt",
		"only.two",
		"a.!!!.c",
	}
	for _, tok := range cases {
		_, err := DecodeIdentityToken(tok, time.Now())
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", tok)
	}

	// Valid shape but no uid at all.
	token := makeIDToken(t, map[string]any{"iss": "https://securetoken.google.com/x"})
	_, err := DecodeIdentityToken(token, time.Now())
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyTrustsDecodeWhenUnverifiedAllowed(t *testing.T) {
	v := NewFirebaseVerifier("test-key", true)
	// No HTTP server is wired up, so reaching lookup would fail the test.
	v.endpoint = "http://127.0.0.1:0"

	token := makeIDToken(t, map[string]any{
		"iss":     "https://securetoken.google.com/servihub",
		"user_id": "uid-789",
		"email":   "dev@example.com",
	})

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-789", id.UID)
	assert.Equal(t, "dev@example.com", id.Email)
}

func TestVerifyRejectsExpiredWithoutLookup(t *testing.T) {
	v := NewFirebaseVerifier("test-key", false)
	v.endpoint = "http://127.0.0.1:0"
	v.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	token := makeIDToken(t, map[string]any{
		"iss":     "https://securetoken.google.com/servihub",
		"exp":     time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC).Unix(),
		"user_id": "uid-789",
	})

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyUsesRemoteLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body struct {
			IDToken string `json:"idToken"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotEmpty(t, body.IDToken)

		json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{{
				"localId": "remote-uid",
				"email":   "jane@example.com",
			}},
		})
	}))
	defer srv.Close()

	v := NewFirebaseVerifier("test-key", false)
	v.endpoint = srv.URL

	token := makeIDToken(t, map[string]any{
		"iss":     "https://securetoken.google.com/servihub",
		"user_id": "uid-789",
		"name":    "Jane",
		"picture": "https://img.example.com/jane.png",
	})

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "remote-uid", id.UID)
	assert.Equal(t, "jane@example.com", id.Email)
	// Profile fields absent from the lookup come from the decoded payload.
	assert.Equal(t, "Jane", id.DisplayName)
	assert.Equal(t, "https://img.example.com/jane.png", id.PhotoURL)
}

func TestVerifyLookupFailures(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		v := NewFirebaseVerifier("test-key", false)
		v.endpoint = srv.URL

		token := makeIDToken(t, map[string]any{"user_id": "uid-789"})
		_, err := v.Verify(context.Background(), token)
		assert.Error(t, err)
	})

	t.Run("no users", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"users": []any{}})
		}))
		defer srv.Close()

		v := NewFirebaseVerifier("test-key", false)
		v.endpoint = srv.URL

		token := makeIDToken(t, map[string]any{"user_id": "uid-789"})
		_, err := v.Verify(context.Background(), token)
		assert.Error(t, err)
	})
}
