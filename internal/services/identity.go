package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// FirebaseIdentity is the external identity extracted from a Firebase ID
// token.
type FirebaseIdentity struct {
	UID           string
	Email         string
	DisplayName   string
	PhotoURL      string
	EmailVerified bool
}

// IdentityVerifier resolves a third-party ID token to an external identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*FirebaseIdentity, error)
}

var (
	ErrTokenMalformed = errors.New("identity token is malformed")
	ErrTokenExpired   = errors.New("identity token is expired")
	ErrWrongIssuer    = errors.New("identity token has an unexpected issuer")
)

type identityClaims struct {
	Exp           int64  `json:"exp"`
	Iss           string `json:"iss"`
	UserID        string `json:"user_id"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	EmailVerified bool   `json:"email_verified"`
}

// DecodeIdentityToken parses the payload segment of a Firebase ID token
// without verifying its signature. It rejects expired tokens and tokens whose
// issuer does not look like Firebase; callers decide how much to trust the
// result.
func DecodeIdentityToken(idToken string, now time.Time) (*FirebaseIdentity, error) {
	parts := strings.Split(idToken, ".")
	if len(parts) != 3 {
		return nil, ErrTokenMalformed
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, ErrTokenMalformed
	}

	var claims identityClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrTokenMalformed
	}

	if claims.Exp != 0 && claims.Exp < now.Unix() {
		return nil, ErrTokenExpired
	}
	if claims.Iss != "" && !strings.Contains(claims.Iss, "firebase") && !strings.Contains(claims.Iss, "securetoken") {
		return nil, ErrWrongIssuer
	}

	uid := claims.UserID
	if uid == "" {
		uid = claims.Sub
	}
	if uid == "" {
		return nil, ErrTokenMalformed
	}

	return &FirebaseIdentity{
		UID:           uid,
		Email:         claims.Email,
		DisplayName:   claims.Name,
		PhotoURL:      claims.Picture,
		EmailVerified: claims.EmailVerified,
	}, nil
}

// FirebaseVerifier resolves ID tokens against Firebase. The local decode is
// used to fail fast on expired or mis-issued tokens, but unless
// allowUnverified is set (development only) the accounts:lookup endpoint is
// the authority, since no signature check happens locally.
type FirebaseVerifier struct {
	apiKey          string
	allowUnverified bool
	endpoint        string
	client          *http.Client
	now             func() time.Time
}

func NewFirebaseVerifier(apiKey string, allowUnverified bool) *FirebaseVerifier {
	return &FirebaseVerifier{
		apiKey:          apiKey,
		allowUnverified: allowUnverified,
		endpoint:        "https://identitytoolkit.googleapis.com/v1/accounts:lookup",
		client:          &http.Client{Timeout: 10 * time.Second},
		now:             time.Now,
	}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*FirebaseIdentity, error) {
	decoded, decErr := DecodeIdentityToken(idToken, v.now())
	switch {
	case errors.Is(decErr, ErrTokenExpired), errors.Is(decErr, ErrWrongIssuer):
		return nil, decErr
	case decErr == nil && v.allowUnverified:
		return decoded, nil
	}

	remote, err := v.lookup(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if decoded != nil {
		// The decoded payload carries profile fields the lookup may omit.
		if remote.DisplayName == "" {
			remote.DisplayName = decoded.DisplayName
		}
		if remote.PhotoURL == "" {
			remote.PhotoURL = decoded.PhotoURL
		}
	}
	return remote, nil
}

func (v *FirebaseVerifier) lookup(ctx context.Context, idToken string) (*FirebaseIdentity, error) {
	body, err := json.Marshal(map[string]string{"idToken": idToken})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s?key=%s", v.endpoint, v.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity lookup failed with status %d", resp.StatusCode)
	}

	var result struct {
		Users []struct {
			LocalID     string `json:"localId"`
			Email       string `json:"email"`
			DisplayName string `json:"displayName"`
			PhotoURL    string `json:"photoUrl"`
		} `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if len(result.Users) == 0 {
		return nil, errors.New("identity lookup returned no users")
	}

	u := result.Users[0]
	return &FirebaseIdentity{
		UID:         u.LocalID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
	}, nil
}
