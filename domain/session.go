package domain

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/tidwall/gjson"
)

// Session is the client-held proof of authentication plus the cached profile.
// Token and User are independently empty; only the token decides whether the
// operator is logged in.
type Session struct {
	Token string          `json:"token,omitempty"`
	User  json.RawMessage `json:"user,omitempty"`
}

func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// IsAdmin mirrors the profile's superuser flag.
func (s Session) IsAdmin() bool {
	if len(s.User) == 0 {
		return false
	}
	return gjson.GetBytes(s.User, "is_superuser").Bool()
}

// Profile decodes the cached profile, returning nil when none is cached.
func (s Session) Profile() (*User, error) {
	if len(s.User) == 0 || string(s.User) == "null" {
		return nil, nil
	}
	var user User
	if err := json.Unmarshal(s.User, &user); err != nil {
		return nil, WrapError(ErrCodeInvalid, "decode cached profile", err)
	}
	return &user, nil
}

// TokenInfo is what the console can tell about a bearer token without the signing key.
type TokenInfo struct {
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the token carries an expiry in the past.
func (t TokenInfo) Expired(reference time.Time) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !t.ExpiresAt.After(reference)
}

// TokenInfo decodes the JWT claims without verifying the signature. The backend
// stays the only authority on validity; this is for display only.
func (s Session) TokenInfo() (TokenInfo, error) {
	if s.Token == "" {
		return TokenInfo{}, ErrNotLoggedIn
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return TokenInfo{}, WrapError(ErrCodeInvalid, "parse bearer token", err)
	}
	info := TokenInfo{}
	if sub, ok := claims["sub"]; ok {
		info.Subject = gjson.Parse(mustJSON(sub)).String()
	}
	if exp, ok := claims["exp"].(float64); ok {
		info.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return info, nil
}

func mustJSON(v interface{}) string {
	out, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(out)
}
