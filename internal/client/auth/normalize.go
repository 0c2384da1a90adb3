// Package auth normalizes the loosely structured responses of the mcom-mall
// authentication endpoints into a canonical session.
//
// The API has shipped at least four different success shapes over time and
// offers no version negotiation, so the token and the user profile are looked
// up along ordered lists of candidate paths rather than a single fixed field.
// The first match wins; the lists below are the authoritative resolution
// order.
package auth

import (
	"encoding/json"
	"errors"

	"github.com/mcom-mall/mallcli/internal/client/models"
)

// Session is the canonical outcome of a successful sign-in or sign-up.
// User may be nil: the API sometimes returns a token with no resolvable
// profile, and callers must tolerate a token-only session.
type Session struct {
	Token string
	User  *models.User
}

var (
	// ErrVerificationPending is returned when the account exists but the
	// email address has not been confirmed yet. The error text is shown to
	// the user as-is.
	ErrVerificationPending = errors.New("please verify your email address before signing in, check your inbox for the confirmation link")

	// ErrNoToken is returned when the payload carries neither a token nor a
	// pending-verification flag.
	ErrNoToken = errors.New("authentication failed - no token received")
)

// tokenPaths lists where a bearer token has been observed in historical
// response shapes, in priority order.
var tokenPaths = [][]string{
	{"auth", "accessToken"},
	{"data", "auth", "accessToken"},
	{"data", "token"},
	{"token"},
}

// userPaths lists where a full user object may appear, in priority order.
var userPaths = [][]string{
	{"user"},
	{"data", "user"},
}

// verificationPaths lists where the pending-verification flag may appear.
var verificationPaths = [][]string{
	{"data", "requiresVerification"},
	{"requiresVerification"},
}

// Normalize maps a raw auth payload to a Session.
//
// Resolution order: token first (a present token always means success, even
// when a verification flag is also set), then the user object, falling back
// to a profile synthesized from top-level scalar fields. Without a token the
// result is ErrVerificationPending if the flag is set, ErrNoToken otherwise.
//
// Normalize is a pure function; persisting the session is the caller's job.
func Normalize(raw models.RawAuthPayload) (*Session, error) {
	token := firstString(raw, tokenPaths)
	if token == "" {
		if firstBool(raw, verificationPaths) {
			return nil, ErrVerificationPending
		}
		return nil, ErrNoToken
	}

	return &Session{Token: token, User: resolveUser(raw)}, nil
}

func resolveUser(raw models.RawAuthPayload) *models.User {
	for _, path := range userPaths {
		v, ok := lookup(raw, path)
		if !ok {
			continue
		}
		if u := decodeUser(v); u != nil {
			return u
		}
	}
	return synthesizeUser(raw)
}

// decodeUser converts an arbitrary JSON value into a User via a JSON
// round-trip, tolerating extra or missing fields. Non-objects yield nil.
func decodeUser(v any) *models.User {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	var u models.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil
	}
	return &u
}

// synthesizeUser builds a profile from top-level scalar fields that some
// response shapes use instead of a nested user object. Returns nil when none
// of the known fields are present.
func synthesizeUser(raw models.RawAuthPayload) *models.User {
	var found bool
	for _, key := range []string{"userId", "name", "email", "role", "packageInfo"} {
		if _, ok := raw[key]; ok {
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	return &models.User{
		ID:    stringAt(raw, "userId"),
		Name:  stringAt(raw, "name"),
		Email: stringAt(raw, "email"),
		Role:  stringAt(raw, "role"),
	}
}

// lookup walks one candidate path through nested JSON objects.
func lookup(raw map[string]any, path []string) (any, bool) {
	var cur any = raw
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func firstString(raw map[string]any, paths [][]string) string {
	for _, path := range paths {
		if v, ok := lookup(raw, path); ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func firstBool(raw map[string]any, paths [][]string) bool {
	for _, path := range paths {
		if v, ok := lookup(raw, path); ok {
			if b, ok := v.(bool); ok && b {
				return true
			}
		}
	}
	return false
}

func stringAt(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}
