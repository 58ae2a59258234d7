package service

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go-bloglist-api/internal/model"
	"go-bloglist-api/pkg/apierror"
)

const msgTokenInvalid = "token missing or invalid"

// authenticate verifies a raw bearer token. Callers only learn that the token
// was unusable; the expired/invalid distinction goes to the log.
func authenticate(tokens TokenVerifier, token string) (*model.AuthClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apierror.Unauthorized(msgTokenInvalid)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		kind := "invalid"
		if errors.Is(err, model.ErrTokenExpired) {
			kind = "expired"
		}
		slog.Debug("token verification failed", "kind", kind, "error", err)
		return nil, apierror.Wrap(err, apierror.CodeUnauthorized, msgTokenInvalid, http.StatusUnauthorized)
	}

	return claims, nil
}

// sameID compares identifiers after trimming and case folding so textual
// variants of one uuid match.
func sameID(a string, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
