package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"go-bloglist-api/internal/model"
	"go-bloglist-api/pkg/apierror"
)

const (
	msgInvalidJSON    = "invalid JSON body"
	msgTokenInvalid   = "token missing or invalid"
	msgInternalServer = "internal server error"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError normalizes every failure into {"error": "<message>"}. Errors
// the chain below does not recognise are logged and reported as a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := msgInternalServer

	var (
		apiErr        *apierror.APIError
		validationErr *model.ValidationError
		conflictErr   *model.ConflictError
	)

	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		message = apiErr.Message
		if status >= http.StatusInternalServerError {
			slog.Error("request failed", "code", apiErr.Code, "error", err)
		}
	} else if errors.As(err, &validationErr) {
		status = http.StatusBadRequest
		message = validationErr.Error()
	} else if errors.As(err, &conflictErr) {
		status = http.StatusBadRequest
		message = conflictErr.Error()
	} else if errors.Is(err, model.ErrMalformedID) {
		status = http.StatusBadRequest
		message = model.ErrMalformedID.Error()
	} else if errors.Is(err, model.ErrTokenExpired) || errors.Is(err, model.ErrTokenInvalid) {
		status = http.StatusUnauthorized
		message = msgTokenInvalid
	} else if errors.Is(err, model.ErrBlogNotFound) {
		status = http.StatusNotFound
		message = model.ErrBlogNotFound.Error()
	} else if errors.Is(err, model.ErrUserNotFound) {
		status = http.StatusNotFound
		message = model.ErrUserNotFound.Error()
	} else {
		slog.Error("unhandled error in writeError", "error", err)
	}

	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// decodeJSON reads the request body into dst. An empty body leaves dst at its
// zero value so field validation can report what is missing.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apierror.Wrap(err, apierror.CodeBadRequest, msgInvalidJSON, http.StatusBadRequest)
	}
	return nil
}
