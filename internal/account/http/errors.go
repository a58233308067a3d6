package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/account/service"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON request body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return false
	}
	return true
}

// writeServiceError maps service errors onto status codes. Anything
// unexpected is logged and reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", verr.Error())
	case errors.Is(err, service.ErrAccountExists), errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, service.ErrInvalidChallenge), errors.Is(err, service.ErrInvalidSignature):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_grant", "Challenge response rejected")
	case errors.Is(err, service.ErrAccountNotFound), errors.Is(err, service.ErrClientNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
	}
}

// accountID returns the authenticated account, writing a 401 if the
// request somehow reached the handler without one.
func accountID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := httpx.AccountIDFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "Missing account")
	}
	return id, ok
}
