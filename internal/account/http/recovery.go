package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/account/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
)

type RecoveryHandler struct {
	RecoveryService *service.RecoveryService
}

// ServeHTTP handles POST /v1/account/recover
//
//	@Summary		Request Account Recovery
//	@Description	Mails a short lived recovery token if the email is registered. The response is the same either way.
//	@Tags			Account
//	@Accept			json
//	@Param			request	body	accountsdk.RecoveryRequest	true	"email"
//	@Success		204
//	@Failure		400	{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Failure		429	{object}	accountsdk.ErrorResponse	"rate limit exceeded"
//	@Router			/v1/account/recover [post].
func (h *RecoveryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.RecoveryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := accountsdk.ValidateEmail(req.Email); err != nil {
		writeServiceError(w, r, &service.ValidationError{Fields: map[string]string{"email": err.Error()}})
		return
	}

	if err := h.RecoveryService.RequestRecovery(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
