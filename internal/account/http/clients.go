package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/account/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// ClientsHandler serves storage client key management.
type ClientsHandler struct {
	ClientService *service.ClientService
}

// HandleBackfill handles PATCH /v1/client/{id}/keys
//
//	@Summary		Backfill Client Signing Key
//	@Description	Sets the Ed25519 signing key of a client that was created without one.
//	@Tags			Clients
//	@Accept			json
//	@Security		BearerAuth
//	@Param			id		path	string							true	"Client ID"
//	@Param			request	body	accountsdk.KeyBackfillRequest	true	"signing_key"
//	@Success		204
//	@Failure		400	{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Failure		401	{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	accountsdk.ErrorResponse	"client not found"
//	@Router			/v1/client/{id}/keys [patch].
func (h *ClientsHandler) HandleBackfill(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req accountsdk.KeyBackfillRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.SigningKey.Ed25519 == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "signing_key.ed25519 is required")
		return
	}

	if err := h.ClientService.BackfillSigningKey(r.Context(), id, r.PathValue("id"), req.SigningKey.Ed25519); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRollQueen handles POST /v1/account/e3db/clients/queen
//
//	@Summary		Roll Queen Client
//	@Description	Registers a replacement queen client and supersedes the current one. The new API secret is only returned here.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		accountsdk.RollQueenRequest	true	"client public keys"
//	@Success		201		{object}	accountsdk.AccountInfo		"account_id, client"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/account/e3db/clients/queen [post].
func (h *ClientsHandler) HandleRollQueen(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req accountsdk.RollQueenRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Client.PublicKey.Curve25519 == "" || req.Client.SigningKey.Ed25519 == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "client public_key and signing_key are required")
		return
	}

	c, secret, err := h.ClientService.RollQueen(r.Context(), id, service.QueenKeys{
		PublicKey:  req.Client.PublicKey.Curve25519,
		SigningKey: req.Client.SigningKey.Ed25519,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, accountInfo(id, c, secret))
}
