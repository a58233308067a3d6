package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/account/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// MetaHandler serves the free form profile meta map.
type MetaHandler struct {
	AccountService *service.AccountService
}

// HandleGet handles GET /v1/account/profile/meta
//
//	@Summary		Get Profile Meta
//	@Description	Returns the profile meta map. Accepts session and recovery tokens.
//	@Tags			Account
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	accountsdk.ProfileMeta		"string map"
//	@Failure		401	{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/account/profile/meta [get].
func (h *MetaHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	meta, err := h.AccountService.Meta(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accountsdk.ProfileMeta(meta))
}

// HandlePut handles PUT /v1/account/profile/meta
//
//	@Summary		Replace Profile Meta
//	@Description	Replaces the whole profile meta map. Keys missing from the body are removed.
//	@Tags			Account
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	accountsdk.ProfileMeta	true	"string map"
//	@Success		204
//	@Failure		400	{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Failure		401	{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/account/profile/meta [put].
func (h *MetaHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var meta accountsdk.ProfileMeta
	if !decodeBody(w, r, &meta) {
		return
	}

	if err := h.AccountService.ReplaceMeta(r.Context(), id, meta); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
