package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/account/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// ProfileHandler serves account registration and profile updates.
type ProfileHandler struct {
	AccountService *service.AccountService
}

// HandleRegister handles POST /v1/account/profile
//
//	@Summary		Register Account
//	@Description	Creates an account from client-derived salts and public signing keys, plus its queen storage client.
//	@Description	The queen client's API secret is only ever returned here.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.RegisterRequest	true	"Profile and queen client keys"
//	@Success		201		{object}	accountsdk.RegisterResponse	"token, account, profile"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	accountsdk.ErrorResponse	"email already registered"
//	@Failure		500		{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/account/profile [post].
func (h *ProfileHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeServiceError(w, r, &service.ValidationError{Fields: errs})
		return
	}

	reg, err := h.AccountService.Register(r.Context(), accountFromProfile(req.Profile), service.QueenKeys{
		PublicKey:  req.Account.PublicKey.Curve25519,
		SigningKey: req.Account.SigningKey.Ed25519,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, accountsdk.RegisterResponse{
		Token:   reg.Token,
		Account: accountInfo(reg.Account.ID, reg.Queen, reg.APISecret),
		Profile: profileFromAccount(reg.Account),
	})
}

// HandleUpdate handles PATCH /v1/account/profile
//
//	@Summary		Update Profile
//	@Description	Replaces the supplied profile fields; empty fields are left unchanged.
//	@Description	A credential hierarchy (salts plus signing key) must be replaced whole.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		accountsdk.UpdateProfileRequest		true	"Profile fields to change"
//	@Success		200		{object}	accountsdk.UpdateProfileResponse	"profile"
//	@Failure		400		{object}	accountsdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	accountsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	accountsdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	accountsdk.ErrorResponse			"email already registered"
//	@Router			/v1/account/profile [patch].
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req accountsdk.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeServiceError(w, r, &service.ValidationError{Fields: errs})
		return
	}

	a, err := h.AccountService.UpdateProfile(r.Context(), id, updateFromProfile(req.Profile))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, accountsdk.UpdateProfileResponse{Profile: profileFromAccount(a)})
}
