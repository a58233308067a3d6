package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/account/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// AuthHandler serves the two halves of the challenge login.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleChallenge handles POST /v1/account/challenge
//
//	@Summary		Start Login
//	@Description	Issues a single use nonce and the salts needed to re-derive the signing key that must sign it.
//	@Description	Unregistered emails receive plausible salts and a nonce that can never be answered.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.ChallengeRequest		true	"email"
//	@Success		200		{object}	accountsdk.ChallengeResponse	"challenge, auth_salt, paper_auth_salt"
//	@Failure		400		{object}	accountsdk.ErrorResponse		"error, error_description"
//	@Failure		429		{object}	accountsdk.ErrorResponse		"rate limit exceeded"
//	@Router			/v1/account/challenge [post].
func (h *AuthHandler) HandleChallenge(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.ChallengeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := accountsdk.ValidateEmail(req.Email); err != nil {
		writeServiceError(w, r, &service.ValidationError{Fields: map[string]string{"email": err.Error()}})
		return
	}

	res, err := h.AuthService.Challenge(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, accountsdk.ChallengeResponse{
		Challenge:     res.Challenge,
		AuthSalt:      res.AuthSalt,
		PaperAuthSalt: res.PaperAuthSalt,
	})
}

// HandleAuth handles POST /v1/account/auth
//
//	@Summary		Complete Login
//	@Description	Verifies an Ed25519 signature over the challenge nonce with the password (keyid "password") or paper (keyid "paper") signing key.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.AuthRequest		true	"email, challenge, response, keyid"
//	@Success		200		{object}	accountsdk.AuthResponse		"token, account, profile"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	accountsdk.ErrorResponse	"challenge response rejected"
//	@Failure		429		{object}	accountsdk.ErrorResponse	"rate limit exceeded"
//	@Router			/v1/account/auth [post].
func (h *AuthHandler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.AuthRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Challenge == "" || req.Response == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email, challenge and response are required")
		return
	}

	sess, err := h.AuthService.Authenticate(r.Context(), req.Email, req.Challenge, req.Response, req.KeyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, accountsdk.AuthResponse{
		Token:   sess.Token,
		Account: accountInfo(sess.Account.ID, sess.Queen, ""),
		Profile: profileFromAccount(sess.Account),
	})
}
