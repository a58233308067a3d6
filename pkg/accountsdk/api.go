package accountsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// API is a handle on the account service. Handles are immutable: WithToken
// and Clone return new handles and never touch the receiver.
type API struct {
	baseURL    string
	httpClient *http.Client
	token      *Token
}

// NewAPI returns a token-less handle on baseURL. A nil httpClient falls back
// to a default client with request logging.
func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = defaultHTTPClient(nil)
	}
	return &API{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// URL returns the service base URL.
func (a *API) URL() string { return a.baseURL }

// Token returns the handle's token, or nil.
func (a *API) Token() *Token { return a.token }

// WithToken returns a copy of the handle bound to t.
func (a *API) WithToken(t *Token) *API {
	c := *a
	c.token = t
	return &c
}

// Clone returns a copy of the handle without a token.
func (a *API) Clone() *API { return a.WithToken(nil) }

// ============================================================================
// Unauthenticated Endpoints
// ============================================================================

// Register creates an account and its queen client.
func (a *API) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	resp, err := a.doRequest(ctx, http.MethodPost, "/v1/account/profile", req)
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusOK, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Challenge requests a login nonce for email.
func (a *API) Challenge(ctx context.Context, email string) (*ChallengeResponse, error) {
	resp, err := a.doRequest(ctx, http.MethodPost, "/v1/account/challenge", ChallengeRequest{Email: email})
	if err != nil {
		return nil, err
	}

	var out ChallengeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteChallenge answers a login nonce.
func (a *API) CompleteChallenge(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	resp, err := a.doRequest(ctx, http.MethodPost, "/v1/account/auth", req)
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// InitiateRecovery asks the service to email a recovery token. The service
// answers the same way whether or not the account exists.
func (a *API) InitiateRecovery(ctx context.Context, email string) error {
	resp, err := a.doRequest(ctx, http.MethodPost, "/v1/account/recover", RecoveryRequest{Email: email})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK, http.StatusNoContent)
}

// GetLiveness checks if the service is alive.
func (a *API) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := a.doRequest(ctx, http.MethodGet, "/livez", nil)
	if err != nil {
		return nil, err
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Authenticated Endpoints
// ============================================================================

// GetProfileMeta returns the profile meta map.
func (a *API) GetProfileMeta(ctx context.Context) (ProfileMeta, error) {
	resp, err := a.doAuthRequest(ctx, http.MethodGet, "/v1/account/profile/meta", nil)
	if err != nil {
		return nil, err
	}

	out := ProfileMeta{}
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// PutProfileMeta replaces the profile meta map.
func (a *API) PutProfileMeta(ctx context.Context, meta ProfileMeta) error {
	resp, err := a.doAuthRequest(ctx, http.MethodPut, "/v1/account/profile/meta", meta)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK, http.StatusNoContent)
}

// UpdateProfile patches the profile. Empty fields are left as stored.
func (a *API) UpdateProfile(ctx context.Context, profile Profile) (*Profile, error) {
	resp, err := a.doAuthRequest(ctx, http.MethodPatch, "/v1/account/profile", UpdateProfileRequest{Profile: profile})
	if err != nil {
		return nil, err
	}

	var out UpdateProfileResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// BackfillSigningKey registers a signing key on a client that predates them.
func (a *API) BackfillSigningKey(ctx context.Context, clientID string, key SigningKey) error {
	path := "/v1/client/" + url.PathEscape(clientID) + "/keys"
	resp, err := a.doAuthRequest(ctx, http.MethodPatch, path, KeyBackfillRequest{SigningKey: key})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK, http.StatusNoContent)
}

// RollQueen replaces the account's queen client. The old client's
// credentials stop working.
func (a *API) RollQueen(ctx context.Context, keys QueenKeys) (*AccountInfo, error) {
	resp, err := a.doAuthRequest(ctx, http.MethodPost, "/v1/account/e3db/clients/queen", RollQueenRequest{Client: keys})
	if err != nil {
		return nil, err
	}

	var out AccountInfo
	if err := decodeJSON(resp, &out, http.StatusOK, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRealmIdentities fetches one page of identities in realm. Records are
// decoded concurrently.
func (a *API) ListRealmIdentities(ctx context.Context, realm string, first, maxResults int) (*IdentityPage, error) {
	q := url.Values{}
	q.Set("first", strconv.Itoa(first))
	q.Set("max", strconv.Itoa(maxResults))
	path := "/v1/identity/realm/" + url.PathEscape(realm) + "/identities?" + q.Encode()

	resp, err := a.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var raw rawIdentityPage
	if err := decodeJSON(resp, &raw, http.StatusOK); err != nil {
		return nil, err
	}
	return decodeIdentityPage(ctx, raw)
}
