package accountsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aussiebroadwan/accounts/pkg/cryptox"
)

const testRounds = 10

// fakeService is an in-memory single account service. It verifies challenge
// signatures for real, so only correctly derived keys can log in.
type fakeService struct {
	crypto *cryptox.Sodium

	mu          sync.Mutex
	registered  bool
	registerReq RegisterRequest
	profile     Profile
	meta        ProfileMeta
	accountID   string
	clientID    string
	clientKeys  map[string]string
	challenges  map[string]bool
	tokens      map[string]bool
	seq         int

	requests  int
	writes    int
	backfills int
	authCalls int
	lastReq   *http.Request
}

func newFakeService(t *testing.T) (*fakeService, *httptest.Server) {
	t.Helper()

	f := &fakeService{
		crypto:     cryptox.NewSodium(),
		meta:       ProfileMeta{},
		clientKeys: map[string]string{},
		challenges: map[string]bool{},
		tokens:     map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/account/profile", f.register)
	mux.HandleFunc("POST /v1/account/challenge", f.challenge)
	mux.HandleFunc("POST /v1/account/auth", f.auth)
	mux.HandleFunc("GET /v1/account/profile/meta", f.authed(f.getMeta))
	mux.HandleFunc("PUT /v1/account/profile/meta", f.authed(f.putMeta))
	mux.HandleFunc("PATCH /v1/account/profile", f.authed(f.updateProfile))
	mux.HandleFunc("PATCH /v1/client/{id}/keys", f.authed(f.backfill))
	mux.HandleFunc("POST /v1/account/e3db/clients/queen", f.authed(f.rollQueen))
	mux.HandleFunc("POST /v1/account/recover", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests++
		f.lastReq = r.Clone(r.Context())
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeService) newAccount(srv *httptest.Server, opts ...Option) *Account {
	opts = append([]Option{WithKeyHashRounds(testRounds), WithHTTPClient(srv.Client())}, opts...)
	return NewAccount(f.crypto, srv.URL, opts...)
}

// issueToken mints a bearer token. Callers hold f.mu.
func (f *fakeService) issueToken() string {
	f.seq++
	tok := fmt.Sprintf("tok-%d", f.seq)
	f.tokens[tok] = true
	return tok
}

// grant registers an out of band token, like one delivered by a recovery
// email.
func (f *fakeService) grant(tok string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[tok] = true
}

// revokeAll invalidates every issued token.
func (f *fakeService) revokeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = map[string]bool{}
}

// locked runs fn with the service lock held, for tests reading or seeding
// state.
func (f *fakeService) locked(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn()
}

func (f *fakeService) counts() (requests, writes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests, f.writes
}

func (f *fakeService) account() AccountInfo {
	return AccountInfo{AccountID: f.accountID, Client: ClientCredentials{ClientID: f.clientID, APIKeyID: "key-" + f.clientID}}
}

func (f *fakeService) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		f.mu.Lock()
		ok := f.tokens[tok]
		f.mu.Unlock()
		if !ok {
			fakeError(w, http.StatusUnauthorized, "invalid_token", "bearer token not recognised")
			return
		}
		h(w, r)
	}
}

func (f *fakeService) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fakeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registered {
		fakeError(w, http.StatusConflict, "conflict", "account exists")
		return
	}
	f.registered = true
	f.registerReq = req
	f.profile = req.Profile
	f.accountID = "acct-1"
	f.clientID = "client-1"
	f.clientKeys[f.clientID] = req.Account.SigningKey.Ed25519

	info := f.account()
	info.Client.APISecret = "secret-1"
	fakeJSON(w, http.StatusCreated, RegisterResponse{Token: f.issueToken(), Account: info, Profile: f.profile})
}

func (f *fakeService) challenge(w http.ResponseWriter, r *http.Request) {
	var req ChallengeRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	nonce, _ := f.crypto.RandomBytes(32)
	ch := f.crypto.B64URLEncode(nonce)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.challenges[ch] = true
	fakeJSON(w, http.StatusOK, ChallengeResponse{
		Challenge:     ch,
		AuthSalt:      f.profile.AuthSalt,
		PaperAuthSalt: f.profile.PaperAuthSalt,
	})
}

func (f *fakeService) auth(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fakeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.authCalls++

	if !f.challenges[req.Challenge] || req.Email != f.profile.Email {
		fakeError(w, http.StatusUnauthorized, "invalid_grant", "unknown challenge")
		return
	}
	delete(f.challenges, req.Challenge)

	key := f.profile.SigningKey
	if req.KeyID == KeyIDPaper {
		key = f.profile.PaperSigningKey
	}
	nonce, _ := f.crypto.B64URLDecode(req.Challenge)
	if key == nil || f.crypto.Verify(nonce, req.Response, key.Ed25519) != nil {
		fakeError(w, http.StatusUnauthorized, "invalid_grant", "signature mismatch")
		return
	}

	fakeJSON(w, http.StatusOK, AuthResponse{Token: f.issueToken(), Account: f.account(), Profile: f.profile})
}

func (f *fakeService) getMeta(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fakeJSON(w, http.StatusOK, f.meta)
}

func (f *fakeService) putMeta(w http.ResponseWriter, r *http.Request) {
	var meta ProfileMeta
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
		fakeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	f.meta = meta
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeService) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fakeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	p := req.Profile
	if p.AuthSalt != "" {
		f.profile.AuthSalt, f.profile.EncSalt, f.profile.SigningKey = p.AuthSalt, p.EncSalt, p.SigningKey
	}
	if p.PaperAuthSalt != "" {
		f.profile.PaperAuthSalt, f.profile.PaperEncSalt, f.profile.PaperSigningKey = p.PaperAuthSalt, p.PaperEncSalt, p.PaperSigningKey
	}
	fakeJSON(w, http.StatusOK, UpdateProfileResponse{Profile: f.profile})
}

func (f *fakeService) backfill(w http.ResponseWriter, r *http.Request) {
	var req KeyBackfillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fakeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	f.backfills++
	f.clientKeys[r.PathValue("id")] = req.SigningKey.Ed25519
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeService) rollQueen(w http.ResponseWriter, r *http.Request) {
	var req RollQueenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fakeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	f.seq++
	f.clientID = fmt.Sprintf("client-%d", f.seq)
	f.clientKeys[f.clientID] = req.Client.SigningKey.Ed25519

	info := f.account()
	info.Client.APISecret = "secret-" + f.clientID
	fakeJSON(w, http.StatusCreated, info)
}

func fakeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func fakeError(w http.ResponseWriter, code int, errCode, desc string) {
	fakeJSON(w, code, ErrorResponse{Error: errCode, ErrorDescription: desc})
}
