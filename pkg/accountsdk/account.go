package accountsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/storagesdk"
)

// Account bootstraps account sessions: registration, login, recovery and
// restoring a serialized Client. It holds no per-user state and is safe for
// concurrent use.
type Account struct {
	crypto   Crypto
	api      *API
	rounds   int
	lifetime time.Duration
	now      func() time.Time
}

// NewAccount returns an Account talking to apiURL with crypto.
func NewAccount(crypto Crypto, apiURL string, opts ...Option) *Account {
	s := newSettings(opts)
	return &Account{
		crypto:   crypto,
		api:      NewAPI(apiURL, s.httpClient),
		rounds:   s.rounds,
		lifetime: s.lifetime,
		now:      s.now,
	}
}

// API returns the Account's token-less API handle.
func (a *Account) API() *API { return a.api }

// Registration is the result of Register and ChangeAccountPassword. PaperKey
// is shown to the user once and never stored by the SDK.
type Registration struct {
	PaperKey string
	Client   *Client
}

func (a *Account) newToken(token string, r Refresher) *Token {
	return NewToken(token, r, TokenLifetime(a.lifetime), TokenClock(a.now))
}

func (a *Account) newRefresher(keys Keypair, username, keyID string) *KeyRefresher {
	return NewKeyRefresher(a.api.Clone(), a.crypto, keys, username, keyID)
}

// Register creates an account for email protected by password, along with
// a fresh paper key, and escrows the new queen client under both.
func (a *Account) Register(ctx context.Context, name, email, password string) (*Registration, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	paperKey, err := cryptox.GeneratePaperKey()
	if err != nil {
		return nil, err
	}
	creds, err := a.newCredentials(password, paperKey)
	if err != nil {
		return nil, err
	}
	enc, sig, err := a.queenKeys()
	if err != nil {
		return nil, err
	}

	resp, err := a.api.Register(ctx, RegisterRequest{
		Profile: a.profile(name, email, creds),
		Account: AccountInit{
			PublicKey:  PublicKey{Curve25519: enc.PublicKey},
			SigningKey: SigningKey{Ed25519: sig.PublicKey},
		},
	})
	if err != nil {
		return nil, err
	}

	tok := a.newToken(resp.Token, a.newRefresher(creds.password.auth, email, KeyIDPassword))
	api := a.api.WithToken(tok)

	cfg := queenConfig(resp.Account.Client, enc, sig, api.URL())
	meta, err := a.backupMeta(ProfileMeta{}, cfg, creds.password.encKey, creds.paper.encKey)
	if err != nil {
		return nil, err
	}
	if err := api.PutProfileMeta(ctx, meta); err != nil {
		return nil, fmt.Errorf("failed to store backup: %w", err)
	}

	client, err := a.newClient(api, resp.Account, resp.Profile, cfg)
	if err != nil {
		return nil, err
	}
	return &Registration{PaperKey: paperKey, Client: client}, nil
}

// Login authenticates username with secret. For LoginPaper, secret is the
// paper key; it is normalised before use. An empty typ means LoginStandard.
func (a *Account) Login(ctx context.Context, username, secret string, typ LoginType) (*Client, error) {
	if typ == "" {
		typ = LoginStandard
	}
	if typ == LoginPaper {
		secret = cryptox.NormalizePaperKey(secret)
	}

	ch, err := a.api.Challenge(ctx, username)
	if err != nil {
		return nil, err
	}

	authSalt, err := a.decodeSalt("auth salt", pick(typ, ch.AuthSalt, ch.PaperAuthSalt))
	if err != nil {
		return nil, err
	}
	keys, err := a.crypto.DeriveSigningKey(secret, authSalt, a.rounds)
	if err != nil {
		return nil, fmt.Errorf("failed to derive auth key: %w", err)
	}

	refresher := a.newRefresher(keys, username, typ.keyID())
	auth, err := refresher.answer(ctx, ch.Challenge)
	if err != nil {
		return nil, err
	}
	api := a.api.WithToken(a.newToken(auth.Token, refresher))

	meta, err := api.GetProfileMeta(ctx)
	if err != nil {
		return nil, err
	}

	encSalt, err := a.decodeSalt("enc salt", pick(typ, auth.Profile.EncSalt, auth.Profile.PaperEncSalt))
	if err != nil {
		return nil, err
	}
	encKey, err := a.crypto.DeriveSymmetricKey(secret, encSalt, a.rounds)
	if err != nil {
		return nil, fmt.Errorf("failed to derive enc key: %w", err)
	}

	metaKey := pick(typ, MetaBackupClient, MetaPaperBackup)
	cfg, err := a.openBackup(meta[metaKey], encKey)
	if err != nil {
		return nil, err
	}
	cfg = cfg.WithAPIURL(api.URL())

	cfg, err = a.migrateLegacyClient(ctx, api, meta, metaKey, cfg, encKey)
	if err != nil {
		return nil, err
	}
	return a.newClient(api, auth.Account, auth.Profile, cfg)
}

// ChangeAccountPassword completes account recovery. accountToken is the
// token from the recovery email. Both credential hierarchies are replaced,
// a new paper key is issued, the queen client is rolled and its backups are
// rewritten under the new keys.
func (a *Account) ChangeAccountPassword(ctx context.Context, password, accountToken string) (*Registration, error) {
	if accountToken == "" {
		return nil, &ValidationError{Field: "token", Reason: "recovery token is required", Err: ErrInvalidToken}
	}
	recovery := a.api.WithToken(a.newToken(accountToken, nil))

	paperKey, err := cryptox.GeneratePaperKey()
	if err != nil {
		return nil, err
	}
	creds, err := a.newCredentials(password, paperKey)
	if err != nil {
		return nil, err
	}

	updated, err := recovery.UpdateProfile(ctx, a.profile("", "", creds))
	if err != nil {
		return nil, err
	}

	// The recovery token keeps working until it expires; after that the
	// session re-authenticates with the new password.
	tok := recovery.Token().WithRefresher(a.newRefresher(creds.password.auth, updated.Email, KeyIDPassword))
	api := recovery.WithToken(tok)

	enc, sig, err := a.queenKeys()
	if err != nil {
		return nil, err
	}
	info, err := api.RollQueen(ctx, QueenKeys{
		PublicKey:  PublicKey{Curve25519: enc.PublicKey},
		SigningKey: SigningKey{Ed25519: sig.PublicKey},
	})
	if err != nil {
		return nil, err
	}

	meta, err := api.GetProfileMeta(ctx)
	if err != nil {
		return nil, err
	}
	cfg := queenConfig(info.Client, enc, sig, api.URL())
	meta, err = a.backupMeta(meta, cfg, creds.password.encKey, creds.paper.encKey)
	if err != nil {
		return nil, err
	}
	if err := api.PutProfileMeta(ctx, meta); err != nil {
		return nil, fmt.Errorf("failed to store backup: %w", err)
	}

	client, err := a.newClient(api, *info, *updated, cfg)
	if err != nil {
		return nil, err
	}
	return &Registration{PaperKey: paperKey, Client: client}, nil
}

// RequestRecovery asks the service to email a recovery token to email.
func (a *Account) RequestRecovery(ctx context.Context, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return a.api.InitiateRecovery(ctx, email)
}

// TokenFromData rebuilds a Token from its serialized form. The data is
// untrusted and validated before use.
func (a *Account) TokenFromData(d TokenData) (*Token, error) {
	if d.Token == "" {
		return nil, &ValidationError{Field: "token", Reason: "token is required", Err: ErrInvalidToken}
	}

	var r Refresher
	if d.Refresher != nil {
		kr, err := refresherFromData(d.Refresher, a.api.Clone(), a.crypto)
		if err != nil {
			return nil, err
		}
		r = kr
	}

	return NewToken(d.Token, r,
		TokenLifetime(a.lifetime),
		TokenClock(a.now),
		tokenCreated(time.UnixMilli(d.Created)),
	), nil
}

// FromObject restores a Client serialized with Client.Serialize.
func (a *Account) FromObject(obj SerializedClient) (*Client, error) {
	api := a.api
	if obj.API.APIURL != "" && obj.API.APIURL != a.api.URL() {
		api = NewAPI(obj.API.APIURL, a.api.httpClient)
	}

	if obj.API.Token != nil {
		tok, err := a.TokenFromData(*obj.API.Token)
		if err != nil {
			return nil, err
		}
		if kr, ok := tok.Refresher().(*KeyRefresher); ok {
			kr.api = api.Clone()
		}
		api = api.WithToken(tok)
	}

	cfg, err := storagesdk.ParseConfig(obj.StorageClient)
	if err != nil {
		return nil, &ValidationError{Field: "storageClient", Reason: err.Error(), Err: err}
	}
	return a.newClient(api, obj.Account, obj.Profile, cfg)
}

// FromJSON restores a Client from the output of Client.MarshalJSON.
func (a *Account) FromJSON(data []byte) (*Client, error) {
	var obj SerializedClient
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &ValidationError{Field: "client", Reason: "malformed JSON", Err: err}
	}
	return a.FromObject(obj)
}

// queenConfig assembles a storage client config from the server issued
// credentials and the locally generated keypairs.
func queenConfig(creds ClientCredentials, enc, sig Keypair, apiURL string) storagesdk.Config {
	return storagesdk.NewConfig(
		creds.ClientID, creds.APIKeyID, creds.APISecret,
		enc.PublicKey, enc.PrivateKey,
		apiURL,
		sig.PublicKey, sig.PrivateKey,
	)
}

func pick(typ LoginType, standard, paper string) string {
	if typ == LoginPaper {
		return paper
	}
	return standard
}
