package accountsdk

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/accounts/pkg/storagesdk"
)

// Client is a logged in account: an authenticated API handle, the account
// and profile records, and the decrypted queen storage client.
type Client struct {
	account *Account
	api     *API
	info    AccountInfo
	profile Profile
	queen   *storagesdk.Client
}

func (a *Account) newClient(api *API, info AccountInfo, profile Profile, cfg storagesdk.Config) (*Client, error) {
	queen, err := storagesdk.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	// The queen's secret lives in the storage config only.
	info.Client.APISecret = ""
	return &Client{
		account: a,
		api:     api,
		info:    info,
		profile: profile,
		queen:   queen,
	}, nil
}

// API returns the client's authenticated API handle.
func (c *Client) API() *API { return c.api }

// Account returns the account record.
func (c *Client) Account() AccountInfo { return c.info }

// Profile returns the profile as last seen from the service.
func (c *Client) Profile() Profile { return c.profile }

// Queen returns the account's queen storage client.
func (c *Client) Queen() *storagesdk.Client { return c.queen }

// ValidatePassword reports whether password re-derives the profile's
// signing key. It makes no requests.
func (c *Client) ValidatePassword(password string) bool {
	ok, err := c.validatePassword(password)
	return err == nil && ok
}

func (c *Client) validatePassword(password string) (bool, error) {
	if c.profile.SigningKey == nil || c.profile.SigningKey.Ed25519 == "" {
		return false, fmt.Errorf("%w: profile has no signing key", ErrCorruptBackupPayload)
	}
	salt, err := c.account.decodeSalt("auth salt", c.profile.AuthSalt)
	if err != nil {
		return false, err
	}

	keys, err := c.account.crypto.DeriveSigningKey(password, salt, c.account.rounds)
	if err != nil {
		return false, fmt.Errorf("failed to derive auth key: %w", err)
	}
	return subtle.ConstantTimeCompare([]byte(keys.PublicKey), []byte(c.profile.SigningKey.Ed25519)) == 1, nil
}

// ChangePassword replaces the password hierarchy and returns a Client bound
// to it. For LoginStandard the current password is checked locally first
// and ErrIncorrectPassword is returned, with nothing written, on mismatch.
// LoginPaper skips the check: a session opened with the paper key has
// already proven possession of a credential.
//
// Only the password backup is rewritten. The paper backup is left sealed
// under the paper key, which this call does not change.
func (c *Client) ChangePassword(ctx context.Context, current, next string, typ LoginType) (*Client, error) {
	tok := c.api.Token()
	if tok == nil {
		return nil, ErrNoToken
	}

	if typ != LoginPaper {
		ok, err := c.validatePassword(current)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrIncorrectPassword
		}
	}

	ks, err := c.account.newKeySet(next)
	if err != nil {
		return nil, err
	}

	updated, err := c.api.UpdateProfile(ctx, c.account.passwordProfile(ks))
	if err != nil {
		return nil, err
	}

	meta, err := c.api.GetProfileMeta(ctx)
	if err != nil {
		return nil, err
	}
	sealed, err := c.account.sealBackup(c.queen.Config(), ks.encKey)
	if err != nil {
		return nil, err
	}
	meta = meta.Clone()
	meta[MetaBackupClient] = sealed
	if err := c.api.PutProfileMeta(ctx, meta); err != nil {
		return nil, fmt.Errorf("failed to store backup: %w", err)
	}

	username := c.profile.Email
	if updated.Email != "" {
		username = updated.Email
	}
	api := c.api.WithToken(tok.WithRefresher(c.account.newRefresher(ks.auth, username, KeyIDPassword)))

	return &Client{
		account: c.account,
		api:     api,
		info:    c.info,
		profile: *updated,
		queen:   c.queen,
	}, nil
}

// ListRealmIdentities fetches one page of identities in realm.
func (c *Client) ListRealmIdentities(ctx context.Context, realm string, first, maxResults int) (*IdentityPage, error) {
	return c.api.ListRealmIdentities(ctx, realm, first, maxResults)
}

// ============================================================================
// Serialization
// ============================================================================

// SerializedAPI is the serialized form of an API handle.
type SerializedAPI struct {
	APIURL string     `json:"apiUrl"`
	Token  *TokenData `json:"token,omitempty"`
}

// SerializedClient is the serialized form of a Client. It contains the
// refresher's private key and the queen client's credentials, so it must
// be stored as a secret.
type SerializedClient struct {
	API           SerializedAPI   `json:"api"`
	Account       AccountInfo     `json:"account"`
	Profile       Profile         `json:"profile"`
	StorageClient json.RawMessage `json:"storageClient"`
}

// Serialize captures everything needed to restore the client with
// Account.FromObject.
func (c *Client) Serialize() (SerializedClient, error) {
	storage, err := c.queen.Config().Serialize()
	if err != nil {
		return SerializedClient{}, err
	}

	out := SerializedClient{
		API:           SerializedAPI{APIURL: c.api.URL()},
		Account:       c.info,
		Profile:       c.profile,
		StorageClient: storage,
	}
	if tok := c.api.Token(); tok != nil {
		data := tok.Serialize()
		out.API.Token = &data
	}
	return out, nil
}

// MarshalJSON implements json.Marshaler via Serialize.
func (c *Client) MarshalJSON() ([]byte, error) {
	obj, err := c.Serialize()
	if err != nil {
		return nil, err
	}
	return json.Marshal(obj)
}
