package http

import (
	"github.com/aussiebroadwan/accounts/internal/account/domain"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
)

func profileFromAccount(a domain.Account) accountsdk.Profile {
	return accountsdk.Profile{
		Name:            a.Name,
		Email:           a.Email,
		AuthSalt:        a.AuthSalt,
		EncSalt:         a.EncSalt,
		SigningKey:      signingKey(a.SigningKey),
		PaperAuthSalt:   a.PaperAuthSalt,
		PaperEncSalt:    a.PaperEncSalt,
		PaperSigningKey: signingKey(a.PaperSigningKey),
	}
}

func accountFromProfile(p accountsdk.Profile) domain.Account {
	return domain.Account{
		Name:            p.Name,
		Email:           p.Email,
		AuthSalt:        p.AuthSalt,
		EncSalt:         p.EncSalt,
		SigningKey:      ed25519(p.SigningKey),
		PaperAuthSalt:   p.PaperAuthSalt,
		PaperEncSalt:    p.PaperEncSalt,
		PaperSigningKey: ed25519(p.PaperSigningKey),
	}
}

func updateFromProfile(p accountsdk.Profile) domain.ProfileUpdate {
	a := accountFromProfile(p)
	return domain.ProfileUpdate{
		Name:            a.Name,
		Email:           a.Email,
		AuthSalt:        a.AuthSalt,
		EncSalt:         a.EncSalt,
		SigningKey:      a.SigningKey,
		PaperAuthSalt:   a.PaperAuthSalt,
		PaperEncSalt:    a.PaperEncSalt,
		PaperSigningKey: a.PaperSigningKey,
	}
}

func accountInfo(accountID string, c domain.Client, secret string) accountsdk.AccountInfo {
	return accountsdk.AccountInfo{
		AccountID: accountID,
		Client: accountsdk.ClientCredentials{
			ClientID:  c.ID,
			APIKeyID:  c.APIKeyID,
			APISecret: secret,
		},
	}
}

func signingKey(k string) *accountsdk.SigningKey {
	if k == "" {
		return nil
	}
	return &accountsdk.SigningKey{Ed25519: k}
}

func ed25519(k *accountsdk.SigningKey) string {
	if k == nil {
		return ""
	}
	return k.Ed25519
}
