/*
Package accountsdk is the client SDK for the account service.

# Overview

An account is protected by two independent credential hierarchies: the
account password and a paper key issued once at registration. Each
hierarchy has its own pair of salts. From a secret and its salts the SDK
derives

  - an auth signing keypair, whose public half is registered with the
    service and whose private half answers login challenges, and
  - a symmetric enc key, which seals a copy of the account's queen storage
    client into the profile meta.

The service never sees either secret or either enc key. Both hierarchies
escrow the same queen client, so either credential alone restores it.

# Account vs Client

Account bootstraps sessions and holds no per-user state:

	acct := accountsdk.NewAccount(cryptox.NewSodium(), "https://accounts.example.com")

	reg, err := acct.Register(ctx, "Jo", "jo@example.com", password)
	// show reg.PaperKey to the user exactly once

	client, err := acct.Login(ctx, "jo@example.com", password, accountsdk.LoginStandard)
	client, err = acct.Login(ctx, "jo@example.com", paperKey, accountsdk.LoginPaper)

Client is a logged in account. Its API handle refreshes its own token by
re-answering a login challenge whenever the token is older than its
lifetime:

	queen := client.Queen()
	client, err = client.ChangePassword(ctx, oldPassword, newPassword, accountsdk.LoginStandard)

# Recovery

	err := acct.RequestRecovery(ctx, "jo@example.com")
	// the service emails a recovery token
	reg, err := acct.ChangeAccountPassword(ctx, newPassword, recoveryToken)

ChangeAccountPassword replaces both hierarchies, issues a new paper key and
rolls the queen client.

# Persistence

Client.Serialize and Account.FromObject move a session across process
restarts. The serialized form carries private key material and the queen
client's API secret and must be stored as a secret.

# Errors

  - *ValidationError: bad caller input, returned before any request
  - *StateError: ErrNoToken and ErrNoRefresherConfigured
  - *RemoteError: any non-2xx response; matches ErrRemoteRequestFailed
  - ErrCorruptBackupPayload and ErrIncorrectPassword from the flows

Errors from the crypto provider are wrapped and can be matched with
errors.Is, for example against cryptox.ErrDecryptionFailed.
*/
package accountsdk
