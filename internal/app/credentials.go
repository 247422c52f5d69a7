package app

import (
	"fedisync/pkg/config"
	"fedisync/pkg/models"
	"fedisync/pkg/remote"
)

// envCreds resolves credentials from the token env vars declared per
// account. Tokens are re-read on every lookup so rotation does not
// require a restart.
type envCreds struct {
	accounts map[string]config.Account
}

func credentialSource(accounts []config.Account) remote.CredentialSource {
	m := make(map[string]config.Account, len(accounts))
	for _, a := range accounts {
		id := models.AccountScope{Instance: a.Instance, Username: a.Username}.ID()
		m[id] = a
	}
	return &envCreds{accounts: m}
}

func (c *envCreds) Credential(scope string) *remote.Credential {
	acct, ok := c.accounts[scope]
	if !ok {
		return nil
	}
	tok := acct.Token()
	if tok == "" {
		return nil
	}
	return &remote.Credential{Token: tok}
}
