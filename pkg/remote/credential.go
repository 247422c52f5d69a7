package remote

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CredentialSource resolves the credential for an account scope, or nil
// when the scope is signed out.
type CredentialSource interface {
	Credential(scope string) *Credential
}

// Credential carries the bearer token for an authenticated account scope.
// Instances issue JWTs; the engine never verifies signatures (that is the
// server's job) but does check structure and expiry before spending a
// round-trip on a mutation that would be rejected.
type Credential struct {
	Token string
}

// Valid reports whether the credential is usable: non-empty and, when the
// token parses as a JWT with an expiry claim, not yet expired. Opaque
// non-JWT tokens are accepted as-is.
func (c *Credential) Valid() bool {
	if c == nil || c.Token == "" {
		return false
	}
	tok, _, err := jwt.NewParser().ParseUnverified(c.Token, jwt.MapClaims{})
	if err != nil {
		// Not a JWT; let the server decide.
		return true
	}
	exp, err := tok.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.After(time.Now())
}
