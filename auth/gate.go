package auth

import (
	"fmt"

	"github.com/princinho/accountsapi/models"
)

// Gate authorizes requests by verified role. It is a pure check: no
// logging, no retries, no state. Callers at the HTTP boundary must collapse
// every failure into a single generic denial so clients cannot tell a
// missing token from a bad one or an insufficient role.
type Gate struct {
	tokens *TokenService
}

func NewGate(tokens *TokenService) *Gate {
	return &Gate{tokens: tokens}
}

// Authorize verifies credential and requires a role of at least required.
// An absent or unverifiable credential fails with ErrUnauthenticated, a
// valid credential with an insufficient role fails with ErrUnauthorized.
func (g *Gate) Authorize(credential string, required models.Role) (*SessionClaim, error) {
	if credential == "" {
		return nil, fmt.Errorf("no credential presented: %w", ErrUnauthenticated)
	}

	claim, err := g.tokens.Verify(credential)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrUnauthenticated)
	}

	if !claim.Role.Meets(required) {
		return nil, fmt.Errorf("role %q below required %q: %w", claim.Role, required, ErrUnauthorized)
	}
	return claim, nil
}
