package transport

import (
	"net/http"
	"os"

	"github.com/adtaxonomy/taxsync/pkg/constants"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication. Unauthenticated access to the
// upstream repository works but is rate limited more aggressively.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {
	// No authentication applied
}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct {
	Token string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// FromEnv returns a bearer authenticator when GITHUB_TOKEN is set and
// NoAuth otherwise. A missing token is never fatal.
func FromEnv() Authenticator {
	if token := os.Getenv(constants.GitHubTokenEnv); token != "" {
		return &BearerAuth{Token: token}
	}
	return &NoAuth{}
}
