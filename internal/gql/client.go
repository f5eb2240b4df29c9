package gql

//go:generate go run github.com/Khan/genqlient@v0.8.1 genqlient.yaml

import (
	"net/http"
	"time"

	genqlientgraphql "github.com/Khan/genqlient/graphql"
)

const defaultTimeout = 15 * time.Second

func NewClient(endpoint string, token string, timeout time.Duration) genqlientgraphql.Client {
	return genqlientgraphql.NewClient(endpoint, NewHTTPClient(token, timeout))
}

// NewHTTPClient returns a client that sends token as a bearer credential on
// every request. An empty token sends no Authorization header.
func NewHTTPClient(token string, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &authTransport{
			base:  http.DefaultTransport,
			token: token,
		},
	}
}

type authTransport struct {
	base  http.RoundTripper
	token string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token == "" {
		return t.base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(clone)
}
