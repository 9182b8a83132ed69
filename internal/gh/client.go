// Package gh provides the GitHub API client used by the repositories.
// It shapes four REST requests (search, authenticated user, user repositories,
// issue creation) and one GraphQL query (rate limit). There is no retry,
// rate-limit handling or pagination beyond the first page.
package gh

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v82/github"
	"github.com/h0rv/ghbrowse/internal/auth"
	"github.com/machinebox/graphql"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the public GitHub REST API root.
const DefaultBaseURL = "https://api.github.com/"

// Authorization schemes. User endpoints use Bearer, issue creation uses the
// legacy "token" prefix.
const (
	SchemeBearer = "Bearer"
	SchemeToken  = "token"
)

// Options configures a Client.
type Options struct {
	// BaseURL of the REST API. Defaults to DefaultBaseURL.
	BaseURL string
	// Token is the credential injected into authenticated calls. It may be
	// empty, in which case only anonymous search works.
	Token string
	// HTTPClient is the underlying transport. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Client is a GitHub API client.
// Each REST client below carries its own authorization scheme.
type Client struct {
	anon   *github.Client // search, no credentials
	user   *github.Client // Bearer <token>
	issues *github.Client // token <token>
	gql    *graphql.Client
	token  string
}

// New creates a new GitHub client from opts.
func New(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	token := strings.TrimSpace(opts.Token)
	c := &Client{
		anon:  newREST(base, hc, nil),
		token: token,
	}
	if token != "" {
		c.user = newREST(base, hc, &oauth2.Token{AccessToken: token, TokenType: SchemeBearer})
		c.issues = newREST(base, hc, &oauth2.Token{AccessToken: token, TokenType: SchemeToken})
	}

	gqlURL := base.ResolveReference(&url.URL{Path: "graphql"})
	c.gql = graphql.NewClient(gqlURL.String(), graphql.WithHTTPClient(hc))

	return c, nil
}

// HasCredential reports whether authenticated calls can be made.
func (c *Client) HasCredential() bool {
	return c.token != ""
}

// newREST builds a go-github client. A non-nil tok wraps the transport with a
// static oauth2 token source, whose Authorization header is "<TokenType> <AccessToken>".
func newREST(base *url.URL, hc *http.Client, tok *oauth2.Token) *github.Client {
	if tok != nil {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
	}
	client := github.NewClient(hc)
	u := *base
	client.BaseURL = &u
	return client
}

func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme and host required", raw)
	}
	return u, nil
}

// authed returns the client for scheme, or auth.ErrNoCredential when no token is set.
func (c *Client) authed(scheme string) (*github.Client, error) {
	if c.token == "" {
		return nil, auth.ErrNoCredential
	}
	if scheme == SchemeToken {
		return c.issues, nil
	}
	return c.user, nil
}

// makeRequest executes a GraphQL request with authentication.
func (c *Client) makeRequest(ctx context.Context, req *graphql.Request, resp interface{}) error {
	if c.token == "" {
		return auth.ErrNoCredential
	}
	req.Header.Set("Authorization", SchemeBearer+" "+c.token)
	return c.gql.Run(ctx, req, resp)
}
