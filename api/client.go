package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/jrsteele09/rental-portal/sessions"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

// Client is a thin wrapper over the REST backend. The zero-token client can only
// reach public endpoints; WithTokens returns a client that presents a bearer token.
type Client struct {
	rest    *resty.Client
	baseURL string
	timeout time.Duration
}

// New creates a client for baseURL. A zero timeout leaves the http client default.
func New(baseURL string, timeout time.Duration) *Client {
	return newClient(&http.Client{}, baseURL, timeout)
}

func newClient(httpClient *http.Client, baseURL string, timeout time.Duration) *Client {
	rest := resty.NewWithClient(httpClient).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		rest.SetTimeout(timeout)
	}
	return &Client{rest: rest, baseURL: baseURL, timeout: timeout}
}

// WithTokens returns a client whose requests carry the access token as a bearer credential
func (c *Client) WithTokens(ctx context.Context, tokens sessions.Tokens) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tokens.AccessToken, TokenType: "Bearer"})
	return newClient(oauth2.NewClient(ctx, src), c.baseURL, c.timeout)
}

func (c *Client) Auth() *AuthService {
	return &AuthService{c: c}
}

func (c *Client) Profile() *ProfileService {
	return &ProfileService{c: c}
}

func (c *Client) Listings() *ListingService {
	return &ListingService{res: resource[Listing, ListingInput]{c: c, path: "/v1/listings"}}
}

func (c *Client) AdminUsers() *AdminUserService {
	return &AdminUserService{res: resource[AdminUser, AdminUserInput]{c: c, path: "/v1/admin/users"}}
}

func (c *Client) News() *NewsService {
	return &NewsService{res: resource[NewsArticle, NewsInput]{c: c, path: "/v1/news"}}
}

func (c *Client) Memberships() *MembershipService {
	return &MembershipService{c: c}
}

func (c *Client) Reports() *ReportService {
	return &ReportService{c: c}
}

// do executes a request and decodes the response into out. Bodies wrapped in a
// top level "data" member are unwrapped first.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req := c.rest.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", perrors.ErrNetwork, method, path, err)
	}
	if resp.IsError() {
		return newError(method, path, resp.StatusCode(), resp.Body())
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(unwrap(resp.Body()), out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, path)
	}
	return nil
}

// raw executes a request and returns the unwrapped response body
func (c *Client) raw(ctx context.Context, method, path string, body any) (gjson.Result, error) {
	var msg json.RawMessage
	if err := c.do(ctx, method, path, nil, body, &msg); err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(msg), nil
}

func unwrap(body []byte) []byte {
	if data := gjson.GetBytes(body, "data"); data.Exists() && (data.IsObject() || data.IsArray()) {
		return []byte(data.Raw)
	}
	return body
}
