package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/imamnura/mini-ecommerce-api/models"
)

// DefaultBaseURL is the public demo catalog this storefront proxies.
const DefaultBaseURL = "https://dummyjson.com"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)

// Client talks to the remote catalog/cart/auth service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Products fetches one page of the catalog. A non-empty query routes to the
// search endpoint; the response shape is identical either way.
func (c *Client) Products(ctx context.Context, limit, skip int, query string) (*models.ProductsResponse, error) {
	endpoint := c.baseURL + "/products"
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("skip", strconv.Itoa(skip))
	if query != "" {
		endpoint = c.baseURL + "/products/search"
		params.Set("q", query)
	}

	var out models.ProductsResponse
	if err := c.getJSON(ctx, endpoint+"?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id int) (*models.Product, error) {
	var out models.Product
	if err := c.getJSON(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories returns the catalog's category slugs. The remote service has
// served both plain strings and {slug,name} objects over time; both decode.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, c.baseURL+"/products/categories", &raw); err != nil {
		return nil, err
	}

	var plain []string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain, nil
	}

	var tagged []struct {
		Slug string `json:"slug"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &tagged); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	out := make([]string, 0, len(tagged))
	for _, t := range tagged {
		if t.Slug != "" {
			out = append(out, t.Slug)
		} else {
			out = append(out, t.Name)
		}
	}
	return out, nil
}

// LoginResult is the remote auth response. Newer API versions return the
// token under accessToken, older ones under token.
type LoginResult struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

// BearerToken returns whichever token field the service populated.
func (r *LoginResult) BearerToken() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

// Login exchanges credentials for a session token. A 4xx from the service
// maps to ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, username, password string, expiresInMins int) (*LoginResult, error) {
	payload := map[string]any{
		"username":      username,
		"password":      password,
		"expiresInMins": expiresInMins,
	}
	var out LoginResult
	if err := c.postJSON(ctx, c.baseURL+"/auth/login", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddToCart forwards an add to the remote cart aggregate and returns the raw
// updated aggregate. Callers treat the response as informational.
func (c *Client) AddToCart(ctx context.Context, userID, productID, quantity int) (json.RawMessage, error) {
	payload := map[string]any{
		"userId":   userID,
		"products": []map[string]int{{"id": productID, "quantity": quantity}},
	}
	var raw json.RawMessage
	if err := c.postJSON(ctx, c.baseURL+"/carts/add", payload, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// UserCarts returns the remote cart aggregate for a user, unmodified.
func (c *Client) UserCarts(ctx context.Context, userID int) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, fmt.Sprintf("%s/carts/user/%d", c.baseURL, userID), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
	case res.StatusCode >= 400 && res.StatusCode < 500 && strings.HasSuffix(req.URL.Path, "/auth/login"):
		return ErrInvalidCredentials
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("catalog request failed: %s", res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
