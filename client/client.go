// Package client talks to a running Site API over HTTP.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pagecraft/models"

	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout = 10 * time.Second
	TokenHeader    = "x-admin-token"
)

var ErrEmptyToken = errors.New("login returned no token")

// APIError is a non-200 answer from the Site API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("site api: status %d", e.Status)
	}
	return fmt.Sprintf("site api: status %d: %s", e.Status, e.Message)
}

// Client is a Site API client. It satisfies editor.SiteAPI.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	Header  string
	Timeout time.Duration
}

// NewClient creates a client for the API rooted at baseURL. A nil httpClient
// uses a fresh fasthttp.Client.
func NewClient(baseURL string, httpClient *fasthttp.Client) *Client {
	if httpClient == nil {
		httpClient = &fasthttp.Client{Name: "pagecraft"}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		Header:  TokenHeader,
		Timeout: defaultTimeout,
	}
}

// Login exchanges credentials for a token
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, fasthttp.MethodPost, "/api/login", "", body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", ErrEmptyToken
	}
	return out.Token, nil
}

// FetchSite loads the current document
func (c *Client) FetchSite(ctx context.Context) (models.SiteDocument, error) {
	var doc models.SiteDocument
	if err := c.do(ctx, fasthttp.MethodGet, "/api/site", "", nil, &doc); err != nil {
		return models.SiteDocument{}, err
	}
	return doc.Normalize(), nil
}

// SaveSite replaces the stored document
func (c *Client) SaveSite(ctx context.Context, token string, doc models.SiteDocument) error {
	doc = doc.Normalize()
	var out struct {
		Success bool `json:"success"`
	}
	if err := c.do(ctx, fasthttp.MethodPost, "/api/site", token, doc, &out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("site api: save not acknowledged")
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	if token != "" {
		req.Header.Set(c.Header, token)
	}
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(encoded)
	}

	deadline := time.Now().Add(c.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode()}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(resp.Body(), &payload) == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
