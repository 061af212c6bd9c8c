package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/spiceshop/storefront-go/pkg/config"
	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/logger"
)

var (
	errBaseURLRequired = errors.New("backend base url is required")
	errLoggerRequired  = errors.New("api logger is required")
)

// TokenSource yields the admin bearer token, or "" when no admin session is
// active. Customer auth rides on the cookie jar instead.
type TokenSource interface {
	AdminToken() string
}

// Client is the single typed gateway to the storefront backend. Every page's
// ad hoc fetch wrapper collapses into this one request path: JSON in, JSON
// out, cookies carried, errors normalized to pkg/errors codes.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *logger.Logger
	tokens  TokenSource
}

// NewClient builds the backend client. The cookie jar is what the browser's
// credentials:'include' becomes here; customer sessions live in it.
func NewClient(cfg config.BackendConfig, logg *logger.Logger, tokens TokenSource) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	base := cfg.BaseURL()
	if base == "" {
		return nil, errBaseURLRequired
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	return &Client{
		baseURL: base,
		httpc: &http.Client{
			Jar:     jar,
			Timeout: cfg.HTTPTimeout,
		},
		logger: logg,
		tokens: tokens,
	}, nil
}

// BaseURL reports the configured backend root.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}

type requestOptions struct {
	admin bool
	query url.Values
}

type requestOption func(*requestOptions)

// asAdmin attaches the admin bearer token to the request.
func asAdmin() requestOption {
	return func(o *requestOptions) { o.admin = true }
}

func withQuery(q url.Values) requestOption {
	return func(o *requestOptions) { o.query = q }
}

// backendEnvelope is the error body shape the backend uses for non-2xx
// responses. Anything else degrades to a synthesized status message.
type backendEnvelope struct {
	Message string `json:"message"`
}

// do runs one request. Context cancellation propagates into the transport,
// so an abandoned caller aborts its in-flight request instead of leaking it.
func (c *Client) do(ctx context.Context, method, path string, body, dest any, opts ...requestOption) error {
	options := requestOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	ctx = c.logger.WithRequestID(ctx, uuid.NewString())
	ctx = c.logger.WithEndpoint(ctx, method, path)

	endpoint := c.baseURL + path
	if len(options.query) > 0 {
		endpoint += "?" + options.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if options.admin {
		token := ""
		if c.tokens != nil {
			token = strings.TrimSpace(c.tokens.AdminToken())
		}
		if token == "" {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "admin session required")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug(ctx, "backend request")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Error(ctx, "backend unreachable", err)
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "request failed")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(ctx, resp)
	}

	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		c.logger.Error(ctx, "decode response", err)
		return pkgerrors.Wrap(pkgerrors.CodeDecode, err, "unexpected data format")
	}
	return nil
}

func (c *Client) errorFromResponse(ctx context.Context, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var envelope backendEnvelope
	message := ""
	if json.Unmarshal(raw, &envelope) == nil {
		message = strings.TrimSpace(envelope.Message)
	}

	err := pkgerrors.FromStatus(resp.StatusCode, message)
	c.logger.Warn(ctx, fmt.Sprintf("backend rejected request: %s", err.Message()))
	return err
}
