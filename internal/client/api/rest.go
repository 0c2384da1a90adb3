package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcom-mall/mallcli/internal/client/models"
	"github.com/mcom-mall/mallcli/internal/client/session"
	"github.com/mcom-mall/mallcli/internal/logging"
)

// RESTClient is the concrete Client bound to one base URL, e.g.
// "https://mcom-mall-rest.vercel.app/api/v1".
type RESTClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// Options configures a RESTClient.
type Options struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string

	// Sessions supplies the bearer token for outgoing requests and is
	// cleared on authorization failures.
	Sessions session.Store

	// OnAuthExpired is invoked (possibly from any goroutine issuing a
	// request) after a 401 has cleared the session store. Optional.
	OnAuthExpired func()

	// Timeout bounds each request end to end. Zero means no client-side
	// timeout beyond the caller's context.
	Timeout time.Duration

	Log logging.Logger
}

// New builds a RESTClient with the auth interceptors installed.
func New(opts Options) *RESTClient {
	log := opts.Log
	if log == nil {
		log = logging.NewNop()
	}

	return &RESTClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &authTransport{
				base:          http.DefaultTransport,
				sessions:      opts.Sessions,
				onAuthExpired: opts.OnAuthExpired,
				log:           log,
			},
		},
		log: log,
	}
}

// SignUp calls POST /users/create and returns the raw payload for
// normalization.
func (c *RESTClient) SignUp(ctx context.Context, req models.SignUpRequest) (models.RawAuthPayload, error) {
	var raw models.RawAuthPayload
	if err := c.do(ctx, http.MethodPost, "/users/create", nil, req, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// SignIn calls POST /auth. The role field is forced to "customer"; the
// backend rejects logins without it.
func (c *RESTClient) SignIn(ctx context.Context, req models.SignInRequest) (models.RawAuthPayload, error) {
	req.Role = "customer"

	var raw models.RawAuthPayload
	if err := c.do(ctx, http.MethodPost, "/auth", nil, req, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Search calls GET /search with q, page and limit in the query string.
func (c *RESTClient) Search(ctx context.Context, query string, page, limit int) (*models.SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var resp models.SearchResponse
	if err := c.do(ctx, http.MethodGet, "/search", params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ping probes reachability of the API host with a cheap HEAD request.
func (c *RESTClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return ErrUnavailable
	}
	return nil
}

// Close releases idle connections held by the underlying transport.
func (c *RESTClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do issues one JSON request and decodes the response into out (when out is
// non-nil). Non-2xx statuses become *APIError; transport failures wrap
// ErrUnavailable.
func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.decodeError(ctx, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// decodeError builds the user-facing error for a non-2xx response: the
// body's message or error field when present, else the status table default.
func (c *RESTClient) decodeError(ctx context.Context, resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: MessageForStatus(resp.StatusCode)}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(data) > 0 {
		if err := json.Unmarshal(data, &body); err == nil {
			if body.Message != "" {
				apiErr.Message = body.Message
			} else if body.Error != "" {
				apiErr.Message = body.Error
			}
		}
	}

	c.log.Debug(ctx, "api error response",
		"status", resp.StatusCode,
		"message", apiErr.Message,
	)
	return apiErr
}
