package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/common"
	"github.com/dmitrijs2005/promptmaster/internal/logging"
	"github.com/google/uuid"
)

const (
	pathLogin     = "/api/v1/auth/login"
	pathRegister  = "/api/v1/auth/register"
	pathLogout    = "/api/v1/auth/logout"
	pathMe        = "/api/v1/auth/me"
	pathModels    = "/api/v1/models/models"
	pathTemplates = "/api/v1/templates/"
	pathHistory   = "/api/v1/prompts/history"
	pathOptimize  = "/api/v1/prompts/optimize"
	pathHealth    = "/api/v1/health"
)

// maxErrorBody bounds how much of an error response is read for its detail.
const maxErrorBody = 64 << 10

// HTTPClient implements Client over the REST API.
type HTTPClient struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func(ctx context.Context)
	logger         logging.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// WithUnauthorizedHook sets a function called on every 401 response before
// ErrUnauthorized is returned.
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.httpClient.Timeout = d }
}

func NewHTTPClient(baseURL string, logger logging.Logger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenSource binds the token source after construction. The CLI needs it
// because the auth store and the client reference each other.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// SetUnauthorizedHook binds the 401 hook after construction.
func (c *HTTPClient) SetUnauthorizedHook(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	var s models.Session
	if err := c.do(ctx, http.MethodPost, pathLogin, creds, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.Session, error) {
	var s models.Session
	if err := c.do(ctx, http.MethodPost, pathRegister, reg, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, pathLogout, nil, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Session, error) {
	var s models.Session
	if err := c.do(ctx, http.MethodGet, pathMe, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Models(ctx context.Context) ([]models.Model, error) {
	var out []models.Model
	if err := c.do(ctx, http.MethodGet, pathModels, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Templates(ctx context.Context) ([]models.Template, error) {
	var out []models.Template
	if err := c.do(ctx, http.MethodGet, pathTemplates, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Template(ctx context.Context, id int64) (*models.Template, error) {
	var t models.Template
	if err := c.do(ctx, http.MethodGet, templatePath(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) CreateTemplate(ctx context.Context, in models.TemplateInput) (*models.Template, error) {
	var t models.Template
	if err := c.do(ctx, http.MethodPost, pathTemplates, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) UpdateTemplate(ctx context.Context, id int64, in models.TemplateInput) (*models.Template, error) {
	var t models.Template
	if err := c.do(ctx, http.MethodPut, templatePath(id), in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) DeleteTemplate(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, templatePath(id), nil, nil)
}

func (c *HTTPClient) History(ctx context.Context) ([]models.HistoryEntry, error) {
	var out []models.HistoryEntry
	if err := c.do(ctx, http.MethodGet, pathHistory, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Optimize(ctx context.Context, req models.OptimizeRequest) (*models.OptimizeResult, error) {
	var res models.OptimizeResult
	if err := c.do(ctx, http.MethodPost, pathOptimize, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var res struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, pathHealth, nil, &res); err != nil {
		return err
	}
	if !strings.EqualFold(res.Status, "ok") {
		return ErrUnavailable
	}
	return nil
}

func templatePath(id int64) string {
	return pathTemplates + strconv.FormatInt(id, 10)
}

// do sends one request. body is JSON-encoded when non-nil; out is decoded
// from a 2xx response when non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("build url for %s: %w", path, err)
	}
	// url.JoinPath drops the trailing slash the collection routes need.
	if strings.HasSuffix(path, "/") && !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}
	apiErr.Detail = errorDetail(raw)
	return apiErr
}

// errorDetail extracts the "detail" field of an error body. Validation
// errors carry a structured detail, which is kept as compact JSON.
func errorDetail(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return strings.TrimSpace(string(raw))
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, body.Detail); err != nil {
		return string(body.Detail)
	}
	return buf.String()
}

var _ Client = (*HTTPClient)(nil)

// IsUnavailable reports whether err is a transport failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
