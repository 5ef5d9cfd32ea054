// Package client talks to the item API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"todo-api/internal/config"
	"todo-api/internal/domain"
	"todo-api/internal/errors"
	"todo-api/internal/logging"
)

// Config is everything a Client needs. There are no package-level defaults;
// zero values fall back to the settings noted on each field.
type Config struct {
	// BaseURL is the service root, e.g. http://localhost:8080. Required.
	BaseURL string
	// Timeout bounds each request. Defaults to 10s; ignored when HTTPClient is set.
	Timeout time.Duration
	// Logger receives one line per failed call. Defaults to discarding.
	Logger *slog.Logger
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// ConfigFromApp builds a client Config from the application configuration
func ConfigFromApp(cfg *config.Config, logger *slog.Logger) Config {
	return Config{
		BaseURL: cfg.Client.ServerURL,
		Timeout: cfg.Client.Timeout,
		Logger:  logger,
	}
}

// APIError is returned for any non-2xx response
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError for a 404 response
func IsNotFound(err error) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client calls the item API. It never retries; every failure is logged and
// then returned to the caller.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

// New validates cfg and returns a ready Client
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.NewInvalidInputError("base_url", cfg.BaseURL, "cannot be empty")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.NewInvalidInputError("base_url", cfg.BaseURL, "must be an absolute http(s) URL")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Client{baseURL: base, http: httpClient, logger: logger}, nil
}

// itemBody is the request body of create and update calls
type itemBody struct {
	Name       string `json:"name"`
	IsComplete bool   `json:"isComplete"`
}

// ListItems fetches every item
func (c *Client) ListItems(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	if err := c.do(ctx, http.MethodGet, "/items", nil, http.StatusOK, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

// GetItem fetches one item
func (c *Client) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	if err := c.do(ctx, http.MethodGet, itemPath(id), nil, http.StatusOK, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// AddItem creates a new incomplete item
func (c *Client) AddItem(ctx context.Context, name string) (*domain.Item, error) {
	var item domain.Item
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/items", body, http.StatusCreated, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem overwrites the name and completion flag of an item
func (c *Client) UpdateItem(ctx context.Context, id int64, name string, isComplete bool) (*domain.Item, error) {
	var item domain.Item
	body := itemBody{Name: name, IsComplete: isComplete}
	if err := c.do(ctx, http.MethodPut, itemPath(id), body, http.StatusOK, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// SetCompleted flips the completion flag, resending the item's current name
// since the service overwrites both fields.
func (c *Client) SetCompleted(ctx context.Context, item domain.Item, isComplete bool) (*domain.Item, error) {
	return c.UpdateItem(ctx, item.ID, item.Name, isComplete)
}

// DeleteItem removes an item
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath(id), nil, http.StatusNoContent, nil)
}

func itemPath(id int64) string {
	return "/items/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, in any, want int, out any) error {
	target := c.baseURL.String() + path

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.NewInvalidInputError("body", in, err.Error())
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return c.fail(method, target, errors.NewTransportError(method, target, err))
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(method, target, errors.NewTransportError(method, target, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(method, target, decodeAPIError(resp))
	}
	if resp.StatusCode != want {
		c.logger.Warn("unexpected success status",
			"method", method, "url", target, "status", resp.StatusCode, "want", want)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(method, target, errors.NewTransportError(method, target, fmt.Errorf("decode response: %w", err)))
	}
	return nil
}

// fail logs a failed call and hands the error back unchanged.
func (c *Client) fail(method, target string, err error) error {
	attrs := []any{"method", method, "url", target, "error", err}
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		attrs = append(attrs, "status", apiErr.StatusCode)
	}
	c.logger.Error("api request failed", attrs...)
	return err
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var payload struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Error
		return apiErr
	}

	if msg := strings.TrimSpace(string(data)); msg != "" {
		apiErr.Message = msg
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
