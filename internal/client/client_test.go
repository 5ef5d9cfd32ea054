package client

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/config"
	"todo-api/internal/domain"
	"todo-api/internal/errors"
	"todo-api/internal/httpapi"
	"todo-api/internal/repository/sqlstore"
	"todo-api/internal/services"
)

func newTestClient(t *testing.T) (*Client, *bytes.Buffer) {
	t.Helper()

	ctx := context.Background()
	repo, err := sqlstore.New(ctx, sqlstore.Options{Driver: sqlstore.DialectSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.Migrate(ctx))

	ts := httptest.NewServer(httpapi.NewServer(services.NewItemService(repo, nil), httpapi.Options{}))
	t.Cleanup(ts.Close)

	var logs bytes.Buffer
	c, err := New(Config{
		BaseURL: ts.URL + "/",
		Timeout: 5 * time.Second,
		Logger:  slog.New(slog.NewTextHandler(&logs, nil)),
	})
	require.NoError(t, err)
	return c, &logs
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{"empty", ""},
		{"relative", "/items"},
		{"no scheme", "localhost:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Config{BaseURL: tt.baseURL})
			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
		})
	}

	c, err := New(Config{BaseURL: "http://localhost:8080"})
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, c.http.Timeout)
}

func TestConfigFromApp(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Client.ServerURL = "http://todo.internal:9000"
	cfg.Client.Timeout = 3 * time.Second

	c := ConfigFromApp(cfg, nil)
	assert.Equal(t, "http://todo.internal:9000", c.BaseURL)
	assert.Equal(t, 3*time.Second, c.Timeout)
}

func TestClient_ItemLifecycle(t *testing.T) {
	c, logs := newTestClient(t)
	ctx := context.Background()

	items, err := c.ListItems(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	item, err := c.AddItem(ctx, "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, domain.Item{ID: 1, Name: "Buy milk"}, *item)

	done, err := c.SetCompleted(ctx, *item, true)
	require.NoError(t, err)
	assert.Equal(t, domain.Item{ID: 1, Name: "Buy milk", IsComplete: true}, *done)

	renamed, err := c.UpdateItem(ctx, 1, "Buy oat milk", true)
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", renamed.Name)

	got, err := c.GetItem(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, *renamed, *got)

	require.NoError(t, c.DeleteItem(ctx, 1))

	items, err = c.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, logs.String(), "successful calls are not logged")
}

func TestClient_APIErrors(t *testing.T) {
	c, logs := newTestClient(t)
	ctx := context.Background()

	_, err := c.AddItem(ctx, "  ")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", apiErr.Code)
	assert.Equal(t, "Name is required", apiErr.Message)

	err = c.DeleteItem(ctx, 42)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = c.SetCompleted(ctx, domain.Item{ID: 42, Name: "ghost"}, true)
	assert.True(t, IsNotFound(err))

	assert.Contains(t, logs.String(), "api request failed")
	assert.Contains(t, logs.String(), "status=404")
}

func TestClient_NoRetry(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "maintenance")
	}))
	defer ts.Close()

	c, err := New(Config{BaseURL: ts.URL})
	require.NoError(t, err)

	_, err = c.ListItems(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "maintenance", apiErr.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	var logs bytes.Buffer
	c, err := New(Config{BaseURL: url, Logger: slog.New(slog.NewTextHandler(&logs, nil))})
	require.NoError(t, err)

	_, err = c.ListItems(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTransport))
	assert.Contains(t, logs.String(), "api request failed")
}

func TestClient_MalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, "{not json")
	}))
	defer ts.Close()

	c, err := New(Config{BaseURL: ts.URL})
	require.NoError(t, err)

	_, err = c.GetItem(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTransport))
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "api error 404 (NOT_FOUND): item not found: 3",
		(&APIError{StatusCode: 404, Code: "NOT_FOUND", Message: "item not found: 3"}).Error())
	assert.Equal(t, "api error 502: Bad Gateway",
		(&APIError{StatusCode: 502, Message: "Bad Gateway"}).Error())
}
