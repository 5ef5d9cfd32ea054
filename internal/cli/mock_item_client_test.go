package cli

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"

	"todo-api/internal/client"
	"todo-api/internal/domain"
)

// mockItemClient implements ItemClient in memory, answering like the service does
type mockItemClient struct {
	items  map[int64]*domain.Item
	nextID int64
}

func newMockItemClient() *mockItemClient {
	return &mockItemClient{items: make(map[int64]*domain.Item), nextID: 1}
}

func notFound() error {
	return &client.APIError{StatusCode: 404, Code: "NOT_FOUND", Message: "item not found"}
}

func (m *mockItemClient) ListItems(ctx context.Context) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *mockItemClient) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, notFound()
	}
	copied := *item
	return &copied, nil
}

func (m *mockItemClient) AddItem(ctx context.Context, name string) (*domain.Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &client.APIError{StatusCode: 400, Code: "VALIDATION_FAILED", Message: "Name is required"}
	}
	item := &domain.Item{ID: m.nextID, Name: name}
	m.items[item.ID] = item
	m.nextID++
	copied := *item
	return &copied, nil
}

func (m *mockItemClient) UpdateItem(ctx context.Context, id int64, name string, isComplete bool) (*domain.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, notFound()
	}
	item.Name = name
	item.IsComplete = isComplete
	copied := *item
	return &copied, nil
}

func (m *mockItemClient) SetCompleted(ctx context.Context, item domain.Item, isComplete bool) (*domain.Item, error) {
	return m.UpdateItem(ctx, item.ID, item.Name, isComplete)
}

func (m *mockItemClient) DeleteItem(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return notFound()
	}
	delete(m.items, id)
	return nil
}

// setupTestApp returns an App over a fresh mock client and its captured output
func setupTestApp(t *testing.T) (*App, *mockItemClient, *bytes.Buffer) {
	t.Helper()
	mock := newMockItemClient()
	var out bytes.Buffer
	return NewApp(mock, &out), mock, &out
}
