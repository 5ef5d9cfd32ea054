package httpapi

import (
	"context"
	"net"
	"time"

	"todo-api/internal/config"
	"todo-api/internal/domain"
)

// stubService answers every call with an empty success
type stubService struct{}

func (stubService) ListItems(context.Context) ([]domain.Item, error) { return []domain.Item{}, nil }
func (stubService) GetItem(_ context.Context, id int64) (*domain.Item, error) {
	return &domain.Item{ID: id}, nil
}
func (stubService) CreateItem(_ context.Context, name string) (*domain.Item, error) {
	return &domain.Item{ID: 1, Name: name}, nil
}
func (stubService) UpdateItem(_ context.Context, id int64, name string, isComplete bool) (*domain.Item, error) {
	return &domain.Item{ID: id, Name: name, IsComplete: isComplete}, nil
}
func (stubService) DeleteItem(context.Context, int64) error { return nil }
func (stubService) Ping(context.Context) error { return nil }

func newLocalListener() (net.Listener, error) {
	return net.Listen("tcp", "127.0.0.1:0")
}

func testServerConfig() config.ServerConfig {
	cfg := config.NewConfig().Server
	cfg.ShutdownTimeout = 2 * time.Second
	return cfg
}
