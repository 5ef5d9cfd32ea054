package services

import (
	"context"

	"todo-api/internal/domain"
)

// ItemService handles the to-do item lifecycle
type ItemService interface {
	// Item CRUD operations
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	CreateItem(ctx context.Context, name string) (*domain.Item, error)
	UpdateItem(ctx context.Context, id int64, name string, isComplete bool) (*domain.Item, error)
	DeleteItem(ctx context.Context, id int64) error

	// Health
	Ping(ctx context.Context) error
}
