package services

import (
	"context"

	"todo-api/internal/domain"
	"todo-api/internal/repository/sqlstore"
	"todo-api/internal/validation"
)

// itemServiceImpl implements the ItemService interface
type itemServiceImpl struct {
	repo      sqlstore.Repository
	mapper    *domain.ItemMapper
	validator *validation.ItemValidator
}

// NewItemService creates a new ItemService instance
func NewItemService(repo sqlstore.Repository, validator *validation.ItemValidator) ItemService {
	if validator == nil {
		validator = validation.NewItemValidator()
	}
	return &itemServiceImpl{
		repo:      repo,
		mapper:    domain.NewItemMapper(),
		validator: validator,
	}
}

// ListItems returns every stored item, oldest first
func (s *itemServiceImpl) ListItems(ctx context.Context) ([]domain.Item, error) {
	dbItems, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.FromDatabaseSlice(dbItems), nil
}

// GetItem retrieves an item by its ID
func (s *itemServiceImpl) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}

	dbItem, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	item := s.mapper.FromDatabase(*dbItem)
	return &item, nil
}

// CreateItem stores a new incomplete item
func (s *itemServiceImpl) CreateItem(ctx context.Context, name string) (*domain.Item, error) {
	// The name is stored exactly as given; only blank names are rejected.
	if err := s.validator.ValidateName(name); err != nil {
		return nil, err
	}

	dbItem := s.mapper.ToDatabase(domain.NewItem(name))
	if err := s.repo.CreateItem(ctx, &dbItem); err != nil {
		return nil, err
	}

	item := s.mapper.FromDatabase(dbItem)
	return &item, nil
}

// UpdateItem overwrites both the name and the completion flag of an item
func (s *itemServiceImpl) UpdateItem(ctx context.Context, id int64, name string, isComplete bool) (*domain.Item, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateName(name); err != nil {
		return nil, err
	}

	// Check if item exists
	if _, err := s.repo.GetItem(ctx, id); err != nil {
		return nil, err
	}

	dbItem := s.mapper.ToDatabase(domain.Item{ID: id, Name: name, IsComplete: isComplete})
	if err := s.repo.UpdateItem(ctx, &dbItem); err != nil {
		return nil, err
	}

	item := s.mapper.FromDatabase(dbItem)
	return &item, nil
}

// DeleteItem removes an item
func (s *itemServiceImpl) DeleteItem(ctx context.Context, id int64) error {
	if err := s.validator.ValidateID(id); err != nil {
		return err
	}

	// Check if item exists
	if _, err := s.repo.GetItem(ctx, id); err != nil {
		return err
	}

	return s.repo.DeleteItem(ctx, id)
}

// Ping reports whether the backing store is reachable
func (s *itemServiceImpl) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
