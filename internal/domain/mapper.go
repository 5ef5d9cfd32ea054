package domain

import (
	"todo-api/internal/repository/sqlstore"
)

// ItemMapper handles conversion between domain and database Item models.
type ItemMapper struct{}

// NewItemMapper creates a new ItemMapper instance.
func NewItemMapper() *ItemMapper {
	return &ItemMapper{}
}

// ToDatabase converts a domain Item to a database Item.
func (m *ItemMapper) ToDatabase(domainItem Item) sqlstore.Item {
	return sqlstore.Item{
		ID:         domainItem.ID,
		Name:       domainItem.Name,
		IsComplete: domainItem.IsComplete,
	}
}

// FromDatabase converts a database Item to a domain Item.
func (m *ItemMapper) FromDatabase(dbItem sqlstore.Item) Item {
	return Item{
		ID:         dbItem.ID,
		Name:       dbItem.Name,
		IsComplete: dbItem.IsComplete,
	}
}

// FromDatabaseSlice converts database Items to domain Items. The result is
// never nil so that an empty list encodes as [] rather than null.
func (m *ItemMapper) FromDatabaseSlice(dbItems []*sqlstore.Item) []Item {
	domainItems := make([]Item, 0, len(dbItems))
	for _, item := range dbItems {
		domainItems = append(domainItems, m.FromDatabase(*item))
	}
	return domainItems
}
