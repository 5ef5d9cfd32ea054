package domain

// Item represents a to-do entry in the domain model.
// This is a pure domain model without database-specific concerns.
type Item struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	IsComplete bool   `json:"isComplete"`
}

// NewItem creates a new incomplete Item with the given name.
func NewItem(name string) Item {
	return Item{
		Name: name,
	}
}

// String returns the item name for display purposes.
func (i Item) String() string {
	return i.Name
}
