package sqlstore

// Item represents a row of the items table
type Item struct {
	ID         int64
	Name       string
	IsComplete bool
}
