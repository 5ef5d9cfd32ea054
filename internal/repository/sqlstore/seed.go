package sqlstore

import (
	"context"
)

// DefaultSeedItems are inserted into an empty store on first start-up.
var DefaultSeedItems = []Item{
	{Name: "Task 1", IsComplete: false},
	{Name: "Task 2", IsComplete: true},
}

// Seed inserts items only when the store is empty, so running it on every
// start-up is safe. It reports how many items were inserted.
func Seed(ctx context.Context, repo Repository, items []Item) (int, error) {
	count, err := repo.CountItems(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for i := range items {
		item := items[i]
		if err := repo.CreateItem(ctx, &item); err != nil {
			return i, err
		}
	}
	return len(items), nil
}
