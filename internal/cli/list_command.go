package cli

import (
	"context"
	"fmt"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute prints every item followed by a completion summary
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	items, err := c.app.client.ListItems(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list items", err)
	}

	if len(items) == 0 {
		fmt.Fprintln(c.app.out, "No items found")
		return nil
	}

	done := 0
	for _, item := range items {
		c.app.printItem(item)
		if item.IsComplete {
			done++
		}
	}
	fmt.Fprintf(c.app.out, "%d items, %d done\n", len(items), done)
	return nil
}
