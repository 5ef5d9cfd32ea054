package cli

import (
	"context"
	"fmt"
	"strings"

	"todo-api/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute creates an item named by the joined arguments
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("args", args, "usage: todo add <name>")
	}

	item, err := c.app.client.AddItem(ctx, strings.Join(args, " "))
	if err != nil {
		return c.app.errorHandler.Handle("add item", err)
	}

	fmt.Fprint(c.app.out, "Added: ")
	c.app.printItem(*item)
	return nil
}
