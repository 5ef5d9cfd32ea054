package cli

import (
	"context"
	"strings"

	"todo-api/internal/errors"
)

// RenameCommand handles the rename command
type RenameCommand struct {
	app *App
}

// NewRenameCommand creates a new rename command handler
func NewRenameCommand(app *App) *RenameCommand {
	return &RenameCommand{app: app}
}

// Execute renames an item, keeping its completion flag
func (c *RenameCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("args", args, "usage: todo rename <id> <name>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	item, err := c.app.client.GetItem(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("rename item", err)
	}

	updated, err := c.app.client.UpdateItem(ctx, id, strings.Join(args[1:], " "), item.IsComplete)
	if err != nil {
		return c.app.errorHandler.Handle("rename item", err)
	}
	c.app.printItem(*updated)
	return nil
}
