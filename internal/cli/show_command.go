package cli

import (
	"context"

	"todo-api/internal/errors"
)

// ShowCommand prints a single item
type ShowCommand struct {
	app *App
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app}
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("args", args, "usage: todo show <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	item, err := c.app.client.GetItem(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("show item", err)
	}
	c.app.printItem(*item)
	return nil
}
