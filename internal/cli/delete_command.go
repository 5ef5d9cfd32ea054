package cli

import (
	"context"
	"fmt"

	"todo-api/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute deletes every item id given
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("args", args, "usage: todo delete <id>...")
	}

	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		if err := c.app.client.DeleteItem(ctx, id); err != nil {
			return c.app.errorHandler.Handle(fmt.Sprintf("delete item %d", id), err)
		}
		fmt.Fprintf(c.app.out, "Deleted item %d\n", id)
	}
	return nil
}
