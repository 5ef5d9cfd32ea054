package cli

import (
	"context"

	"todo-api/internal/errors"
)

// CompleteCommand marks an item done or not done
type CompleteCommand struct {
	app      *App
	complete bool
}

// NewCompleteCommand creates a handler that sets the completion flag to complete
func NewCompleteCommand(app *App, complete bool) *CompleteCommand {
	return &CompleteCommand{app: app, complete: complete}
}

// Execute runs the done or undo command
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("args", args, "exactly one item id is required")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	operation := "complete item"
	if !c.complete {
		operation = "reopen item"
	}

	// The service overwrites the name too, so send back the current one.
	item, err := c.app.client.GetItem(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle(operation, err)
	}

	updated, err := c.app.client.SetCompleted(ctx, *item, c.complete)
	if err != nil {
		return c.app.errorHandler.Handle(operation, err)
	}
	c.app.printItem(*updated)
	return nil
}
