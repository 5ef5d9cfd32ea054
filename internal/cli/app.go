package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"todo-api/internal/domain"
	"todo-api/internal/errors"
)

// ItemClient is the part of the HTTP client the item commands use
type ItemClient interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	AddItem(ctx context.Context, name string) (*domain.Item, error)
	UpdateItem(ctx context.Context, id int64, name string, isComplete bool) (*domain.Item, error)
	SetCompleted(ctx context.Context, item domain.Item, isComplete bool) (*domain.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

// App represents the item commands of the CLI
type App struct {
	client       ItemClient
	out          io.Writer
	errorHandler *ErrorHandler
	registry     *CommandRegistry
}

// NewApp creates a new CLI application instance writing to out
func NewApp(client ItemClient, out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	app := &App{
		client:       client,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes the item command named by args[0]
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

// printItem writes one item per line: id, completion box, name
func (a *App) printItem(item domain.Item) {
	mark := " "
	if item.IsComplete {
		mark = "x"
	}
	fmt.Fprintf(a.out, "%4d [%s] %s\n", item.ID, mark, item)
}

// parseID parses an item id argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("id", arg, "must be a positive integer")
	}
	return id, nil
}
