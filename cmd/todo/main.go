package main

import (
	"context"
	"fmt"
	"os"

	"todo-api/internal/cli"
)

func main() {
	root := cli.NewRootCommand(cli.Options{})

	if err := root.Execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
