package main

import (
	"context"
	"fmt"
	"os"

	"task-manager/internal/cli"
	"task-manager/internal/config"
)

func main() {
	factory := NewRepositoryFactory(getEnvironment())
	root := cli.NewRootCommand(config.NewLoader(), factory.AppFactory())

	if err := root.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
