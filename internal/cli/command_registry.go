package cli

import (
	"context"
	"sort"
	"strings"

	"task-manager/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	// Register all commands
	registry.Register("add", NewAddCommand(app))
	registry.Register("ls", NewListCommand(app))
	registry.Register("show", NewShowCommand(app))
	registry.Register("edit", NewEditCommand(app))
	registry.Register("done", NewDoneCommand(app))
	registry.Register("status", NewStatusCommand(app))
	registry.Register("rm", NewDeleteCommand(app))
	registry.Register("reorder", NewReorderCommand(app))
	registry.Register("lists", NewListsCommand(app))
	registry.Register("dashboard", NewDashboardCommand(app))
	registry.Register("calendar", NewCalendarCommand(app))
	registry.Register("theme", NewThemeCommand(app))
	registry.Register("storage", NewStorageCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Lookup returns the command registered under name.
func (r *CommandRegistry) Lookup(name string) (Command, bool) {
	command, ok := r.commands[name]
	return command, ok
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return "usage: tm <command> [args]; commands: " + strings.Join(names, ", ")
}
