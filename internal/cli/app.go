package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/errors"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App represents the main CLI application
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	out         io.Writer
	registry    *CommandRegistry
}

// NewApp creates a new CLI application instance with default configuration
func NewApp(businessAPI api.BusinessAPI) *App {
	return NewAppWithConfig(businessAPI, config.NewConfig())
}

// NewAppWithConfig creates a new CLI application instance with dependency injection
func NewAppWithConfig(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		businessAPI: businessAPI,
		config:      cfg,
		out:         os.Stdout,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// SetOutput redirects command output.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Config returns the application configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// styles builds output styles for the stored theme.
func (a *App) styles(ctx context.Context) *Styles {
	return NewStyles(lipgloss.NewRenderer(a.out), a.businessAPI.GetTheme(ctx), a.config.Display.NoColor)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}

	commandName := args[0]
	commandArgs := args[1:]

	return a.registry.Execute(ctx, commandName, commandArgs)
}
