package cli

import (
	"context"

	"task-manager/internal/api"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// ThemeCommand shows or changes the display theme
type ThemeCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewThemeCommand creates a new theme command handler
func NewThemeCommand(app *App) *ThemeCommand {
	return &ThemeCommand{app: app, businessAPI: app.businessAPI}
}

// Execute prints the theme, or sets it to "light", "dark" or "toggle"
func (c *ThemeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.app.println(c.businessAPI.GetTheme(ctx))
		return nil
	}
	if len(args) > 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: tm theme [light|dark|toggle]")
	}

	if args[0] == "toggle" {
		theme, err := c.businessAPI.ToggleTheme(ctx)
		if err != nil {
			return NewErrorHandler().Handle("toggle theme", err)
		}
		c.app.printf("Theme set to %s\n", theme)
		return nil
	}

	theme := domain.Theme(args[0])
	if err := c.businessAPI.SetTheme(ctx, theme); err != nil {
		return NewErrorHandler().Handle("set theme", err)
	}
	c.app.printf("Theme set to %s\n", theme)
	return nil
}
