package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"task-manager/internal/api"
)

// StorageCommand reports what the local store holds
type StorageCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewStorageCommand creates a new storage command handler
func NewStorageCommand(app *App) *StorageCommand {
	return &StorageCommand{app: app, businessAPI: app.businessAPI}
}

// Execute prints each stored key with its size, then the quota usage
func (c *StorageCommand) Execute(ctx context.Context, args []string) error {
	usage, err := c.businessAPI.GetStorageUsage(ctx)
	if err != nil {
		return NewErrorHandler().Handle("read storage", err)
	}

	st := c.app.styles(ctx)
	now := timeNow()
	for _, entry := range usage.Entries {
		c.app.printf("%-22s %10s  %s\n",
			entry.Key,
			humanize.IBytes(uint64(entry.Size())),
			st.Muted.Render("updated "+humanize.RelTime(entry.UpdatedAt, now, "ago", "from now")),
		)
	}

	if usage.Quota <= 0 {
		c.app.printf("Used %s (no limit)\n", humanize.IBytes(uint64(usage.Used)))
		return nil
	}
	percent := float64(usage.Used) / float64(usage.Quota) * 100
	c.app.printf("Used %s of %s (%s)\n",
		humanize.IBytes(uint64(usage.Used)),
		humanize.IBytes(uint64(usage.Quota)),
		st.Count.Render(fmt.Sprintf("%.1f%%", percent)),
	)
	return nil
}
