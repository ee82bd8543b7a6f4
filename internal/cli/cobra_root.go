package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/validation"
)

// AppFactory builds the App once configuration is known. The returned
// function releases its resources.
type AppFactory func(ctx context.Context, cfg *config.Config) (*App, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	factory AppFactory
	out     io.Writer

	app    *App
	config *config.Config
	close  func() error
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, factory AppFactory) *RootCommand {
	root := &RootCommand{
		loader:  loader,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "tm",
		Short: "A command-line task manager",
		Long: `Task Manager (tm) keeps tasks and lists in a local store.

FEATURES:
  • Create, edit, complete and delete tasks with priority, tags and due dates
  • Group tasks into lists and set their manual order
  • Filter and sort tasks by status, priority, tags, list and text
  • Dashboard with completion metrics, high-priority and overdue tasks
  • Month calendar of due dates
  • Light and dark output themes

EXAMPLES:
  tm add "Write report" --priority high --due 2024-06-20 --tags work,q2
  tm ls --status todo --sort due
  tm done 3f2a
  tm lists add Work --color "#3b82f6"
  tm reorder Work 3f2a 91bc
  tm dashboard
  tm calendar --next

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  Config file: $TM_CONFIG or ~/.tm/config.yaml

  Storage Configuration:
    TM_STORAGE_DIR                         Store directory (default: ~/.tm)
    TM_STORAGE_FILENAME                    Store filename (default: tm.db)
    TM_STORAGE_QUOTA                       Store quota (default: 5 MiB)
    TM_STORAGE_QUERY_TIMEOUT               Read timeout (default: 10s)
    TM_STORAGE_WRITE_TIMEOUT               Write timeout (default: 5s)

  Display Configuration:
    TM_DISPLAY_DATE_LAYOUT                 Date layout (default: 2006-01-02)
    TM_DISPLAY_DASHBOARD_LIMIT             Dashboard list length (default: 5)
    TM_DISPLAY_NO_COLOR                    Disable colours (default: false)
    TM_CALENDAR_WEEK_START                 First day of the week (default: sunday)

  Application Configuration:
    TM_APP_TIMEOUT                         Command timeout (default: 60s)
    TM_APP_VERBOSE                         Enable debug output (default: false)

GETTING HELP:
  tm [command] --help                      # Get help for any specific command
  tm completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.teardown()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// SetOutput redirects command output
func (r *RootCommand) SetOutput(w io.Writer) {
	r.out = w
	r.cmd.SetOut(w)
	r.cmd.SetErr(w)
}

// SetArgs sets the arguments parsed by Execute
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if closeErr := r.teardown(); err == nil {
		err = closeErr
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides TM_CONFIG)")

	// Storage configuration
	flags.String("storage-dir", "", "Store directory (overrides TM_STORAGE_DIR)")
	flags.String("storage-file", "", "Store filename (overrides TM_STORAGE_FILENAME)")
	flags.String("storage-quota", "", "Store quota such as 5MiB (overrides TM_STORAGE_QUOTA)")
	flags.Duration("query-timeout", 0, "Read timeout (overrides TM_STORAGE_QUERY_TIMEOUT)")
	flags.Duration("write-timeout", 0, "Write timeout (overrides TM_STORAGE_WRITE_TIMEOUT)")

	// Display configuration
	flags.String("week-start", "", "First day of the week (overrides TM_CALENDAR_WEEK_START)")
	flags.String("date-layout", "", "Date layout (overrides TM_DISPLAY_DATE_LAYOUT)")
	flags.Int("dashboard-limit", 0, "Dashboard list length (overrides TM_DISPLAY_DASHBOARD_LIMIT)")
	flags.Bool("no-color", false, "Disable colours (overrides TM_DISPLAY_NO_COLOR)")

	// Application configuration
	flags.Duration("timeout", 0, "Command timeout (overrides TM_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable debug output (overrides TM_APP_VERBOSE)")
}

// getConfigOverrides collects the global flags the user actually set
func (r *RootCommand) getConfigOverrides() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	dur := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}
	boolean := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}

	overrides.ConfigFile = str("config")
	overrides.StorageDir = str("storage-dir")
	overrides.StorageFilename = str("storage-file")
	overrides.StorageQuota = str("storage-quota")
	overrides.QueryTimeout = dur("query-timeout")
	overrides.WriteTimeout = dur("write-timeout")
	overrides.WeekStart = str("week-start")
	overrides.DateLayout = str("date-layout")
	if flags.Changed("dashboard-limit") {
		v, _ := flags.GetInt("dashboard-limit")
		overrides.DashboardLimit = &v
	}
	overrides.NoColor = boolean("no-color")
	overrides.Timeout = dur("timeout")
	overrides.Verbose = boolean("verbose")
	return overrides
}

// setup loads configuration and builds the App before any command runs
func (r *RootCommand) setup(ctx context.Context) error {
	if r.app != nil {
		return nil
	}

	cfg, err := r.loader.LoadWithOverrides(r.getConfigOverrides())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Application.Verbose {
		logging.SetDebug(true)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	app, closeFn, err := r.factory(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	if r.out != nil {
		app.SetOutput(r.out)
	}

	r.app = app
	r.config = cfg
	r.close = closeFn
	return nil
}

// teardown releases the App so the next Execute builds a fresh one
func (r *RootCommand) teardown() error {
	r.app = nil
	if r.close == nil {
		return nil
	}
	closeFn := r.close
	r.close = nil
	return closeFn()
}

// run wraps a handler with the configured timeout
func (r *RootCommand) run(fn func(ctx context.Context, app *App) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, r.getAppTimeout())
		defer cancel()
		return fn(ctx, r.app)
	}
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.addCommand(),
		r.listCommand(),
		r.simpleCommand("show <task-id>", "Show every field of a task", cobra.ExactArgs(1)),
		r.editCommand(),
		r.simpleCommand("done <task-id>...", "Mark tasks completed", cobra.MinimumNArgs(1)),
		r.simpleCommand("status <task-id> <status>", "Set the status of a task", cobra.ExactArgs(2)),
		r.deleteCommand(),
		r.reorderCommand(),
		r.listsCommand(),
		r.simpleCommand("dashboard", "Show metrics, high-priority and overdue tasks", cobra.NoArgs),
		r.calendarCommand(),
		r.simpleCommand("theme [light|dark|toggle]", "Show or change the output theme", cobra.MaximumNArgs(1)),
		r.simpleCommand("storage", "Show what the local store holds", cobra.NoArgs),
	)
}

// simpleCommand dispatches a command that only takes positional arguments
// through the App's registry
func (r *RootCommand) simpleCommand(use, short string, args cobra.PositionalArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
	}
	cmd.RunE = func(c *cobra.Command, positional []string) error {
		return r.run(func(ctx context.Context, app *App) error {
			return app.Run(ctx, append([]string{c.Name()}, positional...))
		})(c, positional)
	}
	return cmd
}

func (r *RootCommand) addCommand() *cobra.Command {
	var input validation.TaskInput
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.Flags().StringVarP(&input.Description, "description", "d", "", "Task notes")
	cmd.Flags().StringVarP(&input.Status, "status", "s", "", "todo, in-progress or completed")
	cmd.Flags().StringVarP(&input.Priority, "priority", "p", "", "none, low, medium or high")
	cmd.Flags().StringVarP(&input.Tags, "tags", "t", "", "Comma-separated tags")
	cmd.Flags().StringVar(&input.DueDate, "due", "", "Due date")
	cmd.Flags().StringVarP(&input.ListID, "list", "l", "", "List name or id")

	cmd.RunE = func(c *cobra.Command, args []string) error {
		return r.run(func(ctx context.Context, app *App) error {
			input.Title = strings.Join(args, " ")
			return NewAddCommand(app).Run(ctx, input)
		})(c, args)
	}
	return cmd
}

func (r *RootCommand) listCommand() *cobra.Command {
	var opts ListOptions
	cmd := &cobra.Command{
		Use:     "ls [search text]",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Long: `List tasks with optional filtering and sorting.

Stages combine with AND; several --tag values match any of them.
Sort keys: due, priority, created, title, manual.

Examples:
  tm ls                          # List all tasks
  tm ls report                   # Tasks whose text contains "report"
  tm ls --status todo --tag work # Open work tasks
  tm ls --sort due --desc        # Latest due first, undated last`,
	}
	cmd.Flags().StringSliceVarP(&opts.Statuses, "status", "s", nil, "Only these statuses")
	cmd.Flags().StringSliceVarP(&opts.Priorities, "priority", "p", nil, "Only these priorities")
	cmd.Flags().StringSliceVarP(&opts.Tags, "tag", "t", nil, "Only tasks with any of these tags")
	cmd.Flags().StringVarP(&opts.List, "list", "l", "", "Only tasks in this list")
	cmd.Flags().BoolVar(&opts.HideCompleted, "hide-completed", false, "Hide completed tasks")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort key")
	cmd.Flags().BoolVar(&opts.Descending, "desc", false, "Sort descending")

	cmd.RunE = func(c *cobra.Command, args []string) error {
		return r.run(func(ctx context.Context, app *App) error {
			opts.Search = strings.Join(args, " ")
			return NewListCommand(app).Run(ctx, opts)
		})(c, args)
	}
	return cmd
}

func (r *RootCommand) editCommand() *cobra.Command {
	var title, description, status, priority, tags, due, list string
	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Change fields of a task",
		Long: `Change fields of a task. Only the flags given are changed.
Pass an empty --due, --tags or --list to clear it.`,
		Args: cobra.ExactArgs(1),
	}
	flags := cmd.Flags()
	flags.StringVar(&title, "title", "", "New title")
	flags.StringVarP(&description, "description", "d", "", "New notes")
	flags.StringVarP(&status, "status", "s", "", "todo, in-progress or completed")
	flags.StringVarP(&priority, "priority", "p", "", "none, low, medium or high")
	flags.StringVarP(&tags, "tags", "t", "", "Comma-separated tags")
	flags.StringVar(&due, "due", "", "Due date")
	flags.StringVarP(&list, "list", "l", "", "List name or id")

	cmd.RunE = func(c *cobra.Command, args []string) error {
		changed := func(name string, v *string) *string {
			if flags.Changed(name) {
				return v
			}
			return nil
		}
		changes := validation.TaskChanges{
			Title:       changed("title", &title),
			Description: changed("description", &description),
			Status:      changed("status", &status),
			Priority:    changed("priority", &priority),
			Tags:        changed("tags", &tags),
			DueDate:     changed("due", &due),
			ListID:      changed("list", &list),
		}
		return r.run(func(ctx context.Context, app *App) error {
			return NewEditCommand(app).Run(ctx, args[0], changes)
		})(c, args)
	}
	return cmd
}

func (r *RootCommand) deleteCommand() *cobra.Command {
	var completed bool
	cmd := &cobra.Command{
		Use:   "rm <task-id>...",
		Short: "Delete tasks",
		Long: `Delete tasks by id, or every completed task with --completed.

This operation cannot be undone.`,
	}
	cmd.Flags().BoolVar(&completed, "completed", false, "Delete every completed task")

	cmd.RunE = func(c *cobra.Command, args []string) error {
		return r.run(func(ctx context.Context, app *App) error {
			if completed {
				return NewDeleteCommand(app).DeleteCompleted(ctx)
			}
			return NewDeleteCommand(app).Execute(ctx, args)
		})(c, args)
	}
	return cmd
}

func (r *RootCommand) reorderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder <list|-> <task-id>...",
		Short: "Set the manual order of a list",
		Long: `Set the manual order of the tasks in a list. Use "-" for tasks
without a list. Tasks not named keep their order after the named ones.`,
		Args: cobra.MinimumNArgs(2),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return r.run(func(ctx context.Context, app *App) error {
			return NewReorderCommand(app).Execute(ctx, args)
		})(c, args)
	}
	return cmd
}

func (r *RootCommand) listsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage task lists",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return r.run(func(ctx context.Context, app *App) error {
			return NewListsCommand(app).List(ctx)
		})(c, args)
	}

	var input validation.ListInput
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a list",
		Args:  cobra.MinimumNArgs(1),
	}
	add.Flags().StringVarP(&input.Description, "description", "d", "", "List description")
	add.Flags().StringVarP(&input.Color, "color", "c", "", "Colour hint such as #3b82f6")
	add.RunE = func(c *cobra.Command, args []string) error {
		return r.run(func(ctx context.Context, app *App) error {
			input.Name = strings.Join(args, " ")
			return NewListsCommand(app).Add(ctx, input)
		})(c, args)
	}

	var name, description, color string
	edit := &cobra.Command{
		Use:   "edit <list>",
		Short: "Change fields of a list",
		Args:  cobra.ExactArgs(1),
	}
	editFlags := edit.Flags()
	editFlags.StringVar(&name, "name", "", "New name")
	editFlags.StringVarP(&description, "description", "d", "", "New description")
	editFlags.StringVarP(&color, "color", "c", "", "New colour hint; empty clears it")
	edit.RunE = func(c *cobra.Command, args []string) error {
		changed := func(flag string, v *string) *string {
			if editFlags.Changed(flag) {
				return v
			}
			return nil
		}
		changes := validation.ListChanges{
			Name:        changed("name", &name),
			Description: changed("description", &description),
			Color:       changed("color", &color),
		}
		return r.run(func(ctx context.Context, app *App) error {
			return NewListsCommand(app).Edit(ctx, args[0], changes)
		})(c, args)
	}

	ls := &cobra.Command{Use: "ls", Short: "List all lists", Args: cobra.NoArgs}
	ls.RunE = func(c *cobra.Command, args []string) error {
		return r.run(func(ctx context.Context, app *App) error {
			return NewListsCommand(app).List(ctx)
		})(c, args)
	}

	show := &cobra.Command{Use: "show <list>", Short: "Show the tasks of a list", Args: cobra.ExactArgs(1)}
	show.RunE = func(c *cobra.Command, args []string) error {
		return r.run(func(ctx context.Context, app *App) error {
			return NewListsCommand(app).Show(ctx, args[0])
		})(c, args)
	}

	rm := &cobra.Command{
		Use:   "rm <list>",
		Short: "Delete a list",
		Long:  "Delete a list. Its tasks are kept and show as unassigned.",
		Args:  cobra.ExactArgs(1),
	}
	rm.RunE = func(c *cobra.Command, args []string) error {
		return r.run(func(ctx context.Context, app *App) error {
			return NewListsCommand(app).Remove(ctx, args[0])
		})(c, args)
	}

	cmd.AddCommand(add, ls, show, edit, rm)
	return cmd
}

func (r *RootCommand) calendarCommand() *cobra.Command {
	var opts CalendarOptions
	var next, prev bool
	cmd := &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Show a month of due dates",
		Long: `Show a month grid of due dates. "*" marks days with open tasks,
"+" days whose tasks are all completed.`,
		Args: cobra.MaximumNArgs(1),
	}
	cmd.Flags().BoolVar(&next, "next", false, "Show the following month")
	cmd.Flags().BoolVar(&prev, "prev", false, "Show the previous month")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Move this many months")

	cmd.RunE = func(c *cobra.Command, args []string) error {
		run := opts
		if len(args) == 1 {
			run.Month = args[0]
		}
		if next {
			run.Offset++
		}
		if prev {
			run.Offset--
		}
		return r.run(func(ctx context.Context, app *App) error {
			return NewCalendarCommand(app).Run(ctx, run)
		})(c, args)
	}
	return cmd
}
