package cli

import (
	"github.com/charmbracelet/lipgloss"

	"task-manager/internal/domain"
)

// Palette is the set of colours one theme uses.
type Palette struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	Info    lipgloss.Color
}

var (
	// LightPalette reads on light terminal backgrounds.
	LightPalette = Palette{
		Text:    lipgloss.Color("#1f2937"),
		Muted:   lipgloss.Color("#6b7280"),
		Accent:  lipgloss.Color("#2563eb"),
		Success: lipgloss.Color("#15803d"),
		Warning: lipgloss.Color("#b45309"),
		Danger:  lipgloss.Color("#b91c1c"),
		Info:    lipgloss.Color("#0e7490"),
	}

	// DarkPalette reads on dark terminal backgrounds.
	DarkPalette = Palette{
		Text:    lipgloss.Color("#e5e7eb"),
		Muted:   lipgloss.Color("#9ca3af"),
		Accent:  lipgloss.Color("#60a5fa"),
		Success: lipgloss.Color("#4ade80"),
		Warning: lipgloss.Color("#fbbf24"),
		Danger:  lipgloss.Color("#f87171"),
		Info:    lipgloss.Color("#22d3ee"),
	}
)

// PaletteFor returns the palette of theme.
func PaletteFor(theme domain.Theme) Palette {
	if theme == domain.ThemeDark {
		return DarkPalette
	}
	return LightPalette
}

// Styles holds all the output styles
type Styles struct {
	renderer *lipgloss.Renderer
	noColor  bool

	Title     lipgloss.Style
	Header    lipgloss.Style
	ID        lipgloss.Style
	Muted     lipgloss.Style
	Overdue   lipgloss.Style
	Today     lipgloss.Style
	Completed lipgloss.Style
	Count     lipgloss.Style
	Success   lipgloss.Style

	priority map[domain.TaskPriority]lipgloss.Style
	status   map[domain.TaskStatus]lipgloss.Style
}

// NewStyles builds styles for theme. With noColor every style is plain.
func NewStyles(r *lipgloss.Renderer, theme domain.Theme, noColor bool) *Styles {
	p := PaletteFor(theme)
	s := &Styles{renderer: r, noColor: noColor}

	color := func(c lipgloss.Color) lipgloss.Style {
		if noColor {
			return r.NewStyle()
		}
		return r.NewStyle().Foreground(c)
	}

	s.Title = color(p.Text).Bold(true)
	s.Header = color(p.Accent).Bold(true)
	s.ID = color(p.Muted)
	s.Muted = color(p.Muted)
	s.Overdue = color(p.Danger).Bold(true)
	s.Today = color(p.Accent).Bold(true).Underline(true)
	s.Completed = color(p.Muted).Strikethrough(true)
	s.Count = color(p.Info)
	s.Success = color(p.Success)

	s.priority = map[domain.TaskPriority]lipgloss.Style{
		domain.PriorityHigh:   color(p.Danger),
		domain.PriorityMedium: color(p.Warning),
		domain.PriorityLow:    color(p.Info),
		domain.PriorityNone:   color(p.Muted),
	}
	s.status = map[domain.TaskStatus]lipgloss.Style{
		domain.StatusTodo:       color(p.Text),
		domain.StatusInProgress: color(p.Warning),
		domain.StatusCompleted:  color(p.Success),
	}
	return s
}

// Priority returns the style for p.
func (s *Styles) Priority(p domain.TaskPriority) lipgloss.Style {
	if style, ok := s.priority[p]; ok {
		return style
	}
	return s.Muted
}

// Status returns the style for st.
func (s *Styles) Status(st domain.TaskStatus) lipgloss.Style {
	if style, ok := s.status[st]; ok {
		return style
	}
	return s.Muted
}

// List renders a list name in its colour hint.
func (s *Styles) List(list domain.UserList) string {
	style := s.renderer.NewStyle()
	if list.Color != "" && !s.noColor {
		style = style.Foreground(lipgloss.Color(list.Color))
	}
	return style.Render("@" + list.Name)
}
