package theme

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the CLI event stream.
type Theme struct {
	Name    string
	Press   lipgloss.Color // key-down badge
	Release lipgloss.Color // key-up badge
	Key     lipgloss.Color // key name
	Dimmed  lipgloss.Color // hold durations, hints
	Error   lipgloss.Color // failures
}

var themes = map[string]Theme{
	"aurora": {
		Name:    "Aurora",
		Press:   lipgloss.Color("#7CE38B"),
		Release: lipgloss.Color("#6CB6FF"),
		Key:     lipgloss.Color("#FAF4ED"),
		Dimmed:  lipgloss.Color("#6E7681"),
		Error:   lipgloss.Color("#FF7B72"),
	},
	"gruvbox": {
		Name:    "Gruvbox",
		Press:   lipgloss.Color("#B8BB26"),
		Release: lipgloss.Color("#83A598"),
		Key:     lipgloss.Color("#EBDBB2"),
		Dimmed:  lipgloss.Color("#928374"),
		Error:   lipgloss.Color("#FB4934"),
	},
	"mono": {
		Name:    "Mono",
		Press:   lipgloss.Color("15"),
		Release: lipgloss.Color("7"),
		Key:     lipgloss.Color("15"),
		Dimmed:  lipgloss.Color("8"),
		Error:   lipgloss.Color("9"),
	},
}

const defaultName = "aurora"

// Get returns the named theme, falling back to the default for
// unknown names.
func Get(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[defaultName]
}

// Names returns the available theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Styles bundles ready-to-use lipgloss styles for one theme.
type Styles struct {
	pressBadge   lipgloss.Style
	releaseBadge lipgloss.Style
	key          lipgloss.Style
	dimmed       lipgloss.Style
	err          lipgloss.Style
}

// NewStyles builds the styles for t.
func NewStyles(t Theme) Styles {
	return Styles{
		pressBadge:   lipgloss.NewStyle().Foreground(t.Press).Bold(true),
		releaseBadge: lipgloss.NewStyle().Foreground(t.Release).Bold(true),
		key:          lipgloss.NewStyle().Foreground(t.Key),
		dimmed:       lipgloss.NewStyle().Foreground(t.Dimmed),
		err:          lipgloss.NewStyle().Foreground(t.Error).Bold(true),
	}
}

// PressLine renders one key-down event.
func (s Styles) PressLine(key string) string {
	return fmt.Sprintf("%s %s", s.pressBadge.Render("DOWN"), s.key.Render(key))
}

// ReleaseLine renders one key-up event with its hold duration.
func (s Styles) ReleaseLine(key string, held time.Duration) string {
	line := fmt.Sprintf("%s %s", s.releaseBadge.Render("UP  "), s.key.Render(key))
	if held > 0 {
		line += " " + s.dimmed.Render(fmt.Sprintf("(held %.3fs)", held.Seconds()))
	}
	return line
}

// Hint renders a dimmed helper line.
func (s Styles) Hint(text string) string {
	return s.dimmed.Render(text)
}

// ErrorLine renders a failure.
func (s Styles) ErrorLine(text string) string {
	return s.err.Render(text)
}
