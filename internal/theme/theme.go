// Package theme provides the closed background palette table and the
// terminal styles used when rendering levels.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pourlab/liquidsort/internal/engine"
)

// Count is the number of background themes. Theme IDs are derived from
// the level index hash, so the table size is part of the deterministic
// profile contract.
const Count = 16

// Theme is one entry of the background palette table.
type Theme struct {
	ID         int
	Name       string
	Background lipgloss.Style
	Accent     lipgloss.Style
}

// ByID resolves a theme ID to its palette entry. IDs outside the table
// wrap around, so every profile-derived ID resolves.
func ByID(id int) Theme {
	if id < 0 {
		id = -id
	}
	id = id % Count

	switch id {
	case 0:
		return entry(id, "midnight", "17", "75")
	case 1:
		return entry(id, "forest", "22", "120")
	case 2:
		return entry(id, "plum", "53", "213")
	case 3:
		return entry(id, "ocean", "24", "87")
	case 4:
		return entry(id, "ember", "52", "208")
	case 5:
		return entry(id, "slate", "236", "252")
	case 6:
		return entry(id, "moss", "58", "190")
	case 7:
		return entry(id, "dusk", "54", "177")
	case 8:
		return entry(id, "sand", "94", "222")
	case 9:
		return entry(id, "ice", "23", "159")
	case 10:
		return entry(id, "rose", "89", "211")
	case 11:
		return entry(id, "pine", "23", "114")
	case 12:
		return entry(id, "storm", "237", "111")
	case 13:
		return entry(id, "clay", "95", "216")
	case 14:
		return entry(id, "violet", "55", "147")
	default:
		return entry(id, "coal", "233", "245")
	}
}

func entry(id int, name, background, accent string) Theme {
	return Theme{
		ID:         id,
		Name:       name,
		Background: lipgloss.NewStyle().Background(lipgloss.Color(background)),
		Accent:     lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
	}
}

// ColorStyle returns the terminal style for a liquid color.
func ColorStyle(c engine.Color) lipgloss.Style {
	switch c {
	case engine.ColorRed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	case engine.ColorOrange:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	case engine.ColorYellow:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	case engine.ColorGreen:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	case engine.ColorCyan:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	case engine.ColorBlue:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	case engine.ColorPurple:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("135"))
	case engine.ColorPink:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	}
}

var (
	emptySlotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	sinkMarkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
)

// RenderBottle returns a styled compact dump of one bottle, e.g.
// "[RRBB]" with colored slot characters and a "!" suffix for sinks.
func RenderBottle(b *engine.Bottle) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < b.Count(); i++ {
		c, _ := b.ColorAt(i)
		sb.WriteString(ColorStyle(c).Render(string(c.Char())))
	}
	for i := b.Count(); i < b.Capacity(); i++ {
		sb.WriteString(emptySlotStyle.Render("_"))
	}
	sb.WriteByte(']')
	if b.IsSink() {
		sb.WriteString(sinkMarkStyle.Render("!"))
	}
	return sb.String()
}

// RenderState returns a one-line styled dump of the full configuration.
func RenderState(s *engine.LevelState) string {
	parts := make([]string, len(s.Bottles))
	for i := range s.Bottles {
		parts[i] = RenderBottle(&s.Bottles[i])
	}
	return strings.Join(parts, " ")
}
