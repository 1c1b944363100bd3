package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing
// the current room, its exits, health, gold, and turn count.
func (m Model) renderStatusBar() string {
	w := m.engine.World

	roomName := "Nowhere"
	var dirs []string
	if room := w.CurrentRoom(); room != nil {
		roomName = room.Name
		for dir := range room.Exits {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
	}
	exitStr := strings.Join(dirs, ",")

	left := fmt.Sprintf(" %s | Exits: %s", roomName, exitStr)
	right := fmt.Sprintf("HP:%d/%d | G:%d | T:%d ",
		w.Player.Health, w.Player.Hardiness, w.Player.Gold, w.TurnCount)

	// Show carried item names if they fit, otherwise just the count.
	if carried := w.InventoryItems(); len(carried) > 0 {
		var names []string
		for _, it := range carried {
			names = append(names, it.Name)
		}
		candidate := fmt.Sprintf("Inv: %s | %s", strings.Join(names, ", "), right)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | %s", len(carried), right)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
