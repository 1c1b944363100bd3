package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleListing = lipgloss.NewStyle().
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleScript = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindListing
	kindExits
	kindDialogue
	kindScript
	kindError
)

// listingPrefixes are room-description lines whose payload gets bolded.
var listingPrefixes = []string{"You see: ", "Also here: "}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[Script Error:"),
		strings.HasPrefix(line, "[Command Error:"):
		return kindScript
	case hasListingPrefix(line):
		return kindListing
	case strings.HasPrefix(line, "Exits:"):
		return kindExits
	case strings.HasPrefix(line, "You don't see"),
		strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "You don't have"),
		strings.HasPrefix(line, "I don't understand"):
		return kindError
	case containsQuotedSpeech(line):
		return kindDialogue
	default:
		return kindNarrative
	}
}

func hasListingPrefix(line string) bool {
	for _, p := range listingPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// containsQuotedSpeech checks if a line contains NPC dialogue in
// double quotes.
func containsQuotedSpeech(line string) bool {
	inQuote := false
	quoteLen := 0
	for _, r := range line {
		if r == '"' {
			if inQuote && quoteLen > 5 {
				return true
			}
			inQuote = !inQuote
			quoteLen = 0
		} else if inQuote {
			quoteLen++
		}
	}
	return false
}

// styledListing renders "You see: sword, lantern." with the names bold.
func styledListing(line string) string {
	for _, prefix := range listingPrefixes {
		if strings.HasPrefix(line, prefix) {
			return styleNarrative.Render(prefix) + styleListing.Render(line[len(prefix):])
		}
	}
	return styleNarrative.Render(line)
}

// styledSystemMsg renders a meta-command message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
