package tui

// History holds recent input lines for Up/Down recall at the prompt.
type History struct {
	lines  []string
	max    int
	cursor int // -1 when not browsing, otherwise an index into lines
}

// NewHistory creates a history buffer holding at most max lines.
func NewHistory(max int) *History {
	return &History{max: max, cursor: -1}
}

// Push records an input line. Repeating the previous line is a no-op,
// and the oldest line falls off once the buffer is full.
func (h *History) Push(line string) {
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return
	}
	h.lines = append(h.lines, line)
	if len(h.lines) > h.max {
		h.lines = h.lines[1:]
	}
}

// Prev steps toward older entries. It sticks at the oldest line and
// reports false only when the buffer is empty.
func (h *History) Prev() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = len(h.lines) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.lines[h.cursor], true
}

// Next steps toward newer entries, reporting false once browsing runs
// past the most recent line (back to fresh input).
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.lines) {
		h.cursor = -1
		return "", false
	}
	return h.lines[h.cursor], true
}

// ResetCursor leaves browsing mode.
func (h *History) ResetCursor() {
	h.cursor = -1
}
