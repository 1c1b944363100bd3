package tui

import (
	"strings"
	"testing"

	"github.com/sagacraft/sagacraft/engine"
	"github.com/sagacraft/sagacraft/engine/world"
	"github.com/sagacraft/sagacraft/types"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"You see: Rusty Key, Old Tome", kindListing},
		{"Also here: Merchant", kindListing},
		{"Exits: north, south", kindExits},
		{"[Script Error: boom]", kindScript},
		{"[Command Error: boom]", kindScript},
		{"You don't see a 'sword' here.", kindError},
		{"You can't go that way.", kindError},
		{"I don't understand 'frob'. Type 'help' for commands.", kindError},
		{"A grand hall with stone walls.", kindNarrative},
		{"You take the Rusty Key.", kindNarrative},
		{"", kindNarrative},
		{`Eleanor says: "I wondered when they'd send someone competent."`, kindDialogue},
	}
	for _, tt := range tests {
		got := classifyLine(tt.line)
		if got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestContainsQuotedSpeech(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{`Guard says: "Halt! None may pass the gate tonight."`, true},
		{`It bears the mark "IX".`, false}, // short quote segment
		{"No quotes here.", false},
		{`She whispers "the crown is lost forever, seek the crypt."`, true},
	}
	for _, tt := range tests {
		got := containsQuotedSpeech(tt.line)
		if got != tt.want {
			t.Errorf("containsQuotedSpeech(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestHistoryPushAndPrev(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go north")
	h.Push("take key")

	for _, want := range []string{"take key", "go north", "look", "look"} {
		got, ok := h.Prev()
		if !ok || got != want {
			t.Errorf("Prev() = %q, %v, want %q", got, ok, want)
		}
	}
}

func TestHistoryNext(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go north")

	h.Prev() // "go north"
	h.Prev() // "look"

	next, ok := h.Next()
	if !ok || next != "go north" {
		t.Errorf("Next() = %q, %v, want \"go north\"", next, ok)
	}
	if _, ok := h.Next(); ok {
		t.Error("Next past the newest entry should report false")
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(5)
	if _, ok := h.Prev(); ok {
		t.Error("Prev on empty history should report false")
	}
	if _, ok := h.Next(); ok {
		t.Error("Next on empty history should report false")
	}
}

func TestHistoryMaxSize(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c") // "a" evicted

	for _, want := range []string{"c", "b", "b"} {
		got, _ := h.Prev()
		if got != want {
			t.Errorf("Prev() = %q, want %q", got, want)
		}
	}
}

func TestHistoryNoDuplicates(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("look")
	h.Push("look")

	if len(h.lines) != 1 {
		t.Errorf("len(lines) = %d, want 1", len(h.lines))
	}
}

func TestHistoryResetCursor(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go north")

	h.Prev()
	h.ResetCursor()

	got, ok := h.Prev()
	if !ok || got != "go north" {
		t.Errorf("Prev after reset = %q, want \"go north\"", got)
	}
}

func testModel(t *testing.T) Model {
	t.Helper()
	w := world.New()
	w.Title = "Test Saga"
	w.AllowSave = true
	w.StartRoom = 1
	w.Rooms[1] = &types.Room{ID: 1, Name: "Hall", Description: "A grand hall.",
		Exits: map[string]int{"north": 2}}
	w.Rooms[2] = &types.Room{ID: 2, Name: "Garden", Description: "A garden.",
		Exits: map[string]int{"south": 1}}
	w.Player.Name = "Tester"
	w.Player.CurrentRoom = 1
	w.Player.Hardiness = 20
	w.Player.Health = 20

	eng := engine.New(w, engine.Options{Seed: 1})
	m := New(eng, t.TempDir())
	return m
}

func TestHandleMetaQuit(t *testing.T) {
	m := testModel(t)

	_, quit := m.handleMeta("/quit")
	if !quit {
		t.Error("/quit should quit")
	}
	_, quit = m.handleMeta("/exit")
	if !quit {
		t.Error("/exit should quit")
	}
}

func TestHandleMetaSaveAndLoad(t *testing.T) {
	m := testModel(t)

	output, quit := m.handleMeta("/save 2")
	if quit {
		t.Error("save should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Saved to slot 2.") {
		t.Fatalf("save output = %v", output)
	}

	output, _ = m.handleMeta("/load 2")
	if len(output) == 0 || !strings.Contains(output[0], "Loaded slot 2") {
		t.Errorf("load output = %v", output)
	}
}

func TestHandleMetaLoadEmptySlot(t *testing.T) {
	m := testModel(t)

	output, quit := m.handleMeta("/load 9")
	if quit {
		t.Error("load should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "No save in slot 9.") {
		t.Errorf("load output = %v", output)
	}
}

func TestHandleMetaSaveDisabled(t *testing.T) {
	m := testModel(t)
	m.engine.World.AllowSave = false

	output, _ := m.handleMeta("/save")
	if len(output) == 0 || !strings.Contains(output[0], "disabled") {
		t.Errorf("save output = %v", output)
	}
}

func TestHandleMetaHelp(t *testing.T) {
	m := testModel(t)

	output, quit := m.handleMeta("/help")
	if quit {
		t.Error("help should not quit")
	}
	joined := strings.Join(output, "\n")
	for _, want := range []string{"/save", "/load", "/quit", "look", "inventory"} {
		if !strings.Contains(joined, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestHandleMetaState(t *testing.T) {
	m := testModel(t)

	output, quit := m.handleMeta("/state")
	if quit {
		t.Error("state should not quit")
	}
	joined := strings.Join(output, "\n")
	if !strings.Contains(joined, "Room: 1") {
		t.Errorf("state output missing room: %v", output)
	}
	if !strings.Contains(joined, "Turn:") {
		t.Errorf("state output missing turn: %v", output)
	}
}

func TestHandleMetaUnknown(t *testing.T) {
	m := testModel(t)

	output, quit := m.handleMeta("/bogus")
	if quit {
		t.Error("unknown meta should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Unknown command") {
		t.Errorf("output = %v", output)
	}
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		arg  string
		want int
	}{
		{"", 1},
		{"3", 3},
		{"12", 12},
		{"0", 1},
		{"abc", 1},
	}
	for _, tt := range tests {
		if got := parseSlot(tt.arg); got != tt.want {
			t.Errorf("parseSlot(%q) = %d, want %d", tt.arg, got, tt.want)
		}
	}
}
