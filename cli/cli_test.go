package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sagacraft/sagacraft/engine"
	"github.com/sagacraft/sagacraft/engine/events"
	"github.com/sagacraft/sagacraft/engine/world"
	"github.com/sagacraft/sagacraft/types"
)

func testWorld() *world.World {
	w := world.New()
	w.Title = "Test Saga"
	w.Intro = "Welcome to the test."
	w.AllowSave = true
	w.StartRoom = 1
	w.Rooms[1] = &types.Room{ID: 1, Name: "Hall", Description: "A grand hall.",
		Exits: map[string]int{"north": 2}}
	w.Rooms[2] = &types.Room{ID: 2, Name: "Garden", Description: "A peaceful garden.",
		Exits: map[string]int{"south": 1}}
	w.Items[10] = &types.Item{ID: 10, Name: "Rusty Key", IsTakeable: true, Location: 1}
	w.Player.Name = "Tester"
	w.Player.CurrentRoom = 1
	w.Player.Hardiness = 20
	w.Player.Health = 20
	return w
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	eng := engine.New(testWorld(), engine.Options{Seed: 1})
	var out bytes.Buffer
	return &CLI{
		Engine:  eng,
		In:      strings.NewReader(input),
		Out:     &out,
		SaveDir: t.TempDir(),
	}, &out
}

func TestRunShowsIntroAndRoom(t *testing.T) {
	c, out := newTestCLI(t, "")
	c.Run()

	got := out.String()
	for _, want := range []string{"Test Saga", "Welcome to the test.", "Hall", "A grand hall.", "Rusty Key"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestCommandsFlowToEngine(t *testing.T) {
	c, out := newTestCLI(t, "take key\ninventory\n")
	c.Run()

	got := out.String()
	if !strings.Contains(got, "You take the Rusty Key.") {
		t.Errorf("take did not reach the engine:\n%s", got)
	}
	if !strings.Contains(got, "Rusty Key") {
		t.Errorf("inventory missing the key:\n%s", got)
	}
}

func TestAgainRepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "go north\nagain\n")
	c.Run()

	got := out.String()
	if !strings.Contains(got, "Garden") {
		t.Fatalf("first move failed:\n%s", got)
	}
	// Second "go north" from Garden has no north exit.
	if !strings.Contains(got, "You can't go that way.") {
		t.Errorf("again did not repeat the move:\n%s", got)
	}
}

func TestCommentsAndBlankLinesSkipped(t *testing.T) {
	c, out := newTestCLI(t, "# a comment\n\ntake key\n")
	c.Run()

	got := out.String()
	if strings.Contains(got, "I don't understand") {
		t.Errorf("comment line reached the engine:\n%s", got)
	}
	if !strings.Contains(got, "You take the Rusty Key.") {
		t.Errorf("command after comment not executed:\n%s", got)
	}
}

func TestSaveAndLoadMeta(t *testing.T) {
	c, out := newTestCLI(t, "take key\n/save 1\ndrop key\n/load 1\ninventory\n")
	c.Engine.Bus.RegisterHook(&events.Hook{
		Event: events.OnSave,
		Fn: func(p *events.Payload) ([]string, error) {
			return []string{"A chronicler notes the moment."}, nil
		},
	})
	c.Engine.Bus.RegisterHook(&events.Hook{
		Event: events.OnLoad,
		Fn: func(p *events.Payload) ([]string, error) {
			return []string{"The world shimmers back into place."}, nil
		},
	})
	c.Run()

	got := out.String()
	if !strings.Contains(got, "Saved to slot 1.") {
		t.Fatalf("save did not run:\n%s", got)
	}
	if !strings.Contains(got, "Loaded slot 1") {
		t.Fatalf("load did not run:\n%s", got)
	}
	if !strings.Contains(got, "A chronicler notes the moment.") {
		t.Errorf("save hook did not fire:\n%s", got)
	}
	if !strings.Contains(got, "The world shimmers back into place.") {
		t.Errorf("load hook did not fire:\n%s", got)
	}
	// After the load, the key is back in inventory.
	idx := strings.LastIndex(got, "Loaded slot 1")
	if !strings.Contains(got[idx:], "Rusty Key") {
		t.Errorf("loaded state missing the key:\n%s", got[idx:])
	}
}

func TestLoadEmptySlot(t *testing.T) {
	c, out := newTestCLI(t, "/load 7\n")
	c.Run()

	if !strings.Contains(out.String(), "No save in slot 7.") {
		t.Errorf("output = %s", out.String())
	}
}

func TestSaveDisabled(t *testing.T) {
	c, out := newTestCLI(t, "/save\n")
	c.Engine.World.AllowSave = false
	c.Run()

	if !strings.Contains(out.String(), "Saving is disabled in this adventure.") {
		t.Errorf("output = %s", out.String())
	}
}

func TestQuitMeta(t *testing.T) {
	c, out := newTestCLI(t, "/quit\ntake key\n")
	c.Run()

	got := out.String()
	if !strings.Contains(got, "Goodbye.") {
		t.Errorf("no farewell:\n%s", got)
	}
	if strings.Contains(got, "You take the Rusty Key.") {
		t.Errorf("commands ran after /quit:\n%s", got)
	}
}
