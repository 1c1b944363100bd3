package events

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sagacraft/sagacraft/types"
)

func sayHook(event Type, priority int, line string) *Hook {
	return &Hook{
		Event:    event,
		Priority: priority,
		Fn: func(p *Payload) ([]string, error) {
			return []string{line}, nil
		},
	}
}

func TestTriggerPriorityOrder(t *testing.T) {
	b := NewBus()
	b.RegisterHook(sayHook(OnEnterRoom, 1, "low"))
	b.RegisterHook(sayHook(OnEnterRoom, 10, "high"))
	b.RegisterHook(sayHook(OnEnterRoom, 5, "mid"))

	got := b.Trigger(OnEnterRoom, &Payload{})
	want := []string{"high", "mid", "low"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Trigger output = %v, want %v", got, want)
	}
}

func TestTriggerStableTies(t *testing.T) {
	b := NewBus()
	b.RegisterHook(sayHook(OnTakeItem, 5, "first"))
	b.RegisterHook(sayHook(OnTakeItem, 5, "second"))
	b.RegisterHook(sayHook(OnTakeItem, 5, "third"))

	got := b.Trigger(OnTakeItem, &Payload{})
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("equal-priority hooks ran as %v, want registration order %v", got, want)
	}
}

func TestHooksSeeEarlierMutations(t *testing.T) {
	b := NewBus()
	b.RegisterHook(&Hook{
		Event:    OnAttack,
		Priority: 10,
		Fn: func(p *Payload) ([]string, error) {
			p.Damage = 99
			return nil, nil
		},
	})
	var seen int
	b.RegisterHook(&Hook{
		Event: OnAttack,
		Fn: func(p *Payload) ([]string, error) {
			seen = p.Damage
			return nil, nil
		},
	})

	b.Trigger(OnAttack, &Payload{Damage: 3})
	if seen != 99 {
		t.Errorf("second hook saw Damage = %d, want 99", seen)
	}
}

func TestCancelDoesNotStopLaterHooks(t *testing.T) {
	b := NewBus()
	b.RegisterHook(&Hook{
		Event:    OnTakeItem,
		Priority: 10,
		Fn: func(p *Payload) ([]string, error) {
			p.Cancel = true
			return nil, nil
		},
	})
	ran := false
	b.RegisterHook(&Hook{
		Event: OnTakeItem,
		Fn: func(p *Payload) ([]string, error) {
			ran = true
			return nil, nil
		},
	})

	p := &Payload{}
	b.Trigger(OnTakeItem, p)
	if !ran {
		t.Error("hook after a canceling hook did not run")
	}
	if !p.Cancel {
		t.Error("Cancel flag was not preserved through dispatch")
	}
}

func TestHookErrorIsIsolated(t *testing.T) {
	b := NewBus()
	b.RegisterHook(&Hook{
		Event:    OnTalk,
		Priority: 10,
		Fn: func(p *Payload) ([]string, error) {
			return nil, errors.New("boom")
		},
	})
	b.RegisterHook(sayHook(OnTalk, 1, "still here"))

	got := b.Trigger(OnTalk, &Payload{})
	want := []string{"[Script Error: boom]", "still here"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Trigger output = %v, want %v", got, want)
	}
}

func TestFilterMatching(t *testing.T) {
	room := &types.Room{ID: 7}
	item := &types.Item{ID: 42}

	tests := []struct {
		name    string
		filter  map[string]any
		payload *Payload
		wantRun bool
	}{
		{
			name:    "no filter always runs",
			filter:  nil,
			payload: &Payload{},
			wantRun: true,
		},
		{
			name:    "matching scalar",
			filter:  map[string]any{"room_id": 7},
			payload: &Payload{Room: room},
			wantRun: true,
		},
		{
			name:    "mismatching scalar",
			filter:  map[string]any{"room_id": 8},
			payload: &Payload{Room: room},
			wantRun: false,
		},
		{
			name:    "missing key never matches",
			filter:  map[string]any{"item_id": 42},
			payload: &Payload{Room: room},
			wantRun: false,
		},
		{
			name:    "list membership",
			filter:  map[string]any{"item_id": []any{41, 42, 43}},
			payload: &Payload{Item: item},
			wantRun: true,
		},
		{
			name:    "list non-membership",
			filter:  map[string]any{"item_id": []any{1, 2}},
			payload: &Payload{Item: item},
			wantRun: false,
		},
		{
			name:    "lua numbers compare as ints",
			filter:  map[string]any{"room_id": float64(7)},
			payload: &Payload{Room: room},
			wantRun: true,
		},
		{
			name:    "all keys must match",
			filter:  map[string]any{"room_id": 7, "direction": "north"},
			payload: &Payload{Room: room, Direction: "south"},
			wantRun: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBus()
			ran := false
			b.RegisterHook(&Hook{
				Event:  OnExamine,
				Filter: tt.filter,
				Fn: func(p *Payload) ([]string, error) {
					ran = true
					return nil, nil
				},
			})
			b.Trigger(OnExamine, tt.payload)
			if ran != tt.wantRun {
				t.Errorf("hook ran = %v, want %v", ran, tt.wantRun)
			}
		})
	}
}

func TestCustomCommands(t *testing.T) {
	b := NewBus()
	b.RegisterCommand(&Command{
		Verb:    "dance",
		Aliases: []string{"boogie"},
		Fn: func(args string) ([]string, error) {
			return []string{"You dance. " + args}, nil
		},
	})

	if b.FindCommand("sing") != nil {
		t.Error("FindCommand matched an unregistered verb")
	}

	c := b.FindCommand("boogie")
	if c == nil {
		t.Fatal("FindCommand did not match an alias")
	}
	if got := b.RunCommand(c, "wildly"); len(got) != 1 || got[0] != "You dance. wildly" {
		t.Errorf("RunCommand output = %v", got)
	}

	// Case-sensitive first, lower-cased second.
	if b.FindCommand("DANCE") == nil {
		t.Error("FindCommand did not fall back to lower-cased match")
	}

	// Error bodies become a labeled line, never a panic.
	b.RegisterCommand(&Command{
		Verb: "explode",
		Fn: func(args string) ([]string, error) {
			return []string{"fuse lit"}, errors.New("bad script")
		},
	})
	got := b.RunCommand(b.FindCommand("explode"), "")
	want := []string{"fuse lit", "[Command Error: bad script]"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RunCommand output = %v, want %v", got, want)
	}
}
