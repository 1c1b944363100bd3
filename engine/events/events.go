// Package events implements the mod hook bus: prioritized, filterable
// handlers dispatched against a mutable payload, plus the custom
// command registry. Dispatch is single-pass and never recurses.
package events

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sagacraft/sagacraft/types"
)

// Type identifies a hookable engine event.
type Type string

const (
	OnEnterRoom      Type = "on_enter_room"
	OnExitRoom       Type = "on_exit_room"
	OnTakeItem       Type = "on_take_item"
	OnDropItem       Type = "on_drop_item"
	OnAttack         Type = "on_attack"
	OnKill           Type = "on_kill"
	OnDeath          Type = "on_death"
	OnTalk           Type = "on_talk"
	OnUseItem        Type = "on_use_item"
	OnExamine        Type = "on_examine"
	OnCommand        Type = "on_command"
	OnUnknownCommand Type = "on_unknown_command"
	OnSave           Type = "on_save"
	OnLoad           Type = "on_load"
)

// Payload is the mutable context passed through every hook for one
// dispatch. Hooks run in sequence and see earlier hooks' mutations.
// Cancel and Handled are only inspected by the engine after all hooks
// have run.
type Payload struct {
	Player *types.Player
	Room   *types.Room

	Item    *types.Item
	NPC     *types.Monster
	Monster *types.Monster

	Direction string
	Command   string
	Verb      string
	Args      string
	Topic     string
	Damage    int
	RoomID    int

	Cancel  bool
	Handled bool
	Message string

	// Extra carries mod-defined values between hooks of one dispatch.
	Extra map[string]any
}

// Field exposes payload values under the keys hook filters use.
func (p *Payload) Field(key string) (any, bool) {
	switch key {
	case "room_id":
		if p.Room != nil {
			return p.Room.ID, true
		}
		if p.RoomID != 0 {
			return p.RoomID, true
		}
	case "item_id":
		if p.Item != nil {
			return p.Item.ID, true
		}
	case "npc_id":
		if p.NPC != nil {
			return p.NPC.ID, true
		}
		if p.Monster != nil {
			return p.Monster.ID, true
		}
	case "direction":
		if p.Direction != "" {
			return p.Direction, true
		}
	case "verb":
		if p.Verb != "" {
			return p.Verb, true
		}
	case "topic":
		if p.Topic != "" {
			return p.Topic, true
		}
	default:
		if p.Extra != nil {
			v, ok := p.Extra[key]
			return v, ok
		}
	}
	return nil, false
}

// HandlerFunc is a hook body. Returned lines are appended to the
// dispatch output; a returned error becomes a script-error line and
// never halts the dispatch.
type HandlerFunc func(p *Payload) ([]string, error)

// Hook is one registered handler.
type Hook struct {
	Event    Type
	Fn       HandlerFunc
	Priority int
	Filter   map[string]any
	Source   string
}

// CommandFunc is a custom command body. It receives the argument text
// following the verb.
type CommandFunc func(args string) ([]string, error)

// Command is a mod-registered verb that replaces built-in dispatch.
type Command struct {
	Verb    string
	Aliases []string
	Help    string
	Fn      CommandFunc
}

// Bus holds registered hooks and custom commands for one session.
type Bus struct {
	hooks    map[Type][]*Hook
	commands []*Command
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{hooks: map[Type][]*Hook{}}
}

// RegisterHook adds a hook. Hooks for an event are kept in descending
// priority order; equal priorities keep registration order.
func (b *Bus) RegisterHook(h *Hook) {
	hs := append(b.hooks[h.Event], h)
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].Priority > hs[j].Priority })
	b.hooks[h.Event] = hs
}

// HookCount returns the number of hooks registered for an event.
func (b *Bus) HookCount(event Type) int {
	return len(b.hooks[event])
}

// Trigger dispatches an event. Every matching hook runs, even after an
// earlier hook sets Cancel — the caller decides what the final flags
// mean. Hook errors are converted to "[Script Error: ...]" lines.
func (b *Bus) Trigger(event Type, p *Payload) []string {
	var out []string
	for _, h := range b.hooks[event] {
		if !filterMatches(h.Filter, p) {
			continue
		}
		lines, err := h.Fn(p)
		out = append(out, lines...)
		if err != nil {
			out = append(out, fmt.Sprintf("[Script Error: %v]", err))
		}
	}
	return out
}

// filterMatches reports whether a hook's filter accepts the payload.
// Every filter key must be present; a slice value means membership.
func filterMatches(filter map[string]any, p *Payload) bool {
	for key, want := range filter {
		got, ok := p.Field(key)
		if !ok {
			return false
		}
		if list, isList := want.([]any); isList {
			found := false
			for _, v := range list {
				if valueEqual(got, v) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
			continue
		}
		if !valueEqual(got, want) {
			return false
		}
	}
	return true
}

// valueEqual compares payload and filter values, tolerating the int
// widths different front ends produce.
func valueEqual(got, want any) bool {
	gi, gok := asInt(got)
	wi, wok := asInt(want)
	if gok && wok {
		return gi == wi
	}
	return got == want
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// RegisterCommand adds a custom command. Later registrations of the
// same verb replace earlier ones.
func (b *Bus) RegisterCommand(c *Command) {
	for i, prev := range b.commands {
		if prev.Verb == c.Verb {
			b.commands[i] = c
			return
		}
	}
	b.commands = append(b.commands, c)
}

// FindCommand matches a typed verb against registered commands, first
// case-sensitively, then lower-cased.
func (b *Bus) FindCommand(verb string) *Command {
	for _, c := range b.commands {
		if c.Verb == verb || containsString(c.Aliases, verb) {
			return c
		}
	}
	lower := strings.ToLower(verb)
	for _, c := range b.commands {
		if c.Verb == lower || containsString(c.Aliases, lower) {
			return c
		}
	}
	return nil
}

// Commands returns the registered custom commands in registration order.
func (b *Bus) Commands() []*Command {
	return b.commands
}

// RunCommand executes a custom command body, converting any error to a
// "[Command Error: ...]" line.
func (b *Bus) RunCommand(c *Command, args string) []string {
	lines, err := c.Fn(args)
	if err != nil {
		lines = append(lines, fmt.Sprintf("[Command Error: %v]", err))
	}
	return lines
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
