package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sagacraft/sagacraft/engine/events"
	"github.com/sagacraft/sagacraft/engine/parser"
	"github.com/sagacraft/sagacraft/types"
)

func (e *Engine) handleMove(intent types.Intent) []string {
	room := e.World.CurrentRoom()
	if room == nil {
		return []string{"You are nowhere. Something has gone very wrong."}
	}

	dir := intent.Direction
	if dir == "" && intent.Target != "" {
		dir = e.directionToward(room, intent.Target)
		if dir == "" {
			return []string{fmt.Sprintf("You can't see how to get to '%s' from here.", intent.Target)}
		}
	}
	if dir == "" {
		return []string{"Go where?"}
	}

	dest := room.Exit(dir)
	if dest == 0 {
		return []string{"You can't go that way."}
	}

	for _, pz := range e.World.PuzzlesInRoom(room.ID) {
		if pz.Type == types.PuzzleLockedDoor && !pz.Solved && pz.ExitDirection == dir {
			if pz.FailureMsg != "" {
				return []string{pz.FailureMsg}
			}
			return []string{fmt.Sprintf("The way %s is blocked.", dir)}
		}
	}

	p := e.payload()
	p.Direction = dir
	p.RoomID = room.ID
	out := e.Bus.Trigger(events.OnExitRoom, p)
	if p.Cancel {
		if p.Message != "" {
			return append(out, p.Message)
		}
		return append(out, "Something prevents you from leaving.")
	}

	e.World.Player.CurrentRoom = dest
	e.World.TurnCount++

	enter := e.payload()
	enter.Direction = dir
	enter.RoomID = dest
	out = append(out, e.Bus.Trigger(events.OnEnterRoom, enter)...)
	// A hook may rewrite room_id to teleport the player.
	if enter.RoomID != dest {
		if _, ok := e.World.Rooms[enter.RoomID]; ok {
			e.World.Player.CurrentRoom = enter.RoomID
		}
	}

	out = append(out, e.advanceQuests("reach_room", e.World.Player.CurrentRoom)...)
	return append(out, e.Look()...)
}

// directionToward finds the exit leading to an adjacent room whose name
// matches what the player typed.
func (e *Engine) directionToward(room *types.Room, name string) string {
	dirs := make([]string, 0, len(room.Exits))
	for d := range room.Exits {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	for _, d := range dirs {
		dest, ok := e.World.Rooms[room.Exits[d]]
		if ok && strings.Contains(strings.ToLower(dest.Name), strings.ToLower(name)) {
			return d
		}
	}
	return ""
}

func (e *Engine) handleLook(intent types.Intent, raw string) []string {
	if intent.Target == "" {
		return e.Look()
	}

	room := e.World.Player.CurrentRoom
	if it := e.World.FindItemInRoom(intent.Target, room); it != nil {
		return e.examineItem(it)
	}
	if it := e.World.FindInventoryItem(intent.Target); it != nil {
		return e.examineItem(it)
	}
	if m := e.World.FindMonsterInRoom(intent.Target, room); m != nil {
		return e.examineMonster(m)
	}
	if c := e.World.FindCompanion(intent.Target); c != nil {
		return []string{fmt.Sprintf("%s (%s) — health %d/%d, loyalty %d.",
			c.Name, c.Role, c.Health, c.MaxHealth, c.Loyalty)}
	}

	// The parser routes any unrecognized verb here as a look at the
	// whole phrase, so a failed resolve may really be an unknown
	// command a mod wants to claim.
	first, _, _ := strings.Cut(strings.TrimSpace(raw), " ")
	if !parser.KnowsVerb(first) {
		return e.unknownCommand(raw)
	}
	return []string{fmt.Sprintf("You don't see a '%s' here.", intent.Target)}
}

func (e *Engine) examineItem(it *types.Item) []string {
	p := e.payload()
	p.Item = it
	out := e.Bus.Trigger(events.OnExamine, p)
	if p.Handled {
		return out
	}
	desc := it.Description
	if desc == "" {
		desc = fmt.Sprintf("You see nothing special about the %s.", it.Name)
	}
	out = append(out, desc)
	if it.Type == types.ItemContainer {
		var names []string
		for _, inner := range e.World.ItemsInRoom(it.ID) {
			names = append(names, inner.Name)
		}
		if len(names) > 0 {
			out = append(out, "Inside: "+strings.Join(names, ", "))
		} else {
			out = append(out, "It is empty.")
		}
	}
	return out
}

func (e *Engine) examineMonster(m *types.Monster) []string {
	p := e.payload()
	p.NPC = m
	out := e.Bus.Trigger(events.OnExamine, p)
	if p.Handled {
		return out
	}
	desc := m.Description
	if desc == "" {
		desc = fmt.Sprintf("%s looks back at you.", m.Name)
	}
	out = append(out, desc)
	switch {
	case m.Health <= m.Hardiness/3:
		out = append(out, fmt.Sprintf("%s is badly wounded.", m.Name))
	case m.Health < m.Hardiness:
		out = append(out, fmt.Sprintf("%s bears some wounds.", m.Name))
	}
	return out
}

func (e *Engine) handleSearch(intent types.Intent) []string {
	room := e.World.Player.CurrentRoom
	for _, pz := range e.World.PuzzlesInRoom(room) {
		if pz.Type != types.PuzzleHiddenObject || pz.Solved {
			continue
		}
		pz.Solved = true
		out := []string{}
		if pz.SuccessMsg != "" {
			out = append(out, pz.SuccessMsg)
		}
		for _, itemID := range pz.RevealsItems {
			if it, ok := e.World.Items[itemID]; ok {
				it.Location = room
				out = append(out, fmt.Sprintf("You discover the %s!", it.Name))
			}
		}
		if len(out) == 0 {
			out = append(out, "Your search turns something up.")
		}
		return out
	}
	return []string{"You search carefully but find nothing of interest."}
}

func (e *Engine) handleOpen(intent types.Intent) []string {
	room := e.World.Player.CurrentRoom
	for _, pz := range e.World.PuzzlesInRoom(room) {
		if pz.Type != types.PuzzleLockedDoor || pz.Solved {
			continue
		}
		if pz.RequiredItem != 0 && !e.World.HasInventoryItem(pz.RequiredItem) {
			if pz.FailureMsg != "" {
				return []string{pz.FailureMsg}
			}
			return []string{"It is locked, and you have nothing that fits."}
		}
		pz.Solved = true
		if pz.SuccessMsg != "" {
			return []string{pz.SuccessMsg}
		}
		return []string{"It unlocks with a satisfying click."}
	}
	return []string{"There is nothing here to open."}
}

func (e *Engine) handleClose(intent types.Intent) []string {
	if intent.Target == "" {
		return []string{"Close what?"}
	}
	room := e.World.Player.CurrentRoom
	if it := e.World.FindItemInRoom(intent.Target, room); it != nil && it.Type == types.ItemContainer {
		return []string{fmt.Sprintf("You close the %s.", it.Name)}
	}
	return []string{"There is nothing here that needs closing."}
}

func (e *Engine) handleFlee() []string {
	room := e.World.CurrentRoom()
	if room == nil || len(room.Exits) == 0 {
		return []string{"There is nowhere to run!"}
	}

	dirs := make([]string, 0, len(room.Exits))
	for d := range room.Exits {
		if room.Exits[d] != 0 {
			dirs = append(dirs, d)
		}
	}
	if len(dirs) == 0 {
		return []string{"There is nowhere to run!"}
	}
	sort.Strings(dirs)
	dir := dirs[e.RNG.Roll(len(dirs))-1]

	out := []string{fmt.Sprintf("You flee %s!", dir)}
	return append(out, e.handleMove(types.Intent{Action: types.ActionMove, Direction: dir})...)
}
