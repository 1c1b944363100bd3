package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sagacraft/sagacraft/engine/world"
	"github.com/sagacraft/sagacraft/types"
)

// ValidationError collects every problem found in a world file so an
// author sees them all at once.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("world validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Unwrap lets callers test for ErrBadFormat with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrBadFormat
}

// validate checks referential integrity: every exit, location, and
// cross-reference must point at something that exists.
func validate(w *world.World) error {
	ve := &ValidationError{}

	if w.Title == "" {
		ve.Errors = append(ve.Errors, "title is required")
	}
	if len(w.Rooms) == 0 {
		ve.Errors = append(ve.Errors, "world has no rooms")
	}
	if _, ok := w.Rooms[w.StartRoom]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf("start_room %d is not a defined room", w.StartRoom))
	}

	for _, id := range sortedRoomIDs(w) {
		room := w.Rooms[id]
		dirs := make([]string, 0, len(room.Exits))
		for d := range room.Exits {
			dirs = append(dirs, d)
		}
		sort.Strings(dirs)
		for _, d := range dirs {
			dest := room.Exits[d]
			if dest == 0 {
				continue
			}
			if _, ok := w.Rooms[dest]; !ok {
				ve.Errors = append(ve.Errors,
					fmt.Sprintf("room %d (%s): exit %s points at undefined room %d", room.ID, room.Name, d, dest))
			}
		}
	}

	for _, id := range sortedItemIDs(w) {
		it := w.Items[id]
		loc := it.Location
		if loc == types.LocInventory || loc == types.RemovedRoom {
			continue
		}
		_, inRoom := w.Rooms[loc]
		_, onMonster := w.Monsters[loc]
		_, inContainer := w.Items[loc]
		if !inRoom && !onMonster && !inContainer {
			ve.Errors = append(ve.Errors,
				fmt.Sprintf("item %d (%s): location %d is not a room, monster, or container", it.ID, it.Name, loc))
		}
		if inRoom && onMonster {
			ve.Warnings = append(ve.Warnings,
				fmt.Sprintf("item %d (%s): location %d is both a room id and a monster id", it.ID, it.Name, loc))
		}
	}

	for _, id := range sortedMonsterIDs(w) {
		m := w.Monsters[id]
		if _, ok := w.Rooms[m.RoomID]; !ok && m.RoomID != types.RemovedRoom {
			ve.Errors = append(ve.Errors,
				fmt.Sprintf("monster %d (%s): room_id %d is not a defined room", m.ID, m.Name, m.RoomID))
		}
		if m.WeaponID != 0 {
			if _, ok := w.Items[m.WeaponID]; !ok {
				ve.Errors = append(ve.Errors,
					fmt.Sprintf("monster %d (%s): weapon_id %d is not a defined item", m.ID, m.Name, m.WeaponID))
			}
		}
		for _, itemID := range m.Inventory {
			if _, ok := w.Items[itemID]; !ok {
				ve.Errors = append(ve.Errors,
					fmt.Sprintf("monster %d (%s): inventory item %d is not defined", m.ID, m.Name, itemID))
			}
		}
	}

	for _, pz := range w.Puzzles {
		if _, ok := w.Rooms[pz.RoomID]; !ok {
			ve.Errors = append(ve.Errors,
				fmt.Sprintf("puzzle %d: room_id %d is not a defined room", pz.ID, pz.RoomID))
		}
		if pz.RequiredItem != 0 {
			if _, ok := w.Items[pz.RequiredItem]; !ok {
				ve.Errors = append(ve.Errors,
					fmt.Sprintf("puzzle %d: required_item %d is not a defined item", pz.ID, pz.RequiredItem))
			}
		}
		for _, itemID := range pz.RevealsItems {
			if _, ok := w.Items[itemID]; !ok {
				ve.Errors = append(ve.Errors,
					fmt.Sprintf("puzzle %d: reveals item %d which is not defined", pz.ID, itemID))
			}
		}
	}

	for _, d := range w.Dialogues {
		if _, ok := w.Monsters[d.NPCID]; !ok {
			ve.Errors = append(ve.Errors,
				fmt.Sprintf("dialogue for npc %d: npc is not defined", d.NPCID))
		}
		for _, t := range d.Topics {
			if t.UnlocksQuest != 0 {
				if _, ok := w.Quests[t.UnlocksQuest]; !ok {
					ve.Errors = append(ve.Errors,
						fmt.Sprintf("dialogue topic %q: unlocks undefined quest %d", t.Keyword, t.UnlocksQuest))
				}
			}
			if t.GivesItem != 0 {
				if _, ok := w.Items[t.GivesItem]; !ok {
					ve.Errors = append(ve.Errors,
						fmt.Sprintf("dialogue topic %q: gives undefined item %d", t.Keyword, t.GivesItem))
				}
			}
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func sortedRoomIDs(w *world.World) []int {
	ids := make([]int, 0, len(w.Rooms))
	for id := range w.Rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func sortedItemIDs(w *world.World) []int {
	ids := make([]int, 0, len(w.Items))
	for id := range w.Items {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func sortedMonsterIDs(w *world.World) []int {
	ids := make([]int, 0, len(w.Monsters))
	for id := range w.Monsters {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
