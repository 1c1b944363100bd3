// Package world holds the mutable game state: id-keyed registries for
// every entity kind plus the lookups the command handlers resolve
// player phrasing against.
package world

import (
	"sort"
	"strings"

	"github.com/sagacraft/sagacraft/types"
)

// World is the complete in-memory game state. Registries are keyed by
// entity id and mutated in place by exactly one writer at a time (the
// running command handler or hook).
type World struct {
	Title     string
	Intro     string
	StartRoom int
	AllowSave bool

	Rooms     map[int]*types.Room
	Items     map[int]*types.Item
	Monsters  map[int]*types.Monster
	Puzzles   map[int]*types.Puzzle
	Dialogues map[int]*types.Dialogue
	Quests    map[int]*types.Quest

	Player     *types.Player
	Companions []*types.Companion
	Flags      map[string]bool

	TurnCount int
	GameOver  bool
}

// New returns an empty world with all registries allocated.
func New() *World {
	return &World{
		Rooms:     map[int]*types.Room{},
		Items:     map[int]*types.Item{},
		Monsters:  map[int]*types.Monster{},
		Puzzles:   map[int]*types.Puzzle{},
		Dialogues: map[int]*types.Dialogue{},
		Quests:    map[int]*types.Quest{},
		Player:    &types.Player{Flags: map[string]bool{}},
		Flags:     map[string]bool{},
	}
}

// CurrentRoom returns the player's room, or nil if the player is
// somewhere undefined.
func (w *World) CurrentRoom() *types.Room {
	return w.Rooms[w.Player.CurrentRoom]
}

// ItemsInRoom returns the items located in a room, in ascending id order.
func (w *World) ItemsInRoom(roomID int) []*types.Item {
	var out []*types.Item
	for _, id := range sortedKeys(w.Items) {
		if w.Items[id].Location == roomID {
			out = append(out, w.Items[id])
		}
	}
	return out
}

// MonstersInRoom returns the living monsters in a room, in ascending id
// order.
func (w *World) MonstersInRoom(roomID int) []*types.Monster {
	var out []*types.Monster
	for _, id := range sortedKeys(w.Monsters) {
		m := w.Monsters[id]
		if m.RoomID == roomID && !m.Dead {
			out = append(out, m)
		}
	}
	return out
}

// InventoryItems returns the player's carried items in inventory order.
func (w *World) InventoryItems() []*types.Item {
	var out []*types.Item
	for _, id := range w.Player.Inventory {
		if it, ok := w.Items[id]; ok {
			out = append(out, it)
		}
	}
	return out
}

// FindItemInRoom resolves a player-typed name against items in the
// room. Matching is case-insensitive substring; ties go to the lowest
// id so resolution is reproducible.
func (w *World) FindItemInRoom(name string, roomID int) *types.Item {
	for _, it := range w.ItemsInRoom(roomID) {
		if nameMatches(it.Name, name) {
			return it
		}
	}
	return nil
}

// FindInventoryItem resolves a name against the player's inventory.
func (w *World) FindInventoryItem(name string) *types.Item {
	for _, it := range w.InventoryItems() {
		if nameMatches(it.Name, name) {
			return it
		}
	}
	return nil
}

// FindMonsterInRoom resolves a name against living monsters in a room.
func (w *World) FindMonsterInRoom(name string, roomID int) *types.Monster {
	for _, m := range w.MonstersInRoom(roomID) {
		if nameMatches(m.Name, name) {
			return m
		}
	}
	return nil
}

// FindCompanion resolves a name against the party roster.
func (w *World) FindCompanion(name string) *types.Companion {
	for _, c := range w.Companions {
		if nameMatches(c.Name, name) {
			return c
		}
	}
	return nil
}

// MonsterItems returns the items a monster carries, in ascending id
// order.
func (w *World) MonsterItems(m *types.Monster) []*types.Item {
	var out []*types.Item
	for _, id := range m.Inventory {
		if it, ok := w.Items[id]; ok {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// HasInventoryItem reports whether the player carries the item id.
func (w *World) HasInventoryItem(itemID int) bool {
	return containsInt(w.Player.Inventory, itemID)
}

// AddToInventory moves an item into the player's inventory.
func (w *World) AddToInventory(it *types.Item) {
	it.Location = types.LocInventory
	if !containsInt(w.Player.Inventory, it.ID) {
		w.Player.Inventory = append(w.Player.Inventory, it.ID)
	}
}

// RemoveFromInventory drops an item from the inventory list and places
// it in the given room.
func (w *World) RemoveFromInventory(it *types.Item, roomID int) {
	it.Location = roomID
	for i, id := range w.Player.Inventory {
		if id == it.ID {
			w.Player.Inventory = append(w.Player.Inventory[:i], w.Player.Inventory[i+1:]...)
			return
		}
	}
}

// PuzzlesInRoom returns the puzzles attached to a room, ascending id.
func (w *World) PuzzlesInRoom(roomID int) []*types.Puzzle {
	var out []*types.Puzzle
	for _, id := range sortedKeys(w.Puzzles) {
		if w.Puzzles[id].RoomID == roomID {
			out = append(out, w.Puzzles[id])
		}
	}
	return out
}

// DialogueFor returns the dialogue tree for an NPC, or nil.
func (w *World) DialogueFor(npcID int) *types.Dialogue {
	for _, id := range sortedKeys(w.Dialogues) {
		if w.Dialogues[id].NPCID == npcID {
			return w.Dialogues[id]
		}
	}
	return nil
}

// SpawnItem creates a takeable item under the next free id and places
// it in a room.
func (w *World) SpawnItem(name string, roomID int) *types.Item {
	it := &types.Item{
		ID:         w.nextItemID(),
		Name:       name,
		Type:       types.ItemNormal,
		IsTakeable: true,
		Location:   roomID,
	}
	w.Items[it.ID] = it
	return it
}

// SpawnMonster creates a neutral monster under the next free id and
// places it in a room at full health.
func (w *World) SpawnMonster(name string, roomID, hardiness, agility int) *types.Monster {
	m := &types.Monster{
		ID:           w.nextMonsterID(),
		Name:         name,
		RoomID:       roomID,
		Hardiness:    hardiness,
		Agility:      agility,
		Health:       hardiness,
		Friendliness: types.Neutral,
	}
	w.Monsters[m.ID] = m
	return m
}

func (w *World) nextItemID() int {
	max := 0
	for id := range w.Items {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func (w *World) nextMonsterID() int {
	max := 0
	for id := range w.Monsters {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// CarriedWeight totals the weight of the player's inventory.
func (w *World) CarriedWeight() int {
	total := 0
	for _, it := range w.InventoryItems() {
		total += it.Weight
	}
	return total
}

func nameMatches(entityName, typed string) bool {
	if typed == "" {
		return false
	}
	return strings.Contains(strings.ToLower(entityName), strings.ToLower(typed))
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
