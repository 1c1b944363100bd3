// Package loader reads adventure world files. Loading is all or
// nothing: a file that fails to parse or validate produces no world.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/sagacraft/sagacraft/engine/world"
	"github.com/sagacraft/sagacraft/types"
)

// ErrNotFound marks a world file that does not exist, as distinct from
// one that exists but cannot be parsed.
var ErrNotFound = errors.New("world file not found")

// ErrBadFormat marks a world file that exists but is not valid.
var ErrBadFormat = errors.New("malformed world file")

// worldFile mirrors the on-disk adventure format: entity arrays plus
// top-level metadata.
type worldFile struct {
	Title     string            `json:"title"`
	Intro     string            `json:"intro"`
	StartRoom int               `json:"start_room"`
	Rooms     []*types.Room     `json:"rooms"`
	Items     []*types.Item     `json:"items"`
	Monsters  []*types.Monster  `json:"monsters"`
	Puzzles   []*types.Puzzle   `json:"puzzles"`
	Dialogues []*types.Dialogue `json:"dialogues"`
	Quests    []*types.Quest    `json:"quests"`
	Player    *playerFile       `json:"player"`
	Settings  settingsFile      `json:"settings"`
}

type playerFile struct {
	Name      string `json:"name"`
	Hardiness int    `json:"hardiness"`
	Agility   int    `json:"agility"`
	Charisma  int    `json:"charisma"`
	Gold      int    `json:"gold"`
}

type settingsFile struct {
	AllowSave *bool `json:"allow_save"`
}

// Load reads and validates a world file, returning a ready-to-play
// world.
func Load(path string) (*world.World, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading world file: %w", err)
	}
	return Parse(data)
}

// Parse builds a world from raw world-file bytes.
func Parse(data []byte) (*world.World, error) {
	var wf worldFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	w := world.New()
	w.Title = wf.Title
	w.Intro = wf.Intro
	w.StartRoom = wf.StartRoom
	w.AllowSave = wf.Settings.AllowSave == nil || *wf.Settings.AllowSave

	for _, r := range wf.Rooms {
		if r.Exits == nil {
			r.Exits = map[string]int{}
		}
		w.Rooms[r.ID] = r
	}
	for _, it := range wf.Items {
		w.Items[it.ID] = it
	}
	for _, m := range wf.Monsters {
		if m.Health == 0 && !m.Dead {
			m.Health = m.Hardiness
		}
		w.Monsters[m.ID] = m
	}
	for _, pz := range wf.Puzzles {
		w.Puzzles[pz.ID] = pz
	}
	for i, d := range wf.Dialogues {
		w.Dialogues[i+1] = d
	}
	for _, q := range wf.Quests {
		if q.Status == "" {
			q.Status = types.QuestNotStarted
		}
		w.Quests[q.ID] = q
	}

	pl := w.Player
	pl.CurrentRoom = wf.StartRoom
	pl.Level = 1
	if wf.Player != nil {
		pl.Name = wf.Player.Name
		pl.Hardiness = wf.Player.Hardiness
		pl.Agility = wf.Player.Agility
		pl.Charisma = wf.Player.Charisma
		pl.Gold = wf.Player.Gold
	}
	if pl.Name == "" {
		pl.Name = "Adventurer"
	}
	if pl.Hardiness == 0 {
		pl.Hardiness = 20
	}
	pl.Health = pl.Hardiness

	// Player inventory is whatever starts at location 0, lowest id
	// first so the starting order is stable.
	for _, it := range wf.Items {
		if it.Location == types.LocInventory {
			pl.Inventory = append(pl.Inventory, it.ID)
		}
	}
	sort.Ints(pl.Inventory)

	if err := validate(w); err != nil {
		return nil, err
	}
	return w, nil
}
