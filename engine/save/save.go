// Package save implements numbered save slots as JSON files.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sagacraft/sagacraft/engine/world"
	"github.com/sagacraft/sagacraft/types"
)

// ErrNoSave marks an empty slot. Callers treat it as a benign "no save
// here" rather than a failure.
var ErrNoSave = errors.New("no save in that slot")

// SaveData is the JSON save-slot format. Entity registries are
// serialized as id-keyed maps so a loaded file restores exact ids.
type SaveData struct {
	Version     string                   `json:"version"`
	Timestamp   string                   `json:"timestamp"`
	Player      types.Player             `json:"player"`
	Companions  []*types.Companion       `json:"companions"`
	Rooms       map[int]*types.Room      `json:"rooms"`
	Items       map[int]*types.Item      `json:"items"`
	Monsters    map[int]*types.Monster   `json:"monsters"`
	Puzzles     map[int]*types.Puzzle    `json:"puzzles"`
	Quests      map[int]*types.Quest     `json:"quests"`
	Flags       map[string]bool          `json:"flags"`
	TurnCount   int                      `json:"turn_count"`
	GameOver    bool                     `json:"game_over"`
	RNGSeed     int64                    `json:"rng_seed"`
	RNGPosition int64                    `json:"rng_position"`
}

// FormatVersion is written into every save file.
const FormatVersion = "1"

// SlotPath returns the conventional file path for a slot.
func SlotPath(dir string, slot int) string {
	return filepath.Join(dir, fmt.Sprintf("save_slot_%d.json", slot))
}

// Snapshot captures the world into serializable save data.
func Snapshot(w *world.World, rngSeed, rngPosition int64) *SaveData {
	return &SaveData{
		Version:     FormatVersion,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Player:      *w.Player,
		Companions:  w.Companions,
		Rooms:       w.Rooms,
		Items:       w.Items,
		Monsters:    w.Monsters,
		Puzzles:     w.Puzzles,
		Quests:      w.Quests,
		Flags:       w.Flags,
		TurnCount:   w.TurnCount,
		GameOver:    w.GameOver,
		RNGSeed:     rngSeed,
		RNGPosition: rngPosition,
	}
}

// Write serializes a snapshot into a slot file, creating the saves
// directory if needed.
func Write(dir string, slot int, sd *SaveData) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating saves directory: %w", err)
	}
	data, err := json.MarshalIndent(sd, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding save: %w", err)
	}
	if err := os.WriteFile(SlotPath(dir, slot), data, 0o644); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	return nil
}

// Read loads a slot. A missing file returns ErrNoSave; anything else
// is a real failure.
func Read(dir string, slot int) (*SaveData, error) {
	data, err := os.ReadFile(SlotPath(dir, slot))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("reading save: %w", err)
	}

	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("decoding save: %w", err)
	}
	normalize(&sd)
	return &sd, nil
}

// normalize ensures maps and slices are never nil after load.
func normalize(sd *SaveData) {
	if sd.Rooms == nil {
		sd.Rooms = map[int]*types.Room{}
	}
	if sd.Items == nil {
		sd.Items = map[int]*types.Item{}
	}
	if sd.Monsters == nil {
		sd.Monsters = map[int]*types.Monster{}
	}
	if sd.Puzzles == nil {
		sd.Puzzles = map[int]*types.Puzzle{}
	}
	if sd.Quests == nil {
		sd.Quests = map[int]*types.Quest{}
	}
	if sd.Flags == nil {
		sd.Flags = map[string]bool{}
	}
	if sd.Player.Inventory == nil {
		sd.Player.Inventory = []int{}
	}
	if sd.Player.Flags == nil {
		sd.Player.Flags = map[string]bool{}
	}
}

// Apply restores a snapshot onto a world. Dialogues are world data the
// save format does not carry; they keep their loaded state.
func Apply(w *world.World, sd *SaveData) {
	player := sd.Player
	w.Player = &player
	w.Companions = sd.Companions
	w.Rooms = sd.Rooms
	w.Items = sd.Items
	w.Monsters = sd.Monsters
	w.Puzzles = sd.Puzzles
	w.Quests = sd.Quests
	w.Flags = sd.Flags
	w.TurnCount = sd.TurnCount
	w.GameOver = sd.GameOver
}
