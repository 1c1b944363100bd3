// Package engine implements the command pipeline: one call to
// ProcessCommand parses the input, consults the mod bus, dispatches to
// a built-in handler, and returns the narrative output in order.
package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/sagacraft/sagacraft/engine/events"
	"github.com/sagacraft/sagacraft/engine/parser"
	"github.com/sagacraft/sagacraft/engine/world"
	"github.com/sagacraft/sagacraft/types"
)

// Engine drives one play session. All calls must come from a single
// goroutine; nothing here is safe for concurrent use.
type Engine struct {
	World *world.World
	Bus   *events.Bus
	RNG   *RNG
	Log   *slog.Logger

	// QuitRequested is set by the quit handler; the front end decides
	// what to do with it.
	QuitRequested bool
}

// Options configures a new engine.
type Options struct {
	Seed   int64
	Logger *slog.Logger
}

// New creates an engine around a loaded world.
func New(w *world.World, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		World: w,
		Bus:   events.NewBus(),
		RNG:   NewRNG(opts.Seed),
		Log:   log,
	}
}

// RestoreRNG re-creates the RNG from a saved seed and position.
func (e *Engine) RestoreRNG(seed, position int64) {
	e.RNG = RestoreRNG(seed, position)
}

// NotifySaving fires the hook that runs before the world is written to
// a save slot, and returns any hook output.
func (e *Engine) NotifySaving() []string {
	return e.Bus.Trigger(events.OnSave, e.payload())
}

// NotifyLoaded fires the hook that runs after a save has been applied
// to the world, and returns any hook output.
func (e *Engine) NotifyLoaded() []string {
	return e.Bus.Trigger(events.OnLoad, e.payload())
}

// ProcessCommand runs one player command to completion and returns the
// narrative lines in the order they were produced.
func (e *Engine) ProcessCommand(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []string{"What do you want to do?"}
	}
	if e.World.GameOver {
		return []string{"The adventure is over. Load a save to continue playing."}
	}

	verb, args, _ := strings.Cut(trimmed, " ")
	args = strings.TrimSpace(args)
	e.Log.Debug("command", "input", trimmed)

	// Generic command event first: mods can veto or fully handle any
	// input before the engine even parses it.
	p := &events.Payload{
		Player:  e.World.Player,
		Room:    e.World.CurrentRoom(),
		Command: trimmed,
		Verb:    strings.ToLower(verb),
		Args:    args,
	}
	out := e.Bus.Trigger(events.OnCommand, p)
	if p.Cancel {
		if p.Message != "" {
			out = append(out, p.Message)
		}
		return out
	}
	if p.Handled {
		return out
	}

	// Custom commands replace built-in dispatch entirely.
	if cmd := e.Bus.FindCommand(verb); cmd != nil {
		return append(out, e.Bus.RunCommand(cmd, args)...)
	}

	intent := parser.Parse(trimmed)
	out = append(out, e.dispatch(intent, trimmed)...)
	return out
}

func (e *Engine) dispatch(intent types.Intent, raw string) []string {
	switch intent.Action {
	case types.ActionNone:
		return []string{"What do you want to do?"}
	case types.ActionMove:
		return e.handleMove(intent)
	case types.ActionLook, types.ActionExamine:
		return e.handleLook(intent, raw)
	case types.ActionSearch:
		return e.handleSearch(intent)
	case types.ActionGet:
		return e.handleGet(intent)
	case types.ActionDrop:
		return e.handleDrop(intent)
	case types.ActionPut:
		return e.handlePut(intent)
	case types.ActionInventory:
		return e.ShowInventory()
	case types.ActionStatus:
		return e.ShowStatus()
	case types.ActionEquip:
		return e.handleEquip(intent)
	case types.ActionUnequip:
		return e.handleUnequip(intent)
	case types.ActionAttack:
		return e.handleAttack(intent)
	case types.ActionFlee:
		return e.handleFlee()
	case types.ActionTalk:
		return e.handleTalk(intent)
	case types.ActionGive:
		return e.handleGive(intent)
	case types.ActionTrade:
		return e.handleTrade(intent)
	case types.ActionBuy:
		return e.handleBuy(intent)
	case types.ActionSell:
		return e.handleSell(intent)
	case types.ActionUse:
		return e.handleUse(intent)
	case types.ActionOpen:
		return e.handleOpen(intent)
	case types.ActionClose:
		return e.handleClose(intent)
	case types.ActionRead:
		return e.handleRead(intent)
	case types.ActionEat:
		return e.handleConsume(intent, types.ItemEdible)
	case types.ActionDrink:
		return e.handleConsume(intent, types.ItemDrinkable)
	case types.ActionQuests:
		return e.ShowQuests()
	case types.ActionParty:
		return e.ShowParty()
	case types.ActionRecruit:
		return e.handleRecruit(intent)
	case types.ActionDismiss:
		return e.handleDismiss(intent)
	case types.ActionPartyOrder:
		return e.handlePartyOrder(intent)
	case types.ActionGather:
		return e.handleGather()
	case types.ActionQuestion:
		return e.handleQuestion(intent)
	case types.ActionHelp:
		return e.ShowHelp()
	case types.ActionQuit:
		e.QuitRequested = true
		return []string{"Farewell, adventurer."}
	default:
		return e.unknownCommand(raw)
	}
}

// unknownCommand gives mods one last chance at input no handler claims.
func (e *Engine) unknownCommand(raw string) []string {
	verb, args, _ := strings.Cut(raw, " ")
	p := &events.Payload{
		Player: e.World.Player,
		Room:   e.World.CurrentRoom(),
		Verb:   strings.ToLower(verb),
		Args:   strings.TrimSpace(args),
	}
	out := e.Bus.Trigger(events.OnUnknownCommand, p)
	if p.Handled {
		return out
	}
	return append(out, fmt.Sprintf("I don't understand '%s'. Type 'help' for commands.", raw))
}

// Look renders the player's current room.
func (e *Engine) Look() []string {
	room := e.World.CurrentRoom()
	if room == nil {
		return []string{"You are nowhere. Something has gone very wrong."}
	}

	out := []string{room.Name}
	if room.IsDark && !e.hasLight() {
		out = append(out, "It is pitch dark. You can't see a thing.")
		return out
	}
	out = append(out, room.Description)

	if items := e.World.ItemsInRoom(room.ID); len(items) > 0 {
		names := make([]string, len(items))
		for i, it := range items {
			names[i] = it.Name
		}
		out = append(out, "You see: "+strings.Join(names, ", "))
	}
	if monsters := e.World.MonstersInRoom(room.ID); len(monsters) > 0 {
		names := make([]string, len(monsters))
		for i, m := range monsters {
			names[i] = m.Name
		}
		out = append(out, "Also here: "+strings.Join(names, ", "))
	}
	if len(room.Exits) > 0 {
		dirs := make([]string, 0, len(room.Exits))
		for d := range room.Exits {
			dirs = append(dirs, d)
		}
		sort.Strings(dirs)
		out = append(out, "Exits: "+strings.Join(dirs, ", "))
	}
	return out
}

func (e *Engine) hasLight() bool {
	for _, it := range e.World.InventoryItems() {
		if it.IsLight {
			return true
		}
	}
	return false
}

// ShowInventory lists carried items with total weight and gold.
func (e *Engine) ShowInventory() []string {
	items := e.World.InventoryItems()
	if len(items) == 0 {
		return []string{fmt.Sprintf("You are carrying nothing. Gold: %d", e.World.Player.Gold)}
	}
	out := []string{"You are carrying:"}
	for _, it := range items {
		line := "  " + it.Name
		if it.ID == e.World.Player.EquippedWeapon || it.ID == e.World.Player.EquippedArmor {
			line += " (equipped)"
		}
		out = append(out, line)
	}
	out = append(out, fmt.Sprintf("Total weight: %d  Gold: %d", e.World.CarriedWeight(), e.World.Player.Gold))
	return out
}

// ShowStatus renders the player's stats and equipment.
func (e *Engine) ShowStatus() []string {
	pl := e.World.Player
	out := []string{
		fmt.Sprintf("%s  (level %d, %d XP)", pl.Name, pl.Level, pl.Experience),
		fmt.Sprintf("Health: %d/%d", pl.Health, pl.Hardiness),
		fmt.Sprintf("Hardiness: %d  Agility: %d  Charisma: %d", pl.Hardiness, pl.Agility, pl.Charisma),
		fmt.Sprintf("Gold: %d", pl.Gold),
	}
	if w, ok := e.World.Items[pl.EquippedWeapon]; ok && pl.EquippedWeapon != 0 {
		out = append(out, "Weapon: "+w.Name)
	} else {
		out = append(out, "Weapon: none (unarmed)")
	}
	if a, ok := e.World.Items[pl.EquippedArmor]; ok && pl.EquippedArmor != 0 {
		out = append(out, "Armor: "+a.Name)
	}
	return out
}

// ShowQuests lists active quests with objective progress, then the
// completed ones.
func (e *Engine) ShowQuests() []string {
	var out []string
	for _, id := range e.World.Player.ActiveQuests {
		q, ok := e.World.Quests[id]
		if !ok {
			continue
		}
		out = append(out, fmt.Sprintf("%s (in progress)", q.Title))
		for i := range q.Objectives {
			o := &q.Objectives[i]
			mark := " "
			if o.Complete() {
				mark = "x"
			}
			out = append(out, fmt.Sprintf("  [%s] %s (%d/%d)", mark, o.Description, o.Progress, o.Quantity))
		}
	}
	for _, id := range e.World.Player.CompletedQuests {
		if q, ok := e.World.Quests[id]; ok {
			out = append(out, fmt.Sprintf("%s (completed)", q.Title))
		}
	}
	if len(out) == 0 {
		return []string{"You have no quests."}
	}
	return out
}

// ShowHelp lists the built-in command families plus any mod commands.
func (e *Engine) ShowHelp() []string {
	out := []string{
		"Movement: go <direction>, enter <place>, flee",
		"World: look, examine <thing>, search, open, close, read",
		"Items: get/drop/put <item>, use, eat, drink, equip, unequip, give <item> to <npc>",
		"People: talk to <npc>, ask <npc> about <topic>, trade/buy/sell, attack <npc>",
		"Party: recruit <npc>, dismiss, party, tell <name> to <order>, regroup",
		"Info: inventory, status, quests, help, quit",
	}
	if cmds := e.Bus.Commands(); len(cmds) > 0 {
		out = append(out, "Mod commands:")
		for _, c := range cmds {
			if c.Help != "" {
				out = append(out, "  "+c.Help)
			} else {
				out = append(out, "  "+c.Verb)
			}
		}
	}
	return out
}

func (e *Engine) handleQuestion(intent types.Intent) []string {
	text := intent.Text
	switch {
	case strings.Contains(text, "where am i"):
		return e.Look()
	case strings.Contains(text, "who is here"), strings.Contains(text, "who's here"):
		monsters := e.World.MonstersInRoom(e.World.Player.CurrentRoom)
		if len(monsters) == 0 {
			return []string{"You are alone here."}
		}
		names := make([]string, len(monsters))
		for i, m := range monsters {
			names[i] = m.Name
		}
		return []string{"Here with you: " + strings.Join(names, ", ")}
	case intent.QuestionType == "ability_check":
		return []string{"There is only one way to find out. Try it."}
	case intent.QuestionType == "existence_check":
		return []string{"Take a look around and see for yourself."}
	default:
		return []string{"You ponder the question, but no answer comes to mind."}
	}
}

// advanceQuests updates in-progress quest objectives of the given type
// and pays out rewards when a quest completes.
func (e *Engine) advanceQuests(objectiveType string, targetID int) []string {
	var out []string
	pl := e.World.Player
	for _, qid := range pl.ActiveQuests {
		q, ok := e.World.Quests[qid]
		if !ok || q.Status != types.QuestInProgress {
			continue
		}
		advanced := false
		for i := range q.Objectives {
			o := &q.Objectives[i]
			if o.Type != objectiveType || o.TargetID != targetID || o.Complete() {
				continue
			}
			o.Progress++
			advanced = true
			if o.Complete() {
				out = append(out, fmt.Sprintf("Objective complete: %s", o.Description))
			}
		}
		if advanced && q.Complete() {
			out = append(out, e.completeQuest(q)...)
		}
	}
	return out
}

func (e *Engine) completeQuest(q *types.Quest) []string {
	pl := e.World.Player
	q.Status = types.QuestCompleted
	for i, id := range pl.ActiveQuests {
		if id == q.ID {
			pl.ActiveQuests = append(pl.ActiveQuests[:i], pl.ActiveQuests[i+1:]...)
			break
		}
	}
	pl.CompletedQuests = append(pl.CompletedQuests, q.ID)
	pl.Gold += q.RewardGold
	pl.Experience += q.RewardXP
	out := []string{fmt.Sprintf("Quest complete: %s!", q.Title)}
	if q.RewardGold > 0 {
		out = append(out, fmt.Sprintf("You receive %d gold.", q.RewardGold))
	}
	if q.RewardXP > 0 {
		out = append(out, fmt.Sprintf("You gain %d experience.", q.RewardXP))
	}
	for _, itemID := range q.RewardItems {
		if it, ok := e.World.Items[itemID]; ok {
			e.World.AddToInventory(it)
			out = append(out, fmt.Sprintf("You receive the %s.", it.Name))
		}
	}
	return out
}

// startQuest moves a quest onto the player's log.
func (e *Engine) startQuest(questID int) []string {
	q, ok := e.World.Quests[questID]
	if !ok || q.Status != types.QuestNotStarted {
		return nil
	}
	q.Status = types.QuestInProgress
	e.World.Player.ActiveQuests = append(e.World.Player.ActiveQuests, q.ID)
	return []string{fmt.Sprintf("New quest: %s", q.Title)}
}

// payload returns a base payload with player and room filled in.
func (e *Engine) payload() *events.Payload {
	return &events.Payload{
		Player: e.World.Player,
		Room:   e.World.CurrentRoom(),
	}
}
