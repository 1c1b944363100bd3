package engine

import (
	"fmt"
	"strings"

	"github.com/sagacraft/sagacraft/engine/events"
	"github.com/sagacraft/sagacraft/types"
)

func (e *Engine) handleGet(intent types.Intent) []string {
	name := intent.Target
	if name == "" {
		name = intent.Object
	}
	if name == "" {
		return []string{"Get what?"}
	}

	it := e.World.FindItemInRoom(name, e.World.Player.CurrentRoom)
	if it == nil {
		return []string{fmt.Sprintf("You don't see a %s here.", name)}
	}
	if !it.IsTakeable {
		return []string{fmt.Sprintf("You can't take the %s.", it.Name)}
	}

	p := e.payload()
	p.Item = it
	out := e.Bus.Trigger(events.OnTakeItem, p)
	if p.Cancel {
		if p.Message != "" {
			return append(out, p.Message)
		}
		return append(out, fmt.Sprintf("You can't take the %s.", it.Name))
	}

	e.World.AddToInventory(it)
	out = append(out, fmt.Sprintf("You take the %s.", it.Name))
	return append(out, e.advanceQuests("collect_item", it.ID)...)
}

func (e *Engine) handleDrop(intent types.Intent) []string {
	if intent.Target == "" {
		return []string{"Drop what?"}
	}

	it := e.World.FindInventoryItem(intent.Target)
	if it == nil {
		return []string{fmt.Sprintf("You don't have a %s.", intent.Target)}
	}

	p := e.payload()
	p.Item = it
	out := e.Bus.Trigger(events.OnDropItem, p)
	if p.Cancel {
		if p.Message != "" {
			return append(out, p.Message)
		}
		return append(out, fmt.Sprintf("You find you can't let go of the %s.", it.Name))
	}

	if e.World.Player.EquippedWeapon == it.ID {
		e.World.Player.EquippedWeapon = 0
	}
	if e.World.Player.EquippedArmor == it.ID {
		e.World.Player.EquippedArmor = 0
	}
	e.World.RemoveFromInventory(it, e.World.Player.CurrentRoom)
	return append(out, fmt.Sprintf("You drop the %s.", it.Name))
}

func (e *Engine) handlePut(intent types.Intent) []string {
	if intent.Object == "" || intent.Container == "" {
		return []string{"Put what where?"}
	}

	it := e.World.FindInventoryItem(intent.Object)
	if it == nil {
		return []string{fmt.Sprintf("You don't have a %s.", intent.Object)}
	}
	container := e.World.FindItemInRoom(intent.Container, e.World.Player.CurrentRoom)
	if container == nil {
		container = e.World.FindInventoryItem(intent.Container)
	}
	if container == nil {
		return []string{fmt.Sprintf("You don't see a %s here.", intent.Container)}
	}
	if container.Type != types.ItemContainer {
		return []string{fmt.Sprintf("The %s won't hold anything.", container.Name)}
	}

	e.World.RemoveFromInventory(it, container.ID)
	return []string{fmt.Sprintf("You put the %s in the %s.", it.Name, container.Name)}
}

func (e *Engine) handleUse(intent types.Intent) []string {
	if intent.Target == "" {
		return []string{"Use what?"}
	}

	it := e.World.FindInventoryItem(intent.Target)
	if it == nil {
		it = e.World.FindItemInRoom(intent.Target, e.World.Player.CurrentRoom)
	}
	if it == nil {
		return []string{fmt.Sprintf("You don't have a %s.", intent.Target)}
	}

	p := e.payload()
	p.Item = it
	out := e.Bus.Trigger(events.OnUseItem, p)
	if p.Cancel || p.Handled {
		if p.Message != "" {
			out = append(out, p.Message)
		}
		return out
	}

	if it.HealAmount > 0 {
		return append(out, e.consumeItem(it)...)
	}
	return append(out, fmt.Sprintf("You fiddle with the %s, but nothing happens.", it.Name))
}

func (e *Engine) handleRead(intent types.Intent) []string {
	if intent.Target == "" {
		return []string{"Read what?"}
	}

	it := e.World.FindInventoryItem(intent.Target)
	if it == nil {
		it = e.World.FindItemInRoom(intent.Target, e.World.Player.CurrentRoom)
	}
	if it == nil {
		return []string{fmt.Sprintf("You don't see a %s here.", intent.Target)}
	}
	if it.Type != types.ItemReadable {
		return []string{fmt.Sprintf("There is nothing written on the %s.", it.Name)}
	}
	return []string{fmt.Sprintf("The %s reads:", it.Name), it.Description}
}

func (e *Engine) handleConsume(intent types.Intent, kind types.ItemType) []string {
	verb := "eat"
	if kind == types.ItemDrinkable {
		verb = "drink"
	}
	if intent.Target == "" {
		return []string{fmt.Sprintf("%s what?", capitalize(verb))}
	}

	it := e.World.FindInventoryItem(intent.Target)
	if it == nil {
		return []string{fmt.Sprintf("You don't have a %s.", intent.Target)}
	}
	if it.Type != kind {
		return []string{fmt.Sprintf("You can't %s the %s.", verb, it.Name)}
	}
	return e.consumeItem(it)
}

// consumeItem applies healing and removes the item from play.
func (e *Engine) consumeItem(it *types.Item) []string {
	pl := e.World.Player
	out := []string{fmt.Sprintf("You consume the %s.", it.Name)}
	if it.HealAmount > 0 {
		healed := it.HealAmount
		if pl.Health+healed > pl.Hardiness {
			healed = pl.Hardiness - pl.Health
		}
		pl.Health += healed
		if healed > 0 {
			out = append(out, fmt.Sprintf("You feel better. (+%d health)", healed))
		} else {
			out = append(out, "You were already at full health.")
		}
	}
	e.World.RemoveFromInventory(it, types.RemovedRoom)
	return out
}

func (e *Engine) handleEquip(intent types.Intent) []string {
	if intent.Target == "" {
		return []string{"Equip what?"}
	}

	it := e.World.FindInventoryItem(intent.Target)
	if it == nil {
		return []string{fmt.Sprintf("You don't have a %s.", intent.Target)}
	}

	pl := e.World.Player
	switch {
	case it.IsWeapon:
		pl.EquippedWeapon = it.ID
		return []string{fmt.Sprintf("You wield the %s.", it.Name)}
	case it.IsArmor || it.IsWearable:
		pl.EquippedArmor = it.ID
		return []string{fmt.Sprintf("You put on the %s.", it.Name)}
	default:
		return []string{fmt.Sprintf("You can't equip the %s.", it.Name)}
	}
}

func (e *Engine) handleUnequip(intent types.Intent) []string {
	if intent.Target == "" {
		return []string{"Unequip what?"}
	}

	it := e.World.FindInventoryItem(intent.Target)
	if it == nil {
		return []string{fmt.Sprintf("You don't have a %s.", intent.Target)}
	}

	pl := e.World.Player
	switch it.ID {
	case pl.EquippedWeapon:
		pl.EquippedWeapon = 0
		return []string{fmt.Sprintf("You put away the %s.", it.Name)}
	case pl.EquippedArmor:
		pl.EquippedArmor = 0
		return []string{fmt.Sprintf("You take off the %s.", it.Name)}
	default:
		return []string{fmt.Sprintf("The %s isn't equipped.", it.Name)}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
