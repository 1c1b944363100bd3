package engine

import (
	"fmt"

	"github.com/sagacraft/sagacraft/engine/events"
	"github.com/sagacraft/sagacraft/types"
)

func (e *Engine) handleAttack(intent types.Intent) []string {
	name := intent.Target
	if name == "" {
		name = intent.Object
	}
	if name == "" {
		return []string{"Attack what?"}
	}

	m := e.World.FindMonsterInRoom(name, e.World.Player.CurrentRoom)
	if m == nil {
		return []string{fmt.Sprintf("There is no %s here to attack.", name)}
	}

	// Raising a hand against anyone makes them an enemy.
	m.Friendliness = types.Hostile

	damage := e.rollPlayerDamage(intent)

	p := e.payload()
	p.Monster = m
	p.Damage = damage
	out := e.Bus.Trigger(events.OnAttack, p)
	if p.Cancel {
		if p.Message != "" {
			return append(out, p.Message)
		}
		return append(out, "Your attack falters.")
	}
	damage = p.Damage

	m.Health -= damage
	out = append(out, fmt.Sprintf("You hit %s for %d damage!", m.Name, damage))

	if m.Health <= 0 {
		return append(out, e.killMonster(m)...)
	}

	out = append(out, e.companionAttacks(m)...)
	if m.Health <= 0 {
		return append(out, e.killMonster(m)...)
	}

	return append(out, e.counterAttack(m)...)
}

// rollPlayerDamage computes weapon dice for the equipped weapon, or an
// unarmed 1-3 roll.
func (e *Engine) rollPlayerDamage(intent types.Intent) int {
	weaponID := e.World.Player.EquippedWeapon

	// "attack troll with dagger" uses the named weapon if carried.
	if intent.Instrument != "" {
		if it := e.World.FindInventoryItem(intent.Instrument); it != nil && it.IsWeapon {
			weaponID = it.ID
		}
	}

	if w, ok := e.World.Items[weaponID]; ok && weaponID != 0 && w.IsWeapon {
		dice, sides := w.WeaponDice, w.WeaponSides
		if dice < 1 {
			dice = 1
		}
		if sides < 1 {
			sides = 1
		}
		total := 0
		for i := 0; i < dice; i++ {
			total += e.RNG.Roll(sides)
		}
		return total
	}
	return e.RNG.Roll(3)
}

// companionAttacks lets each present, aggressive-enough companion take
// a swing after the player.
func (e *Engine) companionAttacks(m *types.Monster) []string {
	var out []string
	for _, c := range e.World.Companions {
		if !c.Alive() || c.Waiting {
			continue
		}
		if c.Stance == types.StancePassive || c.Stance == types.StanceSupport {
			continue
		}
		damage := e.RNG.Roll(4) + c.AttackBonus
		m.Health -= damage
		out = append(out, fmt.Sprintf("%s strikes %s for %d damage!", c.Name, m.Name, damage))
		if m.Health <= 0 {
			return out
		}
	}
	return out
}

func (e *Engine) killMonster(m *types.Monster) []string {
	m.Dead = true
	m.Health = 0

	p := e.payload()
	p.Monster = m
	out := e.Bus.Trigger(events.OnKill, p)

	out = append(out, fmt.Sprintf("%s falls dead at your feet!", m.Name))
	if m.Gold > 0 {
		e.World.Player.Gold += m.Gold
		out = append(out, fmt.Sprintf("You find %d gold on the corpse.", m.Gold))
		m.Gold = 0
	}
	// Carried loot drops to the floor.
	for _, itemID := range m.Inventory {
		if it, ok := e.World.Items[itemID]; ok {
			it.Location = m.RoomID
		}
	}
	m.Inventory = nil

	return append(out, e.advanceQuests("kill_monster", m.ID)...)
}

// counterAttack is the monster's reply: a flat 1-6 damage roll against
// the player, less equipped armor.
func (e *Engine) counterAttack(m *types.Monster) []string {
	damage := e.RNG.Roll(6)
	if a, ok := e.World.Items[e.World.Player.EquippedArmor]; ok && e.World.Player.EquippedArmor != 0 {
		damage -= a.ArmorValue
		if damage < 0 {
			damage = 0
		}
	}

	pl := e.World.Player
	pl.Health -= damage
	out := []string{fmt.Sprintf("%s strikes back for %d damage!", m.Name, damage)}

	if pl.Health <= 0 {
		pl.Health = 0
		p := e.payload()
		p.Monster = m
		out = append(out, e.Bus.Trigger(events.OnDeath, p)...)
		e.World.GameOver = true
		out = append(out, "You have died. Your adventure ends here.")
	}
	return out
}
